package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/openai/openai-go/v3/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscribe_SendsMultipartAudio(t *testing.T) {
	var (
		gotPath  string
		gotAuth  string
		gotModel string
		gotFile  []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotModel = r.FormValue("model")
		f, _, err := r.FormFile("file")
		require.NoError(t, err)
		gotFile, _ = io.ReadAll(f)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"text": "  hola mundo "})
	}))
	defer srv.Close()

	tr := NewTranscriber("sk-test", "", option.WithBaseURL(srv.URL+"/v1/"), option.WithMaxRetries(0))
	text, err := tr.Transcribe(context.Background(), []byte("OggS-audio"), "voice.ogg", "audio/ogg")

	require.NoError(t, err)
	assert.Equal(t, "hola mundo", text)
	assert.True(t, strings.HasSuffix(gotPath, "/audio/transcriptions"))
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "whisper-1", gotModel)
	assert.Equal(t, []byte("OggS-audio"), gotFile)
}

func TestTranscribe_EmptyAudio(t *testing.T) {
	tr := NewTranscriber("sk-test", "whisper-1")
	_, err := tr.Transcribe(context.Background(), nil, "", "")
	assert.ErrorContains(t, err, "empty audio")
}
