// Package openai relays WhatsApp voice notes and audio to OpenAI's
// transcription endpoint.
package openai

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	pkgError "github.com/TrueSelph/ultramsg-action/pkg/error"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/sirupsen/logrus"
)

type Transcriber struct {
	client openai.Client
	model  string
}

func NewTranscriber(apiKey, model string, opts ...option.RequestOption) *Transcriber {
	if model == "" {
		model = string(openai.AudioModelWhisper1)
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Transcriber{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

func (t *Transcriber) Transcribe(ctx context.Context, audio []byte, filename, mimeType string) (string, error) {
	if len(audio) == 0 {
		return "", pkgError.TranscriptionError("empty audio")
	}
	if filename == "" {
		filename = "audio.ogg"
	}

	resp, err := t.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		File:  openai.File(bytes.NewReader(audio), filename, mimeType),
		Model: openai.AudioModel(t.model),
	})
	if err != nil {
		logrus.WithError(err).Error("[TRANSCRIBE] OpenAI transcription failed")
		return "", pkgError.TranscriptionError(fmt.Sprintf("transcription failed: %v", err))
	}
	return strings.TrimSpace(resp.Text), nil
}
