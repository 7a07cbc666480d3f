package mediatype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		in   string
		want Classification
	}{
		{"application/pdf", Classification{Document, "application/pdf"}},
		{"image/png", Classification{Image, "image/png"}},
		{"IMAGE/JPEG; charset=binary", Classification{Image, "image/jpeg"}},
		{"audio/ogg", Classification{Audio, "audio/ogg"}},
		{"video/mp4", Classification{Video, "video/mp4"}},
		{"application/zip", Classification{Unknown, "application/zip"}},
		{"", Classification{Unknown, UnknownMIME}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.in), tc.in)
	}
}

func TestFromExtension(t *testing.T) {
	assert.Equal(t, "application/pdf", FromExtension("/tmp/report.PDF"))
	assert.Equal(t, "image/jpeg", FromExtension("https://cdn.test/a/photo.jpg?sig=abc"))
	assert.Equal(t, "", FromExtension("noext"))
	assert.Equal(t, "", FromExtension("file.zzunknownext"))
}

func TestIsGeneric(t *testing.T) {
	assert.True(t, IsGeneric(""))
	assert.True(t, IsGeneric("binary/octet-stream"))
	assert.True(t, IsGeneric("application/octet-stream"))
	assert.False(t, IsGeneric("image/png"))
}
