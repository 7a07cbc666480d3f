package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizePhone(t *testing.T) {
	p := " +1 555 0100 "
	SanitizePhone(&p)
	assert.Equal(t, "15550100", p)

	SanitizePhone(nil)
}

func TestStripContactSuffix(t *testing.T) {
	assert.Equal(t, "1555", StripContactSuffix("1555@c.us"))
	assert.Equal(t, "12036@g.us", StripContactSuffix("12036@g.us"))
	assert.Equal(t, "", StripContactSuffix(""))
}

func TestChatID(t *testing.T) {
	assert.Equal(t, "1555@c.us", ChatID("1555"))
	assert.Equal(t, "1555@c.us", ChatID("1555@c.us"))
	assert.Equal(t, "12036@g.us", ChatID("12036@g.us"))
	assert.Equal(t, "", ChatID(""))
}

func TestGetMessageDigestOrSignature(t *testing.T) {
	sig, err := GetMessageDigestOrSignature([]byte("payload"), []byte("secret"))
	require.NoError(t, err)
	assert.Len(t, sig, 64)

	again, err := GetMessageDigestOrSignature([]byte("payload"), []byte("secret"))
	require.NoError(t, err)
	assert.Equal(t, sig, again)

	other, err := GetMessageDigestOrSignature([]byte("payload"), []byte("other"))
	require.NoError(t, err)
	assert.NotEqual(t, sig, other)
}

func TestGetPersistentServerID_OverrideAndFile(t *testing.T) {
	assert.Equal(t, "fixed", GetPersistentServerID("fixed", t.TempDir()))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".server_id"), []byte("from-file\n"), 0644))
	assert.Equal(t, "from-file", GetPersistentServerID("", dir))
}

func TestCreateFolder(t *testing.T) {
	base := t.TempDir()
	a := filepath.Join(base, "a", "b")
	c := filepath.Join(base, "c")
	require.NoError(t, CreateFolder(a, c))
	assert.DirExists(t, a)
	assert.DirExists(t, c)
}
