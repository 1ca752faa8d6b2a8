package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_MissingFileHasNoToken(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "session.toml"))
	require.NoError(t, err)

	token, ok := s.Token()
	assert.False(t, ok)
	assert.Empty(t, token)
}

func TestOpen_ReadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	require.NoError(t, os.WriteFile(path, []byte("token = \"  abc.def  \"\n"), 0o600))

	s, err := Open(path)
	require.NoError(t, err)

	token, ok := s.Token()
	assert.True(t, ok)
	assert.Equal(t, "abc.def", token)
}

func TestOpen_TildePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s, err := Open("~/.config/moodlog/session.toml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config/moodlog/session.toml"), s.Path())
}

func TestOpen_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	require.NoError(t, os.WriteFile(path, []byte("token = [\n"), 0o600))

	_, err := Open(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse session")
}

func TestSetToken_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.toml")
	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.SetToken("tok-1"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reopened, err := Open(path)
	require.NoError(t, err)
	token, ok := reopened.Token()
	assert.True(t, ok)
	assert.Equal(t, "tok-1", token)
}

func TestSetToken_RejectsEmpty(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "session.toml"))
	require.NoError(t, err)
	assert.Error(t, s.SetToken("   "))
}

func TestClear_RemovesTokenAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SetToken("tok"))

	require.NoError(t, s.Clear())
	_, ok := s.Token()
	assert.False(t, ok)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clearing twice is fine.
	assert.NoError(t, s.Clear())
}

func TestStatic(t *testing.T) {
	token, ok := Static(" t ").Token()
	assert.True(t, ok)
	assert.Equal(t, "t", token)

	_, ok = Static("").Token()
	assert.False(t, ok)
}

func TestParseClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("server-side-secret"))
	require.NoError(t, err)

	claims, err := ParseClaims(signed)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.True(t, claims.ExpiresAt.Equal(exp))
	assert.False(t, claims.Expired(time.Now()))
	assert.True(t, claims.Expired(exp.Add(time.Minute)))
}

func TestParseClaims_Opaque(t *testing.T) {
	_, err := ParseClaims("not-a-jwt")
	assert.Error(t, err)
	assert.False(t, Claims{}.Expired(time.Now()))
}
