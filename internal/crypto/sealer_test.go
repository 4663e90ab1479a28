package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealer_RoundTrip(t *testing.T) {
	s, err := NewSealer("secret")
	require.NoError(t, err)

	for _, v := range []string{"", "eyJhbGciOi.token", `{"email":"a@b.c"}`} {
		sealed, err := s.Seal(v)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(sealed, sealedPrefix))

		opened, err := s.Open(sealed)
		require.NoError(t, err)
		assert.Equal(t, v, opened)
	}
}

func TestSealer_RandomNonce(t *testing.T) {
	s, err := NewSealer("secret")
	require.NoError(t, err)

	a, err := s.Seal("same")
	require.NoError(t, err)
	b, err := s.Seal("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestSealer_WrongSecret(t *testing.T) {
	s1, err := NewSealer("one")
	require.NoError(t, err)
	s2, err := NewSealer("two")
	require.NoError(t, err)

	sealed, err := s1.Seal("token")
	require.NoError(t, err)

	_, err = s2.Open(sealed)
	assert.ErrorIs(t, err, ErrOpenFailed)
}

func TestSealer_MalformedInput(t *testing.T) {
	s, err := NewSealer("secret")
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
	}{
		{name: "no prefix", input: "plain"},
		{name: "bad base64", input: sealedPrefix + "!!!"},
		{name: "too short", input: sealedPrefix + "AAAA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Open(tt.input)
			assert.ErrorIs(t, err, ErrOpenFailed)
		})
	}
}

func TestPlainSealer(t *testing.T) {
	s, err := NewSealer("")
	require.NoError(t, err)

	sealed, err := s.Seal("token")
	require.NoError(t, err)
	assert.Equal(t, "token", sealed)

	opened, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "token", opened)

	_, err = s.Open(sealedPrefix + "AAAA")
	assert.ErrorIs(t, err, ErrOpenFailed)
}
