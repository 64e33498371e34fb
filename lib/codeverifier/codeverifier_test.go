package codeverifier

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewVerifier(t *testing.T) {
	v, err := NewVerifier()
	assert.NoError(t, err)
	assert.NotEmpty(t, v.GetValue())

	// url-safe, unpadded
	assert.NotContains(t, v.GetValue(), "=")
	assert.NotContains(t, v.GetValue(), "+")
	assert.NotContains(t, v.GetValue(), "/")

	other, err := NewVerifier()
	assert.NoError(t, err)
	assert.NotEqual(t, v.GetValue(), other.GetValue())
}

func TestCreateChallenge(t *testing.T) {
	v := NewVerifierFrom("fixed-verifier-value")

	method, challenge, err := v.CreateChallenge()
	assert.NoError(t, err)
	assert.Equal(t, "S256", method)

	sum := sha256.Sum256([]byte("fixed-verifier-value"))
	assert.Equal(t, base64.RawURLEncoding.EncodeToString(sum[:]), challenge)
	assert.False(t, strings.HasSuffix(challenge, "="))
}

func TestRestoredVerifierYieldsSameChallenge(t *testing.T) {
	v, err := NewVerifier()
	assert.NoError(t, err)

	_, original, err := v.CreateChallenge()
	assert.NoError(t, err)

	restored := NewVerifierFrom(v.GetValue())
	_, restoredChallenge, err := restored.CreateChallenge()
	assert.NoError(t, err)

	assert.Equal(t, original, restoredChallenge)
}
