package codeverifier

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
)

// Verifier is the locally-held PKCE secret. Only its derived challenge is
// sent along with the authorization request; the verifier itself travels to
// the token endpoint when the code is exchanged.
type Verifier struct {
	Value string
}

func NewVerifier() (*Verifier, error) {
	value, err := randomURLSafeString(32)
	if err != nil {
		return nil, err
	}

	return &Verifier{
		Value: value,
	}, nil
}

// NewVerifierFrom restores a verifier that was stashed away earlier.
func NewVerifierFrom(value string) *Verifier {
	return &Verifier{
		Value: value,
	}
}

func (v *Verifier) GetValue() string {
	return v.Value
}

// CreateChallenge returns the challenge method and the challenge itself:
// base64url (unpadded) of the SHA-256 digest of the verifier.
func (v *Verifier) CreateChallenge() (string, string, error) {
	sha2 := sha256.New()

	_, err := io.WriteString(sha2, v.Value)
	if err != nil {
		return "", "", fmt.Errorf("could not write challenge: %v", err)
	}

	codeChallenge := base64.RawURLEncoding.EncodeToString(sha2.Sum(nil))

	return "S256", codeChallenge, nil
}

func randomURLSafeString(count int) (string, error) {
	buf := make([]byte, count)

	_, err := io.ReadFull(rand.Reader, buf)
	if err != nil {
		return "", fmt.Errorf("could not generate %d random bytes: %v", count, err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
