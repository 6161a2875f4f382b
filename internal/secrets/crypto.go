package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	kerrors "github.com/PolarWolf314/ghadmin/internal/errors"

	"golang.org/x/crypto/nacl/box"
)

// KeySize is the length of a Curve25519 public key.
const KeySize = 32

// DecodePublicKey decodes the base64 "key" field returned by a public-key endpoint.
func DecodePublicKey(keyB64 string) (*[KeySize]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(keyB64)
	if err != nil {
		return nil, fmt.Errorf("%w: public key is not valid base64: %v", kerrors.ErrEncryption, err)
	}
	if len(raw) != KeySize {
		return nil, fmt.Errorf("%w: public key is %d bytes, want %d", kerrors.ErrEncryption, len(raw), KeySize)
	}

	var key [KeySize]byte
	copy(key[:], raw)
	return &key, nil
}

// EncryptSecret seals plaintext for publicKey in an anonymous sealed box and
// returns the result base64 encoded. A fresh ephemeral keypair is used on
// every call, so the output differs each time.
func EncryptSecret(publicKey *[KeySize]byte, plaintext string) (string, error) {
	if publicKey == nil {
		return "", fmt.Errorf("%w: no public key", kerrors.ErrEncryption)
	}

	sealed, err := box.SealAnonymous(nil, []byte(plaintext), publicKey, rand.Reader)
	if err != nil {
		return "", fmt.Errorf("%w: %v", kerrors.ErrEncryption, err)
	}
	return base64.StdEncoding.EncodeToString(sealed), nil
}
