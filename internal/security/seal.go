package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// sealedPrefix marks a persisted value as passphrase-sealed so a plain
// token file written by an older version is still readable.
const sealedPrefix = "sealed:v1:"

const (
	pbkdf2Iterations = 100000
	keyLength        = 32
)

// Sealer encrypts and decrypts short secrets (the persisted bearer token)
// with a key derived from a user passphrase.
type Sealer struct {
	key []byte
}

// NewSealer derives the sealing key from a passphrase using PBKDF2.
func NewSealer(passphrase string) *Sealer {
	salt := []byte("taskpulse-session-store")
	return &Sealer{
		key: pbkdf2.Key([]byte(passphrase), salt, pbkdf2Iterations, keyLength, sha256.New),
	}
}

// Seal encrypts a value using AES-GCM and returns a tagged, base64 form.
func (s *Sealer) Seal(plaintext string) (string, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return sealedPrefix + base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Open decrypts a sealed value. Values without the sealed tag are returned
// unchanged, so switching the passphrase on does not invalidate an existing
// plain session file.
func (s *Sealer) Open(value string) (string, error) {
	if !IsSealed(value) {
		return value, nil
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(value, sealedPrefix))
	if err != nil {
		return "", fmt.Errorf("decode sealed value: %w", err)
	}

	block, err := aes.NewCipher(s.key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", fmt.Errorf("sealed value too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("open sealed value: %w", err)
	}

	return string(plaintext), nil
}

// IsSealed reports whether a persisted value carries the sealed tag.
func IsSealed(value string) bool {
	return strings.HasPrefix(value, sealedPrefix)
}
