// Package secret seals leader account passwords before they are stored.
//
// Sealed values are nonce || secretbox(password). The key is 32 bytes,
// configured base64 encoded.
package secret

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

const (
	// KeySize is the length of a sealing key in bytes.
	KeySize   = 32
	nonceSize = 24
)

var (
	ErrInvalidKey = errors.New("credential key must be 32 bytes")
	ErrOpen       = errors.New("failed to open sealed credential")
)

// Sealer encrypts and decrypts credential passwords with a fixed key.
type Sealer struct {
	key [KeySize]byte
}

// NewSealer creates a Sealer from a raw 32-byte key.
func NewSealer(key []byte) (*Sealer, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidKey, len(key))
	}
	s := &Sealer{}
	copy(s.key[:], key)
	return s, nil
}

// ParseKey decodes a standard base64 key.
func ParseKey(encoded string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode credential key: %w", err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidKey, len(key))
	}
	return key, nil
}

// GenerateKey returns a random key.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("failed to generate credential key: %w", err)
	}
	return key, nil
}

// Seal encrypts the password under a fresh random nonce.
func (s *Sealer) Seal(password string) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return secretbox.Seal(nonce[:], []byte(password), &nonce, &s.key), nil
}

// Open decrypts a value produced by Seal.
func (s *Sealer) Open(sealed []byte) (string, error) {
	if len(sealed) < nonceSize+secretbox.Overhead {
		return "", fmt.Errorf("%w: value too short", ErrOpen)
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])

	plain, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", ErrOpen
	}
	return string(plain), nil
}
