package secret

import (
	"encoding/base64"
	"errors"
	"testing"
)

func newTestSealer(t *testing.T) *Sealer {
	t.Helper()

	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey failed: %v", err)
	}
	s, err := NewSealer(key)
	if err != nil {
		t.Fatalf("NewSealer failed: %v", err)
	}
	return s
}

func TestSealOpen(t *testing.T) {
	s := newTestSealer(t)

	sealed, err := s.Seal("hunter22")
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}
	if string(sealed) == "hunter22" {
		t.Fatal("sealed value must not be the plaintext")
	}

	got, err := s.Open(sealed)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if got != "hunter22" {
		t.Errorf("Open = %q, want %q", got, "hunter22")
	}
}

func TestSealUsesFreshNonce(t *testing.T) {
	s := newTestSealer(t)

	a, _ := s.Seal("same")
	b, _ := s.Seal("same")
	if string(a) == string(b) {
		t.Error("expected two seals of the same password to differ")
	}
}

func TestOpenWithWrongKey(t *testing.T) {
	sealed, err := newTestSealer(t).Seal("secret")
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	if _, err := newTestSealer(t).Open(sealed); !errors.Is(err, ErrOpen) {
		t.Errorf("expected ErrOpen, got %v", err)
	}
	if _, err := newTestSealer(t).Open([]byte("short")); !errors.Is(err, ErrOpen) {
		t.Errorf("expected ErrOpen for short input, got %v", err)
	}
}

func TestParseKey(t *testing.T) {
	raw := make([]byte, KeySize)
	for i := range raw {
		raw[i] = byte(i)
	}

	key, err := ParseKey(base64.StdEncoding.EncodeToString(raw))
	if err != nil {
		t.Fatalf("ParseKey failed: %v", err)
	}
	if len(key) != KeySize {
		t.Errorf("expected %d bytes, got %d", KeySize, len(key))
	}

	if _, err := ParseKey(base64.StdEncoding.EncodeToString(raw[:16])); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}
	if _, err := ParseKey("not base64!"); err == nil {
		t.Error("expected error for invalid base64")
	}
}
