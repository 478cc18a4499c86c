// Package argon hashes and verifies the shared admin key with argon2id.
package argon

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	ErrEmptySecret = errors.New("secret is required")
	ErrInvalidHash = errors.New("invalid argon2id hash")
	ErrKeyMismatch = errors.New("admin key mismatch")
)

// Params controls argon2id hashing behavior.
type Params struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

var DefaultParams = &Params{
	Memory:      64 * 1024,
	Iterations:  2,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

// CreateHash returns the PHC-style encoding of secret.
func CreateHash(secret string, p *Params) (string, error) {
	if strings.TrimSpace(secret) == "" {
		return "", ErrEmptySecret
	}
	if p == nil {
		p = DefaultParams
	}

	salt := make([]byte, p.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("read salt: %w", err)
	}

	sum := argon2.IDKey([]byte(secret), salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Iterations, p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(sum),
	), nil
}

// Compare reports whether secret produces encodedHash.
func Compare(secret, encodedHash string) (bool, error) {
	p, salt, sum, err := decodeHash(encodedHash)
	if err != nil {
		return false, err
	}
	other := argon2.IDKey([]byte(secret), salt, p.Iterations, p.Memory, p.Parallelism, uint32(len(sum)))
	return subtle.ConstantTimeCompare(sum, other) == 1, nil
}

func decodeHash(encodedHash string) (*Params, []byte, []byte, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, nil, ErrInvalidHash
	}

	p := &Params{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Iterations, &p.Parallelism); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: parameters", ErrInvalidHash)
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: salt", ErrInvalidHash)
	}
	sum, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: digest", ErrInvalidHash)
	}
	p.SaltLength = uint32(len(salt))
	p.KeyLength = uint32(len(sum))
	return p, salt, sum, nil
}

// KeyVerifier holds the hash of the configured admin key so the plain key
// is not kept around after start-up.
type KeyVerifier struct {
	hash string
}

func NewKeyVerifier(adminKey string) (*KeyVerifier, error) {
	hash, err := CreateHash(adminKey, DefaultParams)
	if err != nil {
		return nil, fmt.Errorf("hash admin key: %w", err)
	}
	return &KeyVerifier{hash: hash}, nil
}

// Verify returns ErrKeyMismatch when candidate is not the admin key.
func (v *KeyVerifier) Verify(candidate string) error {
	if v == nil {
		return ErrKeyMismatch
	}
	ok, err := Compare(candidate, v.hash)
	if err != nil {
		return err
	}
	if !ok {
		return ErrKeyMismatch
	}
	return nil
}
