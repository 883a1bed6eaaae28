package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	saltLength = 32
	keyLength  = 64

	hashAlgorithm = "argon2id"
)

// PasswordHasher derives salted password hashes with argon2id.
// The derivation parameters are embedded in every hash so they can be tuned
// without invalidating existing credentials.
type PasswordHasher struct {
	time    uint32
	memory  uint32
	threads uint8
}

// NewPasswordHasher creates a password hasher with the given argon2id parameters
func NewPasswordHasher(time, memory uint32, threads uint8) *PasswordHasher {
	return &PasswordHasher{
		time:    time,
		memory:  memory,
		threads: threads,
	}
}

// HashPassword returns the encoded hash and a fresh random salt for the password
func (p *PasswordHasher) HashPassword(password string) (hash string, salt string, err error) {
	saltBytes := make([]byte, saltLength)
	if _, err := rand.Read(saltBytes); err != nil {
		return "", "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), saltBytes, p.time, p.memory, p.threads, keyLength)

	hash = fmt.Sprintf("%s$v=%d$m=%d,t=%d,p=%d$%s",
		hashAlgorithm, argon2.Version, p.memory, p.time, p.threads,
		base64.StdEncoding.EncodeToString(key),
	)

	return hash, base64.StdEncoding.EncodeToString(saltBytes), nil
}

// VerifyPassword reports whether the password matches the stored hash and salt.
// Malformed stored values never match.
func (p *PasswordHasher) VerifyPassword(password, storedHash, storedSalt string) bool {
	salt, err := base64.StdEncoding.DecodeString(storedSalt)
	if err != nil {
		return false
	}

	params, expected, err := decodeHash(storedHash)
	if err != nil {
		return false
	}

	key := argon2.IDKey([]byte(password), salt, params.time, params.memory, params.threads, uint32(len(expected)))

	return subtle.ConstantTimeCompare(key, expected) == 1
}

func decodeHash(encoded string) (*PasswordHasher, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 4 || parts[0] != hashAlgorithm {
		return nil, nil, fmt.Errorf("unsupported hash format")
	}

	var version int
	if _, err := fmt.Sscanf(parts[1], "v=%d", &version); err != nil {
		return nil, nil, fmt.Errorf("invalid hash version: %w", err)
	}
	if version != argon2.Version {
		return nil, nil, fmt.Errorf("incompatible argon2 version %d", version)
	}

	params := &PasswordHasher{}
	if _, err := fmt.Sscanf(parts[2], "m=%d,t=%d,p=%d", &params.memory, &params.time, &params.threads); err != nil {
		return nil, nil, fmt.Errorf("invalid hash parameters: %w", err)
	}
	if params.time == 0 || params.threads == 0 {
		return nil, nil, fmt.Errorf("invalid hash parameters")
	}

	key, err := base64.StdEncoding.DecodeString(parts[3])
	if err != nil {
		return nil, nil, fmt.Errorf("invalid hash encoding: %w", err)
	}
	if len(key) == 0 {
		return nil, nil, fmt.Errorf("empty hash")
	}

	return params, key, nil
}
