package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

// ErrInvalidHash is returned by Verify when the stored value is not a
// well-formed argon2id PHC string.
var ErrInvalidHash = errors.New("invalid password hash format")

// Argon2Params are the argon2id cost settings. Memory is in KiB.
type Argon2Params struct {
	Time        uint32
	Memory      uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultArgon2Params: 64 MiB, 3 passes, 4 lanes, 16-byte salt, 32-byte key.
var DefaultArgon2Params = Argon2Params{
	Time:        3,
	Memory:      64 * 1024,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

// Argon2Hasher hashes passwords with argon2id and encodes them in the PHC
// string format:
//
//	$argon2id$v=19$m=65536,t=3,p=4$<salt>$<key>
//
// The cost parameters travel inside the encoded string, so Verify keeps
// working for hashes produced under older settings.
type Argon2Hasher struct {
	params Argon2Params
	rand   io.Reader
}

// NewArgon2Hasher returns a hasher using DefaultArgon2Params.
func NewArgon2Hasher() *Argon2Hasher {
	return NewArgon2HasherWithParams(DefaultArgon2Params)
}

// NewArgon2HasherWithParams returns a hasher with explicit cost settings.
func NewArgon2HasherWithParams(p Argon2Params) *Argon2Hasher {
	return &Argon2Hasher{params: p, rand: rand.Reader}
}

// Hash derives a salted argon2id key from plaintext and returns it encoded.
func (h *Argon2Hasher) Hash(plaintext string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := io.ReadFull(h.rand, salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	key := argon2.IDKey([]byte(plaintext), salt, h.params.Time, h.params.Memory, h.params.Parallelism, h.params.KeyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory, h.params.Time, h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether plaintext matches the encoded hash. The comparison
// of derived keys is constant-time.
func (h *Argon2Hasher) Verify(encoded, plaintext string) (bool, error) {
	p, salt, key, err := decodeHash(encoded)
	if err != nil {
		return false, err
	}

	candidate := argon2.IDKey([]byte(plaintext), salt, p.Time, p.Memory, p.Parallelism, p.KeyLength)

	return subtle.ConstantTimeCompare(key, candidate) == 1, nil
}

func decodeHash(encoded string) (Argon2Params, []byte, []byte, error) {
	var p Argon2Params

	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return p, nil, nil, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, ErrInvalidHash
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Parallelism); err != nil {
		return p, nil, nil, ErrInvalidHash
	}
	if p.Memory == 0 || p.Time == 0 || p.Parallelism == 0 {
		return p, nil, nil, ErrInvalidHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return p, nil, nil, ErrInvalidHash
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return p, nil, nil, ErrInvalidHash
	}

	p.SaltLength = uint32(len(salt))
	p.KeyLength = uint32(len(key))

	return p, salt, key, nil
}
