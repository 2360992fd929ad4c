package security

import (
	"fmt"
	"strings"

	"github.com/VasudevKishan/todo-api/internal/application/ports"
)

const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

// Hasher hashes with one primary algorithm and verifies any supported hash by
// its prefix, so bcrypt hashes from earlier deployments keep verifying after a
// switch to Argon2id (and the other way round).
type Hasher struct {
	primary ports.PasswordHasher
	bcrypt  *BcryptHasher
	argon2  *Argon2Hasher
}

// HasherConfig selects the primary algorithm and its parameters.
type HasherConfig struct {
	Algorithm  string
	BcryptCost int
	Argon2     Argon2Params
}

func NewHasher(cfg HasherConfig) (*Hasher, error) {
	h := &Hasher{
		bcrypt: NewBcryptHasher(cfg.BcryptCost),
		argon2: NewArgon2Hasher(cfg.Argon2),
	}
	switch strings.ToLower(cfg.Algorithm) {
	case "", AlgorithmBcrypt:
		h.primary = h.bcrypt
	case AlgorithmArgon2id:
		h.primary = h.argon2
	default:
		return nil, fmt.Errorf("unknown password hasher %q", cfg.Algorithm)
	}
	return h, nil
}

func (h *Hasher) Hash(password string) (string, error) {
	return h.primary.Hash(password)
}

func (h *Hasher) Verify(password, hash string) bool {
	switch {
	case isBcryptHash(hash):
		return h.bcrypt.Verify(password, hash)
	case strings.HasPrefix(hash, argon2Prefix):
		return h.argon2.Verify(password, hash)
	default:
		return false
	}
}

var (
	_ ports.PasswordHasher = (*Hasher)(nil)
	_ ports.PasswordHasher = (*BcryptHasher)(nil)
	_ ports.PasswordHasher = (*Argon2Hasher)(nil)
)
