package credential

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxSecretLength is the longest input bcrypt accepts.
const MaxSecretLength = 72

// Hasher produces and checks salted bcrypt hashes at a fixed cost.
// It holds no mutable state and is safe for concurrent use.
type Hasher struct {
	cost int
}

// New creates a Hasher from cfg.
func New(cfg Config) (*Hasher, error) {
	cost := cfg.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidCost, cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &Hasher{cost: cost}, nil
}

// NewForTesting returns a Hasher running at bcrypt.MinCost.
func NewForTesting() *Hasher {
	return &Hasher{cost: bcrypt.MinCost}
}

// Cost returns the configured work factor.
func (h *Hasher) Cost() int {
	return h.cost
}

// Hash returns a salted bcrypt hash of secret.
func (h *Hasher) Hash(secret string) ([]byte, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if len(secret) > MaxSecretLength {
		return nil, ErrSecretTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return nil, errors.Join(ErrHashFailed, err)
	}
	return hash, nil
}

// Verify reports whether candidate matches hash.
// A nil, empty or malformed hash never matches.
func (h *Hasher) Verify(candidate string, hash []byte) bool {
	if len(hash) == 0 {
		return false
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(candidate)) == nil
}

// NeedsRehash reports whether hash was produced at a different cost than the
// one configured, so callers can upgrade it after a successful Verify.
func (h *Hasher) NeedsRehash(hash []byte) bool {
	cost, err := bcrypt.Cost(hash)
	if err != nil {
		return false
	}
	return cost != h.cost
}
