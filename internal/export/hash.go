package export

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/sourcegraph/conc/pool"
	"github.com/tubeguard/tubeguard/internal/progress"
	"golang.org/x/crypto/argon2"
)

// HashType represents the different hashing algorithms available.
type HashType string

const (
	// HashTypeArgon2id uses the Argon2id algorithm for hashing.
	HashTypeArgon2id HashType = "argon2id"
	// HashTypeSHA256 uses iterated salted SHA256.
	HashTypeSHA256 HashType = "sha256"
)

// IsValid reports whether the hash type is supported.
func (h HashType) IsValid() bool {
	return h == HashTypeArgon2id || h == HashTypeSHA256
}

// HashID hashes an author id with the given salt. Memory is in MB and only
// applies to Argon2id.
func HashID(id, salt string, hashType HashType, iterations, memory uint32) string {
	var hash []byte

	switch hashType {
	case HashTypeArgon2id:
		hash = argon2.IDKey([]byte(id), []byte(salt), iterations, memory*1024, 1, 32)
	case HashTypeSHA256:
		hash = []byte(salt)

		h := sha256.New()
		for range iterations {
			h.Reset()
			h.Write([]byte(id))
			h.Write(hash)
			hash = h.Sum(nil)
		}
	}

	return hex.EncodeToString(hash)
}

// hashIDs hashes ids concurrently, keeping input order. Each distinct id is
// hashed once. The bar, when given, advances per distinct id.
func hashIDs(ctx context.Context, ids []string, config *Config, bar *progress.Bar) ([]string, error) {
	unique := make(map[string]string, len(ids))
	for _, id := range ids {
		unique[id] = ""
	}

	distinct := make([]string, 0, len(unique))
	for id := range unique {
		distinct = append(distinct, id)
	}

	p := pool.NewWithResults[[2]string]().
		WithContext(ctx).
		WithMaxGoroutines(max(config.Concurrency, 1))

	for _, id := range distinct {
		p.Go(func(ctx context.Context) ([2]string, error) {
			if err := ctx.Err(); err != nil {
				return [2]string{}, err
			}

			hash := HashID(id, config.Salt, config.HashType, config.Iterations, config.Memory)
			if bar != nil {
				bar.Increment(1)
			}

			return [2]string{id, hash}, nil
		})
	}

	pairs, err := p.Wait()
	if err != nil {
		return nil, err
	}

	for _, pair := range pairs {
		unique[pair[0]] = pair[1]
	}

	hashes := make([]string, len(ids))
	for i, id := range ids {
		hashes[i] = unique[id]
	}

	return hashes, nil
}
