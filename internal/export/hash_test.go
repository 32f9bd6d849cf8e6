package export_test

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tubeguard/tubeguard/internal/export"
)

func TestHashID(t *testing.T) {
	t.Parallel()

	single := sha256.Sum256([]byte("UCabcsalt"))

	tests := []struct {
		name       string
		hashType   export.HashType
		iterations uint32
		memory     uint32
		check      func(t *testing.T, hash string)
	}{
		{
			name:       "sha256 single iteration",
			hashType:   export.HashTypeSHA256,
			iterations: 1,
			check: func(t *testing.T, hash string) {
				t.Helper()
				assert.Equal(t, hex.EncodeToString(single[:]), hash)
			},
		},
		{
			name:       "sha256 chains iterations",
			hashType:   export.HashTypeSHA256,
			iterations: 2,
			check: func(t *testing.T, hash string) {
				t.Helper()
				second := sha256.Sum256(append([]byte("UCabc"), single[:]...))
				assert.Equal(t, hex.EncodeToString(second[:]), hash)
			},
		},
		{
			name:       "argon2id produces 32 bytes",
			hashType:   export.HashTypeArgon2id,
			iterations: 1,
			memory:     1,
			check: func(t *testing.T, hash string) {
				t.Helper()
				assert.Len(t, hash, 64)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hash := export.HashID("UCabc", "salt", tt.hashType, tt.iterations, tt.memory)
			tt.check(t, hash)
			assert.Equal(t, hash, export.HashID("UCabc", "salt", tt.hashType, tt.iterations, tt.memory))
		})
	}
}

func TestHashIDSaltChangesHash(t *testing.T) {
	t.Parallel()

	for _, hashType := range []export.HashType{export.HashTypeSHA256, export.HashTypeArgon2id} {
		a := export.HashID("UCabc", "salt-a", hashType, 1, 1)
		b := export.HashID("UCabc", "salt-b", hashType, 1, 1)
		assert.NotEqual(t, a, b, string(hashType))
	}
}

func TestHashTypeIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, export.HashTypeSHA256.IsValid())
	assert.True(t, export.HashTypeArgon2id.IsValid())
	assert.False(t, export.HashType("md5").IsValid())
}
