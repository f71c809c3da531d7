package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"intranet/config"
)

// Low cost keeps the tests fast; the cost factor does not change behavior.
const testCost = bcrypt.MinCost

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasherWithCost(testCost)

	password := "Secret123"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	assert.True(t, hasher.Check(password, hash))
	assert.False(t, hasher.Check("wrong_pw", hash))
	assert.False(t, hasher.Check("", hash))
}

func TestBcryptHasher_SaltedOutputDiffers(t *testing.T) {
	hasher := NewBcryptHasherWithCost(testCost)

	first, err := hasher.Hash("Secret123")
	assert.NoError(t, err)
	second, err := hasher.Hash("Secret123")
	assert.NoError(t, err)

	// Same password, fresh salt per call.
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check("Secret123", first))
	assert.True(t, hasher.Check("Secret123", second))
}

func TestBcryptHasher_MalformedHashYieldsFalse(t *testing.T) {
	hasher := NewBcryptHasherWithCost(testCost)

	assert.False(t, hasher.Check("Secret123", "not-a-bcrypt-hash"))
	assert.False(t, hasher.Check("Secret123", ""))
	// Wrong algorithm tag.
	assert.False(t, hasher.Check("Secret123", "$argon2id$v=19$m=65536,t=3,p=2$abc$def"))
}

func TestBcryptHasher_LongPasswordDoesNotError(t *testing.T) {
	hasher := NewBcryptHasherWithCost(testCost)

	long := strings.Repeat("a", 200)
	hash, err := hasher.Hash(long)
	assert.NoError(t, err)
	assert.True(t, hasher.Check(long, hash))
}

func TestBcryptHasher_CostFromConfig(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: 6}}
	hasher := NewBcryptHasher(cfg)

	hash, err := hasher.Hash("Secret123")
	assert.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	assert.NoError(t, err)
	assert.Equal(t, 6, cost)
}
