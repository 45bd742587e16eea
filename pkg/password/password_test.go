package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptRoundTrip(t *testing.T) {
	hashed, err := Bcrypt{Cost: bcrypt.MinCost}.Hash("secret")
	require.NoError(t, err)

	assert.True(t, Bcrypt{}.Matches(hashed))
	ok, err := Bcrypt{}.Verify(hashed, "secret")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Bcrypt{}.Verify(hashed, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestScryptRecords(t *testing.T) {
	record, err := HashScrypt("secret")
	require.NoError(t, err)

	assert.True(t, Scrypt{}.Matches(record))
	assert.False(t, Bcrypt{}.Matches(record))

	ok, err := Scrypt{}.Verify(record, "secret")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Scrypt{}.Verify(record, "Secret")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestScryptRejectsMalformed(t *testing.T) {
	assert.False(t, Scrypt{}.Matches("plaintext"))
	assert.False(t, Scrypt{}.Matches("abcd.ef"))
	assert.False(t, Scrypt{}.Matches("$2a$10$abcdefghijklmnopqrstuv"))
}

func TestChainWithoutLegacyRejectsPlainCredentials(t *testing.T) {
	chain := NewChain()
	ok, _, err := chain.Verify("admin123", "admin123")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrUnknownScheme)
}

func TestChainLegacyIsLastResort(t *testing.T) {
	matches := 0
	chain := NewChain(Legacy{OnMatch: func() { matches++ }})

	ok, scheme, err := chain.Verify("admin123", "admin123")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, SchemeLegacy, scheme)
	assert.Equal(t, 1, matches)
	assert.True(t, chain.NeedsRehash("admin123"))

	hashed, err := Bcrypt{Cost: bcrypt.MinCost}.Hash("admin123")
	require.NoError(t, err)
	ok, scheme, err = chain.Verify(hashed, "admin123")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, SchemeBcrypt, scheme)
	assert.False(t, chain.NeedsRehash(hashed))
	assert.Equal(t, 1, matches)
}

func TestChainScryptNeedsRehash(t *testing.T) {
	record, err := HashScrypt("pw")
	require.NoError(t, err)

	chain := NewChain()
	ok, scheme, err := chain.Verify(record, "pw")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, SchemeScrypt, scheme)
	assert.True(t, chain.NeedsRehash(record))
}
