// Package password verifies stored credentials across the hashing schemes found in user data
// and produces bcrypt hashes for new ones.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/scrypt"
)

// Scheme names.
const (
	SchemeBcrypt = "bcrypt"
	SchemeScrypt = "scrypt"
	SchemeLegacy = "legacy"
)

// ErrUnknownScheme is returned when no verifier in a chain accepts the stored value.
var ErrUnknownScheme = errors.New("password: unrecognised credential format")

// Verifier checks a plain password against one stored credential format.
type Verifier interface {
	Scheme() string
	// Matches reports whether stored looks like a credential of this scheme.
	Matches(stored string) bool
	Verify(stored, plain string) (bool, error)
}

// Bcrypt is the default scheme for every newly stored credential.
type Bcrypt struct {
	Cost int
}

func (Bcrypt) Scheme() string { return SchemeBcrypt }

func (Bcrypt) Matches(stored string) bool {
	_, err := bcrypt.Cost([]byte(stored))
	return err == nil
}

func (Bcrypt) Verify(stored, plain string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}

// Hash returns a bcrypt hash of plain.
func (b Bcrypt) Hash(plain string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Scrypt parameters of the "<hex-key>.<hex-salt>" records.
const (
	scryptN      = 16384
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 64
	scryptSalt   = 16
)

// Scrypt verifies salted "<hex-key>.<hex-salt>" credentials.
type Scrypt struct{}

func (Scrypt) Scheme() string { return SchemeScrypt }

func (Scrypt) Matches(stored string) bool {
	key, salt, ok := strings.Cut(stored, ".")
	if !ok || len(key) != scryptKeyLen*2 || salt == "" {
		return false
	}
	_, errKey := hex.DecodeString(key)
	_, errSalt := hex.DecodeString(salt)
	return errKey == nil && errSalt == nil
}

func (Scrypt) Verify(stored, plain string) (bool, error) {
	keyHex, saltHex, ok := strings.Cut(stored, ".")
	if !ok {
		return false, ErrUnknownScheme
	}
	want, err := hex.DecodeString(keyHex)
	if err != nil {
		return false, fmt.Errorf("decode scrypt key: %w", err)
	}
	// The salt is used in its hex form, matching how the records were produced.
	got, err := scrypt.Key([]byte(plain), []byte(saltHex), scryptN, scryptR, scryptP, len(want))
	if err != nil {
		return false, fmt.Errorf("derive scrypt key: %w", err)
	}
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

// HashScrypt produces a record in the Scrypt format. Only used to build fixtures and tests.
func HashScrypt(plain string) (string, error) {
	salt := make([]byte, scryptSalt)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	saltHex := hex.EncodeToString(salt)
	key, err := scrypt.Key([]byte(plain), []byte(saltHex), scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(key) + "." + saltHex, nil
}

// Legacy accepts credentials stored verbatim. It must only be registered during migration.
type Legacy struct {
	// OnMatch is called after every successful legacy verification.
	OnMatch func()
}

func (Legacy) Scheme() string { return SchemeLegacy }

func (Legacy) Matches(stored string) bool { return stored != "" }

func (l Legacy) Verify(stored, plain string) (bool, error) {
	ok := subtle.ConstantTimeCompare([]byte(stored), []byte(plain)) == 1
	if ok && l.OnMatch != nil {
		l.OnMatch()
	}
	return ok, nil
}

// Chain tries verifiers in order and uses the first whose Matches accepts the stored value.
type Chain struct {
	verifiers []Verifier
	hasher    Bcrypt
}

// NewChain builds a chain. Bcrypt and Scrypt are always present; extra verifiers are appended.
func NewChain(extra ...Verifier) *Chain {
	verifiers := append([]Verifier{Bcrypt{}, Scrypt{}}, extra...)
	return &Chain{verifiers: verifiers}
}

// Verify returns the scheme that matched alongside the verdict.
func (c *Chain) Verify(stored, plain string) (bool, string, error) {
	for _, v := range c.verifiers {
		if !v.Matches(stored) {
			continue
		}
		ok, err := v.Verify(stored, plain)
		return ok, v.Scheme(), err
	}
	return false, "", ErrUnknownScheme
}

// NeedsRehash reports whether stored should be replaced by a bcrypt hash.
func (c *Chain) NeedsRehash(stored string) bool {
	return !Bcrypt{}.Matches(stored)
}

// Hash produces a credential in the default scheme.
func (c *Chain) Hash(plain string) (string, error) {
	return c.hasher.Hash(plain)
}
