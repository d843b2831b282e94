// Package directory is the user table consulted by the session manager.
// Two repositories are provided: Memory, a process-local table, and
// SQLite, which shares the key-value store's database.
package directory

//go:generate mockgen -source=repository.go -destination=../mock/repository_mock.go -package=mock Repository

import (
	"context"
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"

	"github.com/nhle/project-dashboard/internal/model"
)

// Record is a directory entry: the user profile without its password, plus
// the bcrypt hash of that password. Passwords are SHA-256 digested before
// bcrypt so inputs past bcrypt's 72-byte limit still hash and compare.
type Record struct {
	User         model.User
	PasswordHash []byte
}

// CheckPassword reports whether password matches the stored hash.
func (r Record) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword(r.PasswordHash, prehash(password)) == nil
}

// prehash returns the base64 SHA-256 digest of password: 44 bytes, never
// containing NUL.
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

// Repository looks up and stores directory records.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (Record, error)
	FindByID(ctx context.Context, id string) (Record, error)

	// Insert adds rec; ErrEmailExists when the email is taken.
	Insert(ctx context.Context, rec Record) error

	// UpdateByID replaces the profile fields of the record with the given
	// id. The password hash is left unchanged.
	UpdateByID(ctx context.Context, id string, user model.User) error
}

// NewRecord hashes password and returns a record for user. The user's
// Password field is cleared.
func NewRecord(user model.User, password string, cost int) (Record, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword(prehash(password), cost)
	if err != nil {
		return Record{}, err
	}
	return Record{User: user.Redacted(), PasswordHash: hash}, nil
}
