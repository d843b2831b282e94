package directory

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/nhle/project-dashboard/internal/model"
)

// SQLite is a Repository over the users table created by the store's
// migrations.
type SQLite struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

// NewSQLite returns a repository using db.
func NewSQLite(db *sqlx.DB) *SQLite {
	return &SQLite{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
}

type userRow struct {
	ID             string `db:"id"`
	Name           string `db:"name"`
	Email          string `db:"email"`
	PasswordHash   string `db:"password_hash"`
	ContactNumber  string `db:"contact_number"`
	Address        string `db:"address"`
	Bio            string `db:"bio"`
	ProfilePicture string `db:"profile_picture"`
	SocialLinks    string `db:"social_links"`
}

var userColumns = []string{
	"id", "name", "email", "password_hash", "contact_number",
	"address", "bio", "profile_picture", "social_links",
}

func (r userRow) record() (Record, error) {
	var links map[string]string
	if r.SocialLinks != "" {
		if err := json.Unmarshal([]byte(r.SocialLinks), &links); err != nil {
			return Record{}, fmt.Errorf("decoding social links for user %s: %w", r.ID, err)
		}
	}
	if len(links) == 0 {
		links = nil
	}
	return Record{
		User: model.User{
			ID:             r.ID,
			Name:           r.Name,
			Email:          r.Email,
			ContactNumber:  r.ContactNumber,
			Address:        r.Address,
			Bio:            r.Bio,
			ProfilePicture: r.ProfilePicture,
			SocialLinks:    links,
		},
		PasswordHash: []byte(r.PasswordHash),
	}, nil
}

func encodeLinks(links map[string]string) (string, error) {
	if len(links) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(links)
	if err != nil {
		return "", fmt.Errorf("encoding social links: %w", err)
	}
	return string(b), nil
}

func (s *SQLite) findOne(ctx context.Context, where sq.Eq) (Record, error) {
	query, args, err := s.sb.Select(userColumns...).From("users").Where(where).Limit(1).ToSql()
	if err != nil {
		return Record{}, fmt.Errorf("building user query: %w", err)
	}

	var row userRow
	err = s.db.GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("querying user: %w", err)
	}
	return row.record()
}

// FindByEmail returns the record with the given email.
func (s *SQLite) FindByEmail(ctx context.Context, email string) (Record, error) {
	return s.findOne(ctx, sq.Eq{"email": email})
}

// FindByID returns the record with the given id.
func (s *SQLite) FindByID(ctx context.Context, id string) (Record, error) {
	return s.findOne(ctx, sq.Eq{"id": id})
}

// Insert adds rec. A duplicate email maps to ErrEmailExists.
func (s *SQLite) Insert(ctx context.Context, rec Record) error {
	links, err := encodeLinks(rec.User.SocialLinks)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	u := rec.User

	query, args, err := s.sb.Insert("users").
		Columns(append(userColumns, "created_at", "updated_at")...).
		Values(u.ID, u.Name, u.Email, string(rec.PasswordHash), u.ContactNumber,
			u.Address, u.Bio, u.ProfilePicture, links, now, now).
		ToSql()
	if err != nil {
		return fmt.Errorf("building insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrEmailExists
		}
		return fmt.Errorf("inserting user %s: %w", u.Email, err)
	}
	return nil
}

// UpdateByID replaces the profile columns of the user with the given id.
func (s *SQLite) UpdateByID(ctx context.Context, id string, user model.User) error {
	links, err := encodeLinks(user.SocialLinks)
	if err != nil {
		return err
	}

	query, args, err := s.sb.Update("users").
		SetMap(map[string]any{
			"name":            user.Name,
			"email":           user.Email,
			"contact_number":  user.ContactNumber,
			"address":         user.Address,
			"bio":             user.Bio,
			"profile_picture": user.ProfilePicture,
			"social_links":    links,
			"updated_at":      time.Now().UTC(),
		}).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building update: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailExists
		}
		return fmt.Errorf("updating user %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating user %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of users.
func (s *SQLite) Count(ctx context.Context) (int, error) {
	query, args, err := s.sb.Select("COUNT(*)").From("users").ToSql()
	if err != nil {
		return 0, fmt.Errorf("building count: %w", err)
	}
	var n int
	if err := s.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return n, nil
}

// EnsureDefaults inserts the demo accounts when the table is empty.
func (s *SQLite) EnsureDefaults(ctx context.Context, cost int) error {
	n, err := s.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	records, err := DefaultRecords(cost)
	if err != nil {
		return err
	}
	for _, rec := range records {
		if err := s.Insert(ctx, rec); err != nil {
			return fmt.Errorf("seeding default users: %w", err)
		}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}
