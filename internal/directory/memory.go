package directory

import (
	"context"
	"sync"

	"github.com/nhle/project-dashboard/internal/model"
)

// Memory is an in-process Repository. Lookups scan records in insertion
// order.
type Memory struct {
	mu      sync.Mutex
	records []Record
}

// NewMemory returns a Memory holding a copy of records.
func NewMemory(records ...Record) *Memory {
	m := &Memory{}
	for _, r := range records {
		m.records = append(m.records, cloneRecord(r))
	}
	return m
}

// NewMemoryWithDefaults returns a Memory seeded with the demo accounts.
func NewMemoryWithDefaults(cost int) (*Memory, error) {
	records, err := DefaultRecords(cost)
	if err != nil {
		return nil, err
	}
	return NewMemory(records...), nil
}

// FindByEmail returns the record with the given email.
func (m *Memory) FindByEmail(_ context.Context, email string) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.records {
		if r.User.Email == email {
			return cloneRecord(r), nil
		}
	}
	return Record{}, ErrNotFound
}

// FindByID returns the record with the given id.
func (m *Memory) FindByID(_ context.Context, id string) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.indexOf(id); i >= 0 {
		return cloneRecord(m.records[i]), nil
	}
	return Record{}, ErrNotFound
}

// Insert appends rec unless its email is already present.
func (m *Memory) Insert(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.records {
		if r.User.Email == rec.User.Email {
			return ErrEmailExists
		}
	}
	m.records = append(m.records, cloneRecord(rec))
	return nil
}

// UpdateByID replaces the profile of the record with the given id.
func (m *Memory) UpdateByID(_ context.Context, id string, user model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	user = user.Redacted()
	user.ID = id
	m.records[i].User = user
	return nil
}

// Len returns the number of records.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

func (m *Memory) indexOf(id string) int {
	for i, r := range m.records {
		if r.User.ID == id {
			return i
		}
	}
	return -1
}

func cloneRecord(r Record) Record {
	return Record{
		User:         r.User.Redacted(),
		PasswordHash: append([]byte(nil), r.PasswordHash...),
	}
}
