package account

import (
	"context"
	"sync"
	"time"

	"github.com/muhammadheryan/identity-service/model"
)

// Memory keeps accounts in process memory. It backs local development (STORE_DRIVER=memory)
// and scenario tests; a single mutex gives it the same per-record atomicity as the real stores.
type Memory struct {
	mu       sync.Mutex
	accounts map[string]*model.AccountEntity
}

func NewMemoryRepository() *Memory {
	return &Memory{accounts: make(map[string]*model.AccountEntity)}
}

func (m *Memory) Create(_ context.Context, acc *model.AccountEntity) (*model.AccountEntity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkUnique(acc); err != nil {
		return nil, err
	}

	stored := acc.Clone()
	stored.Version = 1
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	m.accounts[stored.ID] = stored

	return stored.Clone(), nil
}

func (m *Memory) Get(_ context.Context, filter *model.AccountFilter) (*model.AccountEntity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, acc := range m.accounts {
		if matches(acc, filter) {
			return acc.Clone(), nil
		}
	}
	return nil, nil
}

func (m *Memory) Update(_ context.Context, acc *model.AccountEntity) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.accounts[acc.ID]
	if !ok || current.Version != acc.Version {
		return ErrStaleRecord
	}
	if err := m.checkUnique(acc); err != nil {
		return err
	}

	now := time.Now().UTC()
	acc.Version++
	acc.UpdatedAt = &now
	m.accounts[acc.ID] = acc.Clone()
	return nil
}

func (m *Memory) checkUnique(acc *model.AccountEntity) error {
	for id, other := range m.accounts {
		if id == acc.ID {
			continue
		}
		if other.Email == acc.Email {
			return &DuplicateFieldError{Field: FieldEmail}
		}
		if acc.Phone != "" && other.Phone == acc.Phone {
			return &DuplicateFieldError{Field: FieldPhone}
		}
	}
	return nil
}

func matches(acc *model.AccountEntity, filter *model.AccountFilter) bool {
	switch {
	case filter.ID != "":
		return acc.ID == filter.ID
	case filter.Email != "":
		return acc.Email == filter.Email
	case filter.Phone != "":
		return acc.Phone == filter.Phone
	}
	return false
}
