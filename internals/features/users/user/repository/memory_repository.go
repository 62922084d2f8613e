package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"absensiku_backend/internals/features/users/user/model"
)

// MemoryUserRepository: implementasi in-memory utk test.
type MemoryUserRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]model.UserModel
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[uuid.UUID]model.UserModel),
	}
}

// Put menaruh (atau menimpa) satu user; seed data test.
func (r *MemoryUserRepository) Put(u model.UserModel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
}

func (r *MemoryUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	out := u
	return &out, nil
}

func (r *MemoryUserRepository) ListActiveByCompany(ctx context.Context, companyID uuid.UUID, department string) ([]model.UserModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.UserModel
	for _, u := range r.users {
		if u.CompanyID != companyID || !u.IsActive {
			continue
		}
		if department != "" && (u.Department == nil || *u.Department != department) {
			continue
		}
		out = append(out, u)
	}
	// urutan sama dengan implementasi GORM: nama, lalu id
	sort.Slice(out, func(i, j int) bool {
		if out[i].FullName != out[j].FullName {
			return out[i].FullName < out[j].FullName
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}
