package impl

import (
	"context"
	"sync"
	"time"

	"intranet/internal/domain/entity"
	"intranet/internal/domain/repository"

	"github.com/google/uuid"
)

// fakeUserRepo is an in-memory UserRepository. The real repositories are
// backed by gorm; the usecases only care about the interface contract.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User

	findErr        error
	updateErr      error
	lastLoginErr   error
	lastLoginCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findErr != nil {
		return nil, r.findErr
	}

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	clone := *user

	return &clone, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findErr != nil {
		return nil, r.findErr
	}

	for _, user := range r.users {
		if user.Email == email {
			clone := *user

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	clone := *user
	r.users[user.ID] = &clone

	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.updateErr != nil {
		return r.updateErr
	}

	clone := *user
	r.users[user.ID] = &clone

	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastLoginCalls++
	if r.lastLoginErr != nil {
		return r.lastLoginErr
	}

	if user, ok := r.users[id]; ok {
		user.LastLogin = &at
	}

	return nil
}

// mutate edits the stored record in place, bypassing the repository contract.
// Tests use it to simulate out-of-band changes such as an admin deactivating
// an account while a token is still in circulation.
func (r *fakeUserRepo) mutate(id uuid.UUID, fn func(*entity.User)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user, ok := r.users[id]; ok {
		fn(user)
	}
}

// fakeTxManager runs the transactional function against the same in-memory
// repository, without any transactional semantics.
type fakeTxManager struct {
	repo    *fakeUserRepo
	execErr error
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	if m.execErr != nil {
		return m.execErr
	}

	return fn(fakeRepoFactory{repo: m.repo})
}

type fakeRepoFactory struct {
	repo *fakeUserRepo
}

func (f fakeRepoFactory) UserRepo() repository.UserRepository {
	return f.repo
}
