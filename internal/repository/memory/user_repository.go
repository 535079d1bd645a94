package memory

import (
	"context"
	"sync"

	"github.com/postboard/postboard/internal/domain"
	apperrors "github.com/postboard/postboard/internal/pkg/errors"
	"github.com/postboard/postboard/internal/pkg/metrics"
)

// UserRepository holds users in process memory, in insertion order
type UserRepository struct {
	mu     sync.RWMutex
	users  []domain.User
	nextID int
}

// NewUserRepository creates a user repository populated with seed.
// The id counter starts after the highest seeded id.
func NewUserRepository(seed []domain.User) *UserRepository {
	users := make([]domain.User, len(seed))
	copy(users, seed)

	ids := make([]int, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}

	metrics.SetStoreRecords(storeUsers, len(users))

	return &UserRepository{
		users:  users,
		nextID: nextIDAfter(ids),
	}
}

// List returns all users in insertion order
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	defer observe(storeUsers, "list")()

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int) (*domain.User, error) {
	defer observe(storeUsers, "get")()

	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		metrics.RecordStoreMiss(storeUsers, "get")
		return nil, apperrors.RecordNotFound(apperrors.KindUser, id)
	}

	user := r.users[i]
	return &user, nil
}

// Create assigns the next id to user and appends it.
// Any id already set on user is overwritten.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	defer observe(storeUsers, "create")()

	r.mu.Lock()
	defer r.mu.Unlock()

	user.ID = r.nextID
	r.nextID++
	r.users = append(r.users, *user)

	metrics.SetStoreRecords(storeUsers, len(r.users))
	return nil
}

// Update merges patch into the stored user and returns the result
func (r *UserRepository) Update(ctx context.Context, id int, patch domain.UserPatch) (*domain.User, error) {
	defer observe(storeUsers, "update")()

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		metrics.RecordStoreMiss(storeUsers, "update")
		return nil, apperrors.RecordNotFound(apperrors.KindUser, id)
	}

	r.users[i].Apply(patch)
	user := r.users[i]
	return &user, nil
}

// Delete removes a user
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	defer observe(storeUsers, "delete")()

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		metrics.RecordStoreMiss(storeUsers, "delete")
		return apperrors.RecordNotFound(apperrors.KindUser, id)
	}

	r.users = append(r.users[:i], r.users[i+1:]...)

	metrics.SetStoreRecords(storeUsers, len(r.users))
	return nil
}

// Count returns the number of stored users
func (r *UserRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

// indexOf must be called with r.mu held
func (r *UserRepository) indexOf(id int) int {
	for i := range r.users {
		if r.users[i].ID == id {
			return i
		}
	}
	return -1
}
