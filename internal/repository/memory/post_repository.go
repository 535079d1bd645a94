package memory

import (
	"context"
	"sync"

	"github.com/postboard/postboard/internal/domain"
	apperrors "github.com/postboard/postboard/internal/pkg/errors"
	"github.com/postboard/postboard/internal/pkg/metrics"
)

// PostRepository holds posts in process memory, in insertion order
type PostRepository struct {
	mu     sync.RWMutex
	posts  []domain.Post
	nextID int
}

// NewPostRepository creates a post repository populated with seed.
// The id counter starts after the highest seeded id.
func NewPostRepository(seed []domain.Post) *PostRepository {
	posts := make([]domain.Post, len(seed))
	copy(posts, seed)

	ids := make([]int, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}

	metrics.SetStoreRecords(storePosts, len(posts))

	return &PostRepository{
		posts:  posts,
		nextID: nextIDAfter(ids),
	}
}

// List returns all posts in insertion order
func (r *PostRepository) List(ctx context.Context) ([]domain.Post, error) {
	defer observe(storePosts, "list")()

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Post, len(r.posts))
	copy(out, r.posts)
	return out, nil
}

// ListByUserID returns the posts written by userID, in store order.
// An unknown userID yields an empty list, not an error.
func (r *PostRepository) ListByUserID(ctx context.Context, userID int) ([]domain.Post, error) {
	defer observe(storePosts, "list_by_user")()

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Post, 0)
	for _, p := range r.posts {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

// GetByID retrieves a post by ID
func (r *PostRepository) GetByID(ctx context.Context, id int) (*domain.Post, error) {
	defer observe(storePosts, "get")()

	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		metrics.RecordStoreMiss(storePosts, "get")
		return nil, apperrors.RecordNotFound(apperrors.KindPost, id)
	}

	post := r.posts[i]
	return &post, nil
}

// Create assigns the next id to post and appends it.
// UserID is stored as given, without checking that the user exists.
func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	defer observe(storePosts, "create")()

	r.mu.Lock()
	defer r.mu.Unlock()

	post.ID = r.nextID
	r.nextID++
	r.posts = append(r.posts, *post)

	metrics.SetStoreRecords(storePosts, len(r.posts))
	return nil
}

// Update merges patch into the stored post and returns the result
func (r *PostRepository) Update(ctx context.Context, id int, patch domain.PostPatch) (*domain.Post, error) {
	defer observe(storePosts, "update")()

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		metrics.RecordStoreMiss(storePosts, "update")
		return nil, apperrors.RecordNotFound(apperrors.KindPost, id)
	}

	r.posts[i].Apply(patch)
	post := r.posts[i]
	return &post, nil
}

// Delete removes a post
func (r *PostRepository) Delete(ctx context.Context, id int) error {
	defer observe(storePosts, "delete")()

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		metrics.RecordStoreMiss(storePosts, "delete")
		return apperrors.RecordNotFound(apperrors.KindPost, id)
	}

	r.posts = append(r.posts[:i], r.posts[i+1:]...)

	metrics.SetStoreRecords(storePosts, len(r.posts))
	return nil
}

// Count returns the number of stored posts
func (r *PostRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.posts)
}

// indexOf must be called with r.mu held
func (r *PostRepository) indexOf(id int) int {
	for i := range r.posts {
		if r.posts[i].ID == id {
			return i
		}
	}
	return -1
}
