package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/postboard/postboard/internal/domain"
	"github.com/postboard/postboard/internal/dto"
	"github.com/postboard/postboard/internal/handler"
	"github.com/postboard/postboard/internal/repository/memory"
	"github.com/postboard/postboard/internal/service"
)

// newAPIServer serves the real handlers over freshly seeded stores
func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()

	users := memory.NewUserRepository(domain.SeedUsers())
	posts := memory.NewPostRepository(domain.SeedPosts())
	query := service.NewQueryService(users, posts)
	postService := service.NewPostService(posts)

	app := fiber.New()
	handler.NewUsersHandler(service.NewUserService(users), postService, query, zap.NewNop()).RegisterRoutes(app)
	handler.NewPostsHandler(postService, query, zap.NewNop()).RegisterRoutes(app)

	srv := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(url string) *Client {
	c := New(Config{BaseURL: url, MaxRetries: 2})
	c.sleep = func(ctx context.Context, d time.Duration) error { return ctx.Err() }
	return c
}

func strPtr(s string) *string { return &s }

func TestClient_Users(t *testing.T) {
	srv := newAPIServer(t)
	c := newTestClient(srv.URL)
	ctx := context.Background()

	users, err := c.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 5)
	assert.Equal(t, 1, users[0].ID)
	assert.Equal(t, 5, users[4].ID)

	user, err := c.GetUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "ahmetyilmaz", user.Username)

	created, err := c.CreateUser(ctx, dto.CreateUserRequest{Name: "Zeynep Arslan", Username: "zeynep", Email: "zeynep@example.com"})
	require.NoError(t, err)
	assert.Equal(t, 6, created.ID)

	updated, err := c.UpdateUser(ctx, created.ID, dto.UpdateUserRequest{Email: strPtr("z.arslan@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "Zeynep Arslan", updated.Name)
	assert.Equal(t, "z.arslan@example.com", updated.Email)

	require.NoError(t, c.DeleteUser(ctx, created.ID))

	_, err = c.GetUser(ctx, created.ID)
	assert.True(t, IsNotFound(err))
}

func TestClient_UserPostsNewestFirst(t *testing.T) {
	srv := newAPIServer(t)
	c := newTestClient(srv.URL)

	posts, err := c.ListUserPosts(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, []int{3, 2, 1}, []int{posts[0].ID, posts[1].ID, posts[2].ID})
}

func TestClient_Availability(t *testing.T) {
	srv := newAPIServer(t)
	c := newTestClient(srv.URL)
	ctx := context.Background()

	res, err := c.CheckUsername(ctx, "AhmetYilmaz", nil)
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Equal(t, "username", res.Field)

	own := 1
	res, err = c.CheckUsername(ctx, "ahmetyilmaz", &own)
	require.NoError(t, err)
	assert.True(t, res.Available)

	res, err = c.CheckEmail(ctx, "EMRE.SAHIN@hotmail.com", nil)
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Equal(t, "email", res.Field)
}

func TestClient_Posts(t *testing.T) {
	srv := newAPIServer(t)
	c := newTestClient(srv.URL)
	ctx := context.Background()

	posts, err := c.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 5)
	assert.Equal(t, 5, posts[0].ID)

	found, err := c.SearchPosts(ctx, "React")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, 1, found[0].ID)

	stats, err := c.PostStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalPosts)
	assert.Equal(t, map[int]int{1: 3, 2: 2}, stats.PostsByUser)
	assert.InDelta(t, 2.5, stats.AveragePostsPerUser, 0.001)

	created, err := c.CreatePost(ctx, dto.CreatePostRequest{UserID: 2, Title: "Draft"})
	require.NoError(t, err)
	assert.Equal(t, 6, created.ID)
	assert.Equal(t, "", created.Body)

	updated, err := c.UpdatePost(ctx, created.ID, dto.UpdatePostRequest{Body: strPtr("filled in")})
	require.NoError(t, err)
	assert.Equal(t, "Draft", updated.Title)
	assert.Equal(t, "filled in", updated.Body)

	author, err := c.PostAuthor(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, Author{UserID: 2, Name: "Ayşe Demir"}, *author)

	require.NoError(t, c.DeletePost(ctx, created.ID))
	_, err = c.GetPost(ctx, created.ID)
	assert.True(t, IsNotFound(err))
}

func TestClient_APIErrorMessage(t *testing.T) {
	srv := newAPIServer(t)
	c := newTestClient(srv.URL)

	_, err := c.CreatePost(context.Background(), dto.CreatePostRequest{Title: "no author"})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Request validation failed", apiErr.Message)
	assert.Equal(t, "api error (400): Request validation failed", err.Error())
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":1,"name":"a","username":"a","email":"a@b.c"}`))
	}))
	defer srv.Close()

	user, err := newTestClient(srv.URL).GetUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_DoesNotRetryPostOrClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Not Found","message":"user not found"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	_, err := c.CreateUser(context.Background(), dto.CreateUserRequest{Name: "a", Username: "a", Email: "a"})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())

	_, err = c.GetUser(context.Background(), 9)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "user not found")
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_HonorsRetryAfter(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "7")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	c.config.MaxRetryAfter = time.Minute
	var waits []time.Duration
	c.sleep = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}

	posts, err := c.ListPosts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Equal(t, []time.Duration{7 * time.Second}, waits)
}

func TestClient_ExhaustedRetriesReturnAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ListUsers(context.Background())
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.Status)
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url).ListUsers(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 0, apiErr.Status)
	assert.Contains(t, err.Error(), "network error")
}

func TestClient_ContextCancelStopsRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, MaxRetries: 5, RetryBackoff: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListUsers(ctx)
	require.Error(t, err)
}

func TestBackoff(t *testing.T) {
	c := New(Config{RetryBackoff: 100 * time.Millisecond, MaxRetryAfter: 2 * time.Second})

	assert.Equal(t, 100*time.Millisecond, c.backoff(1, errors.New("x")))
	assert.Equal(t, 200*time.Millisecond, c.backoff(2, errors.New("x")))
	assert.Equal(t, 400*time.Millisecond, c.backoff(3, errors.New("x")))

	limited := &retryAfterError{APIError: &APIError{Status: 429}, after: time.Minute}
	assert.Equal(t, 2*time.Second, c.backoff(1, limited))
}
