package cmd

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/postboard/postboard/internal/domain"
	"github.com/postboard/postboard/internal/handler"
	"github.com/postboard/postboard/internal/repository/memory"
	"github.com/postboard/postboard/internal/service"
)

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

// run executes postctl against srv and returns stdout
func run(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()

	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--host", srv.URL, "--retries", "0"}, args...))

	err := root.Execute()
	return out.String(), err
}

func TestUsersList_Table(t *testing.T) {
	srv := newAPIServer(t)

	out, err := run(t, srv, "users", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "USERNAME")
	assert.Contains(t, out, "aysedemir")
	assert.Contains(t, out, "emre.sahin@hotmail.com")
}

func TestUsersCreateUpdateDelete(t *testing.T) {
	srv := newAPIServer(t)

	out, err := run(t, srv, "-o", "json", "users", "create", "--name", "Zeynep Arslan", "--username", "zeynep", "--email", "zeynep@example.com")
	require.NoError(t, err)

	var user domain.User
	require.NoError(t, json.Unmarshal([]byte(out), &user))
	assert.Equal(t, 6, user.ID)

	out, err = run(t, srv, "-o", "json", "users", "update", "6", "--username", "zarslan")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &user))
	assert.Equal(t, "zarslan", user.Username)
	assert.Equal(t, "Zeynep Arslan", user.Name)

	out, err = run(t, srv, "users", "delete", "6")
	require.NoError(t, err)
	assert.Equal(t, "deleted user 6\n", out)

	_, err = run(t, srv, "users", "get", "6")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestUsersCreate_RequiresFlags(t *testing.T) {
	srv := newAPIServer(t)

	_, err := run(t, srv, "users", "create", "--name", "x")
	require.Error(t, err)
}

func TestUsersCheck(t *testing.T) {
	srv := newAPIServer(t)

	out, err := run(t, srv, "-o", "json", "users", "check", "--username", "AYSEDEMIR")
	require.NoError(t, err)
	var res domain.Availability
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.False(t, res.Available)

	out, err = run(t, srv, "-o", "json", "users", "check", "--username", "aysedemir", "--exclude", "2")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Available)

	_, err = run(t, srv, "users", "check", "--username", "a", "--email", "b")
	require.Error(t, err)

	_, err = run(t, srv, "users", "check")
	require.Error(t, err)
}

func TestUsersPosts(t *testing.T) {
	srv := newAPIServer(t)

	out, err := run(t, srv, "-o", "json", "users", "posts", "2")
	require.NoError(t, err)

	var posts []domain.Post
	require.NoError(t, json.Unmarshal([]byte(out), &posts))
	require.Len(t, posts, 2)
	assert.Equal(t, 5, posts[0].ID)
}

func TestPostsSearchAndStats(t *testing.T) {
	srv := newAPIServer(t)

	out, err := run(t, srv, "posts", "search", "react")
	require.NoError(t, err)
	assert.Contains(t, out, "Getting Started with React Development")

	out, err = run(t, srv, "posts", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "TOTAL POSTS")
	assert.Contains(t, out, "2.5")
}

func TestPostsLifecycle(t *testing.T) {
	srv := newAPIServer(t)

	out, err := run(t, srv, "-o", "json", "posts", "create", "--user", "3", "--title", "Hello")
	require.NoError(t, err)
	var post domain.Post
	require.NoError(t, json.Unmarshal([]byte(out), &post))
	assert.Equal(t, 6, post.ID)

	out, err = run(t, srv, "posts", "get", "6", "--author")
	require.NoError(t, err)
	assert.Contains(t, out, "AUTHOR")
	assert.Contains(t, out, "Mehmet Kaya")

	out, err = run(t, srv, "-o", "json", "posts", "update", "6", "--body", "world")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &post))
	assert.Equal(t, "Hello", post.Title)
	assert.Equal(t, "world", post.Body)

	out, err = run(t, srv, "posts", "delete", "6")
	require.NoError(t, err)
	assert.Equal(t, "deleted post 6\n", out)
}

func TestInvalidIDAndOutput(t *testing.T) {
	srv := newAPIServer(t)

	_, err := run(t, srv, "posts", "get", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid id")

	_, err = run(t, srv, "-o", "yaml", "posts", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestGetHost(t *testing.T) {
	t.Setenv(hostEnv, "")
	assert.Equal(t, defaultHost, (&options{}).getHost())

	t.Setenv(hostEnv, "http://env:3000")
	assert.Equal(t, "http://env:3000", (&options{}).getHost())
	assert.Equal(t, "http://flag:3000", (&options{host: "http://flag:3000"}).getHost())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
