package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"inkstream/internal/config"
	"inkstream/internal/models"
	"inkstream/internal/poststore"
	"inkstream/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock of the UserRepository interface.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockGenreRepository is a mock of the GenreRepository interface.
type MockGenreRepository struct {
	mock.Mock
}

func (m *MockGenreRepository) List(ctx context.Context) ([]models.Genre, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Genre), args.Error(1)
}

func (m *MockGenreRepository) GetByID(ctx context.Context, id uint) (*models.Genre, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Genre), args.Error(1)
}

func (m *MockGenreRepository) GetByName(ctx context.Context, name string) (*models.Genre, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Genre), args.Error(1)
}

func (m *MockGenreRepository) Create(ctx context.Context, genre *models.Genre) error {
	args := m.Called(ctx, genre)
	return args.Error(0)
}

func (m *MockGenreRepository) SetUserGenres(ctx context.Context, userID uint, genreIDs []uint) error {
	args := m.Called(ctx, userID, genreIDs)
	return args.Error(0)
}

func (m *MockGenreRepository) AddUserGenre(ctx context.Context, userID, genreID uint) error {
	args := m.Called(ctx, userID, genreID)
	return args.Error(0)
}

func (m *MockGenreRepository) UserGenres(ctx context.Context, userID uint) ([]models.Genre, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Genre), args.Error(1)
}

func (m *MockGenreRepository) UserGenreIDs(ctx context.Context, userID uint) ([]uint, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

// testServer bundles a Server wired with mocks and an in-memory post store,
// plus a Fiber app with the full route table mounted.
type testServer struct {
	server    *Server
	app       *fiber.App
	userRepo  *MockUserRepository
	genreRepo *MockGenreRepository
	store     *poststore.MemoryStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	cfg := &config.Config{
		Port:          "0",
		JWTSecret:     "test_secret",
		TokenTTLHours: 24,
		PostsDir:      t.TempDir(),
		Env:           "test",
	}

	userRepo := new(MockUserRepository)
	genreRepo := new(MockGenreRepository)
	store := poststore.NewMemoryStore()

	// Built directly so tests do not register the global Prometheus
	// collectors over and over.
	s := &Server{
		config:      cfg,
		userRepo:    userRepo,
		genreRepo:   genreRepo,
		store:       store,
		postService: service.NewPostService(store, genreRepo),
		feedService: service.NewFeedService(store, genreRepo),
	}

	app := fiber.New()
	s.SetupRoutes(app)

	return &testServer{
		server:    s,
		app:       app,
		userRepo:  userRepo,
		genreRepo: genreRepo,
		store:     store,
	}
}

// authHeader returns a valid Bearer header for the given user.
func (ts *testServer) authHeader(t *testing.T, userID uint) string {
	t.Helper()
	token, err := ts.server.generateToken(userID, "testuser")
	require.NoError(t, err)
	return "Bearer " + token
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}
