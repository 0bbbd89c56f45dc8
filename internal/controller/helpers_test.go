package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"nexfolio_backend/internal/middleware"
	"nexfolio_backend/internal/model"
	"nexfolio_backend/internal/service"
	"nexfolio_backend/pkg/config"
	"nexfolio_backend/pkg/database"
	"nexfolio_backend/pkg/utils/jwt"
	"nexfolio_backend/pkg/utils/storage"
)

const cookieName = "nexfolio_session"

type testEnv struct {
	app       *fiber.App
	db        *gorm.DB
	uploadDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	db, err := database.New(config.DatabaseConfig{
		Driver:       "sqlite",
		URL:          "file:ctl_" + name + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	require.NoError(t, database.Migrate(db, model.All()...))

	uploadDir := t.TempDir()
	local, err := storage.NewLocalStorage(uploadDir, "/uploads")
	require.NoError(t, err)

	tokens := jwt.NewManager("controller-test-secret-0123456789abcdef", time.Hour)

	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler,
		BodyLimit:    16 << 20,
	})
	SetupRoutes(app, Handlers{
		Auth:         NewAuthController(service.NewAuthService(db, tokens), cookieName, time.Hour, false),
		Profile:      NewProfileController(service.NewProfileService(db)),
		Provider:     NewProviderController(service.NewProviderService(db)),
		Portfolio:    NewPortfolioController(service.NewPortfolioService(db)),
		Booking:      NewBookingController(service.NewBookingService(db)),
		Review:       NewReviewController(service.NewReviewService(db)),
		Subscription: NewSubscriptionController(service.NewSubscriptionService(db, 30)),
		Upload:       NewUploadController(service.NewUploadService(local)),
		Health:       NewHealthController(db),
	}, middleware.AuthMiddleware(tokens, cookieName))

	return &testEnv{app: app, db: db, uploadDir: uploadDir}
}

// do sends a JSON request and decodes the JSON response into out when out is non-nil.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}, out interface{}) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return e.send(t, req, out)
}

func (e *testEnv) send(t *testing.T, req *http.Request, out interface{}) int {
	t.Helper()

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// register creates an account and returns its session token.
func (e *testEnv) register(t *testing.T, email string) string {
	t.Helper()
	var res struct {
		Token string `json:"token"`
	}
	status := e.do(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":    email,
		"password": "password123",
		"name":     strings.Split(email, "@")[0],
	}, &res)
	require.Equal(t, fiber.StatusCreated, status)
	require.NotEmpty(t, res.Token)
	return res.Token
}

func (e *testEnv) createProfile(t *testing.T, token, handle, role string) {
	t.Helper()
	status := e.do(t, http.MethodPost, "/api/profile/create", token, fiber.Map{
		"handle": handle,
		"role":   role,
	}, nil)
	require.Equal(t, fiber.StatusOK, status)
}

// newProvider registers a provider account with a Provider row and returns
// its token and provider ID.
func (e *testEnv) newProvider(t *testing.T, handle string) (string, uint) {
	t.Helper()
	token := e.register(t, handle+"@example.com")
	e.createProfile(t, token, handle, "provider")

	var res struct {
		ProviderID uint `json:"providerId"`
	}
	status := e.do(t, http.MethodPost, "/api/provider/setup", token, fiber.Map{
		"profession":   "Makeup Artist",
		"serviceTypes": []string{"Bridal", "Editorial"},
		"pricing":      fiber.Map{"trial": 40, "full": 120},
	}, &res)
	require.Equal(t, fiber.StatusOK, status)
	return token, res.ProviderID
}

func (e *testEnv) newClient(t *testing.T, handle string) string {
	t.Helper()
	token := e.register(t, handle+"@example.com")
	e.createProfile(t, token, handle, "client")
	return token
}

type errorBody struct {
	Error  string `json:"error"`
	Issues []struct {
		Field string `json:"field"`
		Rule  string `json:"rule"`
	} `json:"issues"`
}
