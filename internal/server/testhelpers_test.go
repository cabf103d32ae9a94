package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"accessdesk/internal/config"
	"accessdesk/internal/featureflags"
	"accessdesk/internal/models"
	"accessdesk/internal/repository"
	"accessdesk/internal/service"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Software{},
		&models.AccessRequest{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

// newTestServer builds a Server around an in-memory DB without Redis or
// Prometheus wiring.
func newTestServer(t *testing.T, db *gorm.DB) *Server {
	t.Helper()

	cfg := &config.Config{
		JWTSecret:      "test-secret-key-for-handler-tests",
		JWTExpiryHours: 1,
		Env:            "test",
		FeatureFlags:   "open_signup=on",
	}

	userRepo := repository.NewUserRepository(db)
	softwareRepo := repository.NewSoftwareRepository(db)
	requestRepo := repository.NewAccessRequestRepository(db)

	s := &Server{
		config:       cfg,
		db:           db,
		userRepo:     userRepo,
		softwareRepo: softwareRepo,
		requestRepo:  requestRepo,
		featureFlags: featureflags.NewManager(cfg.FeatureFlags),
	}
	s.userService = service.NewUserService(userRepo)
	s.softwareService = service.NewSoftwareService(softwareRepo)
	s.requestService = service.NewRequestService(db, requestRepo, softwareRepo)
	return s
}

func createTestUser(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  string(hashed),
		Role:      role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

// asUser wraps a handler so it runs with the given user's identity, skipping
// token parsing.
func asUser(user *models.User, handler fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", user.ID)
		c.Locals("userRole", user.Role)
		return handler(c)
	}
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
