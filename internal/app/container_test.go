package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/you/quezi/internal/config"
	"github.com/you/quezi/internal/infrastructure/messaging"
	"github.com/you/quezi/internal/infrastructure/repositories"
	"github.com/you/quezi/internal/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := validation.RegisterGin(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		Env:             "test",
		JWTSecret:       "test-secret",
		JWTIssuer:       "quezi",
		AccessTTL:       15 * time.Minute,
		RefreshTTL:      time.Hour,
		OTPTTL:          10 * time.Minute,
		OTPLength:       6,
		OTPMaxAttempts:  5,
		OTPResendWindow: time.Minute,
		RatingCacheTTL:  time.Minute,
	}
}

// newTestContainer wires the real services on SQLite and miniredis
func newTestContainer(t *testing.T) *Container {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(repositories.Models()...))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	c, err := newContainer(testConfig(), zaptest.NewLogger(t), db, rdb)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

type apiClient struct {
	t     *testing.T
	srv   *httptest.Server
	token string
}

func (a *apiClient) do(method, path string, body interface{}) (int, map[string]interface{}) {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, a.srv.URL+path, &buf)
	require.NoError(a.t, err)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.srv.Client().Do(req)
	require.NoError(a.t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(a.t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp.StatusCode, out
}

func (a *apiClient) registerAndLogin(email, userType string) uint {
	a.t.Helper()

	status, body := a.do(http.MethodPost, "/auth/register", map[string]string{
		"email":    email,
		"name":     "Test " + userType,
		"password": "password123",
		"userType": userType,
	})
	require.Equal(a.t, http.StatusCreated, status, "register: %v", body)

	status, body = a.do(http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": "password123",
	})
	require.Equal(a.t, http.StatusOK, status, "login: %v", body)

	data := body["data"].(map[string]interface{})
	a.token = data["accessToken"].(string)
	user := data["user"].(map[string]interface{})
	return uint(user["id"].(float64))
}

func TestContainer_DefaultsToLogPublisher(t *testing.T) {
	c := newTestContainer(t)

	_, ok := c.Publisher.(*messaging.LogPublisher)
	assert.True(t, ok)

	policies, err := c.PolicySvc.GetPolicies()
	require.NoError(t, err)
	assert.NotEmpty(t, policies)
}

func TestContainer_ReviewFlow(t *testing.T) {
	c := newTestContainer(t)
	srv := httptest.NewServer(c.Router())
	t.Cleanup(srv.Close)

	pro := &apiClient{t: t, srv: srv}
	proID := pro.registerAndLogin("pro@example.com", "PROFESSIONAL")

	client := &apiClient{t: t, srv: srv}
	client.registerAndLogin("client@example.com", "CLIENT")

	status, body := client.do(http.MethodGet, "/auth/me", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "client@example.com", body["data"].(map[string]interface{})["email"])

	review := map[string]interface{}{
		"appointmentId":  "appt-1",
		"professionalId": proID,
		"rating":         4,
		"comment":        "great cut",
	}

	// only clients write reviews
	status, _ = pro.do(http.MethodPost, "/reviews", review)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = client.do(http.MethodPost, "/reviews", review)
	require.Equal(t, http.StatusCreated, status, "create review: %v", body)

	status, _ = client.do(http.MethodPost, "/reviews", review)
	assert.Equal(t, http.StatusConflict, status)

	anon := &apiClient{t: t, srv: srv}
	status, body = anon.do(http.MethodGet, fmt.Sprintf("/professionals/%d/reviews?page=1&limit=10", proID), nil)
	require.Equal(t, http.StatusOK, status)
	meta := body["meta"].(map[string]interface{})
	assert.Equal(t, float64(1), meta["total"])
	assert.Equal(t, float64(1), meta["totalPages"])
	assert.Equal(t, false, meta["hasNextPage"])

	status, body = anon.do(http.MethodGet, fmt.Sprintf("/professionals/%d", proID), nil)
	require.Equal(t, http.StatusOK, status)
	rating := body["data"].(map[string]interface{})["rating"].(map[string]interface{})
	assert.Equal(t, float64(4), rating["average"])
	assert.Equal(t, float64(1), rating["count"])
}

func TestContainer_LogoutRevokesSession(t *testing.T) {
	c := newTestContainer(t)
	srv := httptest.NewServer(c.Router())
	t.Cleanup(srv.Close)

	client := &apiClient{t: t, srv: srv}
	client.registerAndLogin("client@example.com", "CLIENT")

	status, _ := client.do(http.MethodPost, "/auth/logout", nil)
	require.Equal(t, http.StatusOK, status)

	status, body := client.do(http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Session invalid or expired", body["error"])
}

func TestContainer_ProfileIsOwnerOnly(t *testing.T) {
	c := newTestContainer(t)
	srv := httptest.NewServer(c.Router())
	t.Cleanup(srv.Close)

	first := &apiClient{t: t, srv: srv}
	firstID := first.registerAndLogin("first@example.com", "CLIENT")

	second := &apiClient{t: t, srv: srv}
	second.registerAndLogin("second@example.com", "CLIENT")

	status, _ := first.do(http.MethodGet, fmt.Sprintf("/users/%d", firstID), nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = second.do(http.MethodGet, fmt.Sprintf("/users/%d", firstID), nil)
	assert.Equal(t, http.StatusForbidden, status)
}
