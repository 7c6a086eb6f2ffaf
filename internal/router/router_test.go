package router

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"parampara/internal/auth"
	"parampara/internal/config"
	"parampara/internal/handler"
	"parampara/internal/model"
	"parampara/internal/repository"
	"parampara/internal/service"
	"parampara/internal/storage"
	"parampara/internal/upload"
)

const testSecret = "router-test-secret"

// newTestAPI wires the full route table against an in-memory database, the way
// cmd/server does, and returns a registered user for issuing tokens.
func newTestAPI(t *testing.T) (*echo.Echo, *auth.JWTService, *model.User) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.LocationRecord{}, &model.Submission{}))

	user := &model.User{Username: "asha", Email: "asha@example.com", PasswordHash: "hash"}
	require.NoError(t, db.Create(user).Error)

	mediaStore, err := storage.NewMediaStore(t.TempDir())
	require.NoError(t, err)

	jwtService := auth.NewJWTService(testSecret)
	sessionStore := auth.NewSessionStore(nil)

	authService := service.NewAuthService(repository.NewUserRepository(db), jwtService, sessionStore)
	locationService := service.NewLocationService(repository.NewLocationRepository(db))
	submissionService := service.NewSubmissionService(
		repository.NewSubmissionRepository(db),
		upload.NewValidator(1024*1024),
		mediaStore,
		nil, // transcription and translation are not exercised by these routes
		nil,
		nil,
		time.Second,
	)

	e := echo.New()
	Register(
		e,
		&config.Config{SecretKey: testSecret},
		handler.NewAuthHandler(authService),
		handler.NewLocationHandler(locationService),
		handler.NewSubmissionHandler(submissionService),
		handler.NewMetaHandler(),
	)
	return e, jwtService, user
}

func doRequest(e *echo.Echo, method, path, bearer string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSecuredRoutes_AcceptBearerAccessToken(t *testing.T) {
	e, jwtService, user := newTestAPI(t)

	token, err := jwtService.GenerateAccessToken(user.ID, user.Username)
	require.NoError(t, err)

	rec := doRequest(e, http.MethodGet, "/api/submissions", token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSecuredRoutes_ClaimsCarryTheUser(t *testing.T) {
	e, jwtService, user := newTestAPI(t)

	token, err := jwtService.GenerateAccessToken(user.ID, user.Username)
	require.NoError(t, err)

	// record through the API, then read it back as the same user
	rec := doRequest(e, http.MethodPost, "/api/locations", token, `{"address":"Puri, Odisha"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/locations/latest", token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Puri, Odisha")
}

func TestSecuredRoutes_RejectBadTokens(t *testing.T) {
	e, _, user := newTestAPI(t)

	t.Run("no token", func(t *testing.T) {
		rec := doRequest(e, http.MethodGet, "/api/submissions", "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := doRequest(e, http.MethodGet, "/api/submissions", "not-a-jwt", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with the wrong secret", func(t *testing.T) {
		forged, err := auth.NewJWTService("some-other-secret").GenerateAccessToken(user.ID, user.Username)
		require.NoError(t, err)

		rec := doRequest(e, http.MethodGet, "/api/submissions", forged, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestPublicRoutes_NeedNoToken(t *testing.T) {
	e, _, _ := newTestAPI(t)

	for _, path := range []string{"/healthz", "/api/stats", "/api/meta/regions", "/api/meta/languages", "/api/meta/categories"} {
		rec := doRequest(e, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}
