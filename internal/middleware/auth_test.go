package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-echo-newsroom/internal/i18n"
	"go-echo-newsroom/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

const testSecret = "test-secret"

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()

	translator, err := i18n.New(language.English)
	require.NoError(t, err)

	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	e.Use(Locale(translator))
	return e
}

func principalEcho(c echo.Context) error {
	p := GetPrincipal(c)
	if p == nil {
		return c.String(http.StatusOK, "anonymous")
	}
	return c.String(http.StatusOK, string(p.Role))
}

func sign(t *testing.T, secret string, claims JWTClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func token(t *testing.T, id uint, role models.Role) string {
	t.Helper()
	return sign(t, testSecret, JWTClaims{
		UserID: id,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
}

func do(e *echo.Echo, method, target, bearer string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuth(t *testing.T) {
	e := newTestEcho(t)
	e.GET("/private", principalEcho, JWTAuth(testSecret))

	expired := sign(t, testSecret, JWTClaims{
		UserID: 1,
		Role:   models.RoleEditor,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	foreign := sign(t, "other-secret", JWTClaims{UserID: 1, Role: models.RoleEditor})

	tests := []struct {
		name   string
		bearer string
		status int
		body   string
	}{
		{name: "valid token", bearer: token(t, 1, models.RoleEditor), status: http.StatusOK, body: "editor"},
		{name: "missing token", status: http.StatusUnauthorized},
		{name: "garbage token", bearer: "not-a-jwt", status: http.StatusUnauthorized},
		{name: "expired token", bearer: expired, status: http.StatusUnauthorized},
		{name: "wrong secret", bearer: foreign, status: http.StatusUnauthorized},
		{name: "unknown role", bearer: token(t, 1, models.Role("admin")), status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, http.MethodGet, "/private", tt.bearer)

			assert.Equal(t, tt.status, rec.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
			}
			if tt.status == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error":"You need to sign in before continuing"}`, rec.Body.String())
			}
		})
	}
}

func TestJWTAuthRejectsWrongScheme(t *testing.T) {
	e := newTestEcho(t)
	e.GET("/private", principalEcho, JWTAuth(testSecret))

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Basic "+token(t, 1, models.RoleEditor))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalJWTAuth(t *testing.T) {
	e := newTestEcho(t)
	e.GET("/public", principalEcho, OptionalJWTAuth(testSecret))

	assert.Equal(t, "anonymous", do(e, http.MethodGet, "/public", "").Body.String())
	assert.Equal(t, "anonymous", do(e, http.MethodGet, "/public", "garbage").Body.String())
	assert.Equal(t, "subscriber", do(e, http.MethodGet, "/public", token(t, 3, models.RoleSubscriber)).Body.String())
}

func TestRequireRole(t *testing.T) {
	e := newTestEcho(t)
	e.GET("/desk", principalEcho, JWTAuth(testSecret), RequireRole(models.RoleJournalist, models.RoleEditor))

	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/desk", token(t, 1, models.RoleJournalist)).Code)
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/desk", token(t, 2, models.RoleEditor)).Code)

	rec := do(e, http.MethodGet, "/desk", token(t, 3, models.RoleSubscriber))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"You are not authorized to perform this action"}`, rec.Body.String())
}

func TestRequireRoleTranslatesForbidden(t *testing.T) {
	e := newTestEcho(t)
	e.GET("/desk", principalEcho, JWTAuth(testSecret), RequireRole(models.RoleEditor))

	rec := do(e, http.MethodGet, "/desk?locale=sv", token(t, 1, models.RoleVisitor))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"Du har inte behörighet att utföra denna åtgärd"}`, rec.Body.String())
}

func TestRequireRoleWithoutPrincipal(t *testing.T) {
	e := newTestEcho(t)
	e.GET("/desk", principalEcho, RequireRole(models.RoleEditor))

	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/desk", "").Code)
}

func TestRequireStaff(t *testing.T) {
	e := newTestEcho(t)
	e.GET("/desk", principalEcho, JWTAuth(testSecret), RequireStaff())

	tests := map[models.Role]int{
		models.RoleJournalist: http.StatusOK,
		models.RoleEditor:     http.StatusOK,
		models.RoleSubscriber: http.StatusForbidden,
		models.RoleVisitor:    http.StatusForbidden,
	}
	for role, status := range tests {
		assert.Equal(t, status, do(e, http.MethodGet, "/desk", token(t, 1, role)).Code, role)
	}

	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/desk", "").Code)
}
