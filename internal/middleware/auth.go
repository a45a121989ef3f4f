package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go-echo-newsroom/internal/access"
	"go-echo-newsroom/internal/i18n"
	"go-echo-newsroom/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

type JWTClaims struct {
	UserID uint        `json:"user_id"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

type contextKey string

const PrincipalKey contextKey = "principal"

var (
	errMissingToken = errors.New("missing authorization header")
	errTokenFormat  = errors.New("invalid authorization header format")
	errInvalidToken = errors.New("invalid or expired token")
)

func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, err := principalFromRequest(c, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, Message(c, i18n.Unauthorized)).SetInternal(err)
			}

			c.Set(string(PrincipalKey), principal)
			return next(c)
		}
	}
}

// OptionalJWTAuth attaches a principal when a valid token is present and
// otherwise lets the request through as anonymous.
func OptionalJWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if principal, err := principalFromRequest(c, secret); err == nil {
				c.Set(string(PrincipalKey), principal)
			}
			return next(c)
		}
	}
}

// RequireRole must run after JWTAuth.
func RequireRole(roles ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal := GetPrincipal(c)
			if principal == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, Message(c, i18n.Unauthorized))
			}
			if !principal.HasRole(roles...) {
				return echo.NewHTTPError(http.StatusForbidden, Message(c, i18n.Forbidden))
			}
			return next(c)
		}
	}
}

// RequireStaff admits journalists and editors. It must run after JWTAuth.
func RequireStaff() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal := GetPrincipal(c)
			if principal == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, Message(c, i18n.Unauthorized))
			}
			if !principal.Role.IsStaff() {
				return echo.NewHTTPError(http.StatusForbidden, Message(c, i18n.Forbidden))
			}
			return next(c)
		}
	}
}

// GetPrincipal returns nil for anonymous requests.
func GetPrincipal(c echo.Context) *access.Principal {
	principal, _ := c.Get(string(PrincipalKey)).(*access.Principal)
	return principal
}

func principalFromRequest(c echo.Context, secret string) (*access.Principal, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, errMissingToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, errTokenFormat
	}

	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errInvalidToken
	}
	if claims.UserID == 0 || !claims.Role.Valid() {
		return nil, errInvalidToken
	}

	return &access.Principal{UserID: claims.UserID, Role: claims.Role}, nil
}
