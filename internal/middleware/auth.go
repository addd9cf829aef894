package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/partnerhub/backend/internal/services"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type contextKey string

const (
	partnerIDKey contextKey = "partnerID"
	roleKey      contextKey = "role"
)

const (
	RolePartner = "partner"
	RoleAdmin   = "admin"
)

// Claims carried by partner and operator tokens.
type Claims struct {
	PartnerID string `json:"partner_id"`
	Role      string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			services.WriteError(w, fmt.Errorf("%w: authorization header required", services.ErrUnauthenticated))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			services.WriteError(w, fmt.Errorf("%w: invalid authorization header format", services.ErrUnauthenticated))
			return
		}

		claims, err := ValidateToken(parts[1], secret())
		if err != nil {
			logrus.WithError(err).WithField("path", r.URL.Path).Debug("token rejected")
			services.WriteError(w, fmt.Errorf("%w: invalid token", services.ErrUnauthenticated))
			return
		}

		next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), claims.PartnerID, claims.Role)))
	})
}

// RequireRole rejects authenticated callers whose token lacks the role.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if RoleFromContext(r.Context()) != role {
				services.WriteError(w, services.ErrPermissionDenied)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ValidateToken parses an HS256 token and returns its claims.
func ValidateToken(tokenString string, key []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return key, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.PartnerID == "" && claims.Role != RoleAdmin {
		return nil, errors.New("token has no partner_id")
	}
	return claims, nil
}

// IssueToken signs a token for a partner or operator.
func IssueToken(partnerID, role string, ttl time.Duration, key []byte) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		PartnerID: partnerID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   partnerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString(key)
}

func WithCaller(ctx context.Context, partnerID, role string) context.Context {
	ctx = context.WithValue(ctx, partnerIDKey, partnerID)
	return context.WithValue(ctx, roleKey, role)
}

// PartnerIDFromContext returns the authenticated partner, empty when absent.
func PartnerIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(partnerIDKey).(string)
	return id
}

func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(roleKey).(string)
	return role
}

func secret() []byte {
	return []byte(viper.GetString("jwt.secret_key"))
}
