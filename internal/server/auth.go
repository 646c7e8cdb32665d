package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rocketiq/careers/api/internal/interfaces/http/common"
)

var errInvalidToken = errors.New("invalid access token")

type adminClaims struct {
	jwt.RegisteredClaims
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// authMiddleware verifies the bearer token and stores the reviewer in the request context.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
		if authHeader == "" {
			common.WriteJSON(s.logger, w, http.StatusUnauthorized, map[string]string{"error": "missing Authorization header"})
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			common.WriteJSON(s.logger, w, http.StatusUnauthorized, map[string]string{"error": "bearer token required"})
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if tokenString == "" {
			common.WriteJSON(s.logger, w, http.StatusUnauthorized, map[string]string{"error": "empty access token"})
			return
		}

		claims, err := s.parseAuthToken(tokenString)
		if err != nil {
			common.WriteJSON(s.logger, w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
			return
		}

		ctx := common.ContextWithReviewer(r.Context(), common.Reviewer{
			Subject: claims.Subject,
			Name:    claims.Name,
			Email:   claims.Email,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// parseAuthToken tries each key in order, so tokens signed with the previous secret
// keep working during rotation.
func (s *Server) parseAuthToken(tokenString string) (*adminClaims, error) {
	if len(s.jwtConfigs) == 0 {
		return nil, errors.New("admin authentication is not configured")
	}

	for _, cfg := range s.jwtConfigs {
		secret := cfg.Secret
		claims := &adminClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
			}
			return secret, nil
		}, jwt.WithLeeway(30*time.Second))
		if err != nil || !token.Valid {
			continue
		}

		if cfg.Issuer != "" && claims.Issuer != cfg.Issuer {
			continue
		}
		if claims.Subject == "" {
			continue
		}
		if s.jwtAudience != "" && !contains(claims.Audience, s.jwtAudience) {
			continue
		}

		return claims, nil
	}

	return nil, errInvalidToken
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
