// Package auth authenticates reviewers. Every case endpoint requires a
// bearer token; the subject claim becomes the acting reviewer's id.
package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	domainerrors "vetgate/pkg/domain-errors"
	"vetgate/pkg/platform/httputil"
	"vetgate/pkg/requestcontext"
)

// RequireAuth validates the Authorization bearer token with the shared
// signing key and stores the actor id in the request context.
func RequireAuth(signingKey []byte, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access, missing bearer token",
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, domainerrors.New(domainerrors.CodeUnauthorized, "missing or invalid Authorization header"))
				return
			}

			actorID, err := validate(token, signingKey)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access, invalid token",
					"request_id", requestcontext.RequestID(ctx),
					"error", err,
				)
				httputil.WriteError(w, domainerrors.New(domainerrors.CodeUnauthorized, "invalid or expired token"))
				return
			}

			ctx = requestcontext.WithActorID(ctx, actorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func validate(tokenString string, signingKey []byte) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return signingKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("read subject claim: %w", err)
	}
	if subject == "" {
		return "", fmt.Errorf("token has no subject claim")
	}
	return subject, nil
}
