package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	contractx "github.com/charla-ai/charla/bot/contract"
)

type contextKey string

const userIDKey contextKey = "user_id"

// authMiddleware resolves the bearer token to a user identity. A nil verifier
// serves everything anonymously; with a verifier, a missing or bad token is
// rejected so the server-side history stays private to its owner.
func authMiddleware(verifier contractx.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}
			userID, err := verifier.Verify(r.Context(), token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized", "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}

func userIDFrom(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey).(string)
	return userID
}

// AuthConfig carries the development token table, formatted as
// "token1:user1,token2:user2". An empty table disables authentication.
type AuthConfig struct {
	Tokens map[string]string `envconfig:"TOKENS"`
}

// StaticTokenVerifier maps fixed tokens to user IDs. It is the development
// implementation; production deployments plug a real identity provider into
// contract.TokenVerifier instead.
type StaticTokenVerifier struct {
	tokens map[string]string
}

func NewStaticTokenVerifier(tokens map[string]string) *StaticTokenVerifier {
	return &StaticTokenVerifier{tokens: tokens}
}

var _ contractx.TokenVerifier = (*StaticTokenVerifier)(nil)

func (v *StaticTokenVerifier) Verify(_ context.Context, token string) (string, error) {
	userID, ok := v.tokens[token]
	if !ok {
		return "", fmt.Errorf("%w: unknown token", contractx.ErrUnauthorized)
	}
	return userID, nil
}
