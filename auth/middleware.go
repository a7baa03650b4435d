package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/diewo77/go-videoshop/httpx"
	"github.com/gin-gonic/gin"
)

// UserVerifier is an optional callback to validate that a token's user still
// exists. Set it during app bootstrap via SetUserVerifier. If nil, no extra
// verification is performed.
type UserVerifier func(ctx context.Context, uid uint) bool

var verifier UserVerifier

// SetUserVerifier configures the global verifier used by RequireAuth.
func SetUserVerifier(v UserVerifier) { verifier = v }

// BearerToken returns the token of an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) (string, bool) {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, tok, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	tok = strings.TrimSpace(tok)
	return tok, tok != ""
}

// RequireAuth rejects requests without a bearer token (401) or with one that
// does not verify (403). On success the identity is attached to the request
// context.
func RequireAuth(s *Signer) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := BearerToken(c.Request)
		if !ok {
			httpx.JSONError(c, http.StatusUnauthorized, httpx.CodeMissingToken, nil)
			return
		}
		claims, err := s.Parse(raw)
		if err != nil {
			httpx.JSONError(c, http.StatusForbidden, httpx.CodeInvalidToken, nil)
			return
		}
		uid, _ := claims.UserID()
		if verifier != nil && !verifier(c.Request.Context(), uid) {
			httpx.JSONError(c, http.StatusForbidden, httpx.CodeInvalidToken, nil)
			return
		}
		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), uid, claims.Email))
		c.Next()
	}
}
