package policy

import (
	"github.com/diewo77/go-videoshop/auth"
	"github.com/diewo77/go-videoshop/gate"
	"github.com/gin-gonic/gin"
)

// Guard builds per-route middleware from a Table. Every /api route is mounted
// through it so protection is decided before a handler touches the store.
type Guard struct {
	table       *Table
	requireAuth gin.HandlerFunc
}

func NewGuard(t *Table, s *auth.Signer) *Guard {
	return &Guard{table: t, requireAuth: auth.RequireAuth(s)}
}

// For returns the middleware for resource:action.
func (g *Guard) For(resource string, action gate.Action) gin.HandlerFunc {
	if g.table.Level(resource, action) == Public {
		return func(c *gin.Context) { c.Next() }
	}
	return g.requireAuth
}

// Authenticated always requires a valid bearer token.
func (g *Guard) Authenticated() gin.HandlerFunc { return g.requireAuth }
