package policy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/diewo77/go-videoshop/auth"
	"github.com/diewo77/go-videoshop/gate"
	"github.com/gin-gonic/gin"
)

func init() { gin.SetMode(gin.TestMode) }

func TestDefaultTable(t *testing.T) {
	open := DefaultTable(false)
	closed := DefaultTable(true)
	for _, res := range []string{ResourceClients, ResourceProducts, ResourcePurchases} {
		if open.Level(res, gate.ActionList) != Public || open.Level(res, gate.ActionView) != Public {
			t.Errorf("%s reads should be public by default", res)
		}
		for _, act := range []gate.Action{gate.ActionCreate, gate.ActionUpdate, gate.ActionDelete} {
			if open.Level(res, act) != Authenticated {
				t.Errorf("%s:%s should be authenticated", res, act)
			}
		}
		if closed.Level(res, gate.ActionList) != Authenticated {
			t.Errorf("%s:list should be protected when reads are protected", res)
		}
	}
	want := "*:*=authenticated *:list=public *:view=public"
	if got := strings.Join(open.Rules(), " "); got != want {
		t.Errorf("default rules = %q, want %q", got, want)
	}
}

func TestTable_Precedence(t *testing.T) {
	tb := NewTable().
		Set("*:*", Authenticated).
		Set("*:list", Public).
		Set("achats:*", Authenticated).
		Set("achats:view", Public)

	tests := []struct {
		res  string
		act  gate.Action
		want Level
	}{
		{"achats", gate.ActionView, Public},
		{"achats", gate.ActionList, Authenticated},
		{"clients", gate.ActionList, Public},
		{"clients", gate.ActionDelete, Authenticated},
	}
	for _, tt := range tests {
		if got := tb.Level(tt.res, tt.act); got != tt.want {
			t.Errorf("Level(%s, %s) = %s, want %s", tt.res, tt.act, got, tt.want)
		}
	}
	if NewTable().Level("clients", gate.ActionList) != Authenticated {
		t.Error("empty table should fall back to authenticated")
	}
	if len(tb.Rules()) != 4 {
		t.Errorf("unexpected rules %v", tb.Rules())
	}
}

func TestGuard_RejectsBeforeHandler(t *testing.T) {
	s := auth.NewSigner("secret", time.Hour)
	g := NewGuard(DefaultTable(false), s)
	hits := 0
	r := gin.New()
	h := func(c *gin.Context) { hits++; c.Status(http.StatusOK) }
	r.GET("/api/clients", g.For(ResourceClients, gate.ActionList), h)
	r.POST("/api/clients", g.For(ResourceClients, gate.ActionCreate), h)

	do := func(method, header string) int {
		req := httptest.NewRequest(method, "/api/clients", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := do(http.MethodGet, ""); code != http.StatusOK {
		t.Fatalf("public list: got %d", code)
	}
	if code := do(http.MethodPost, ""); code != http.StatusUnauthorized {
		t.Fatalf("create without token: got %d", code)
	}
	if code := do(http.MethodPost, "Bearer junk"); code != http.StatusForbidden {
		t.Fatalf("create with bad token: got %d", code)
	}
	if hits != 1 {
		t.Fatalf("handler should only run for the public request, ran %d times", hits)
	}
	tok, _, _ := s.Issue(1, "a@b.c")
	if code := do(http.MethodPost, "Bearer "+tok); code != http.StatusOK {
		t.Fatalf("create with token: got %d", code)
	}
}

func TestCachedVerifier(t *testing.T) {
	calls := 0
	exists := map[uint]bool{1: true}
	v := NewCachedVerifier(func(_ context.Context, uid uint) (bool, error) {
		calls++
		return exists[uid], nil
	}, time.Minute)

	ctx := context.Background()
	if !v.Verify(ctx, 1) || !v.Verify(ctx, 1) {
		t.Fatal("expected user 1 to verify")
	}
	if calls != 1 {
		t.Fatalf("expected cached second lookup, got %d calls", calls)
	}
	if v.Verify(ctx, 2) || v.Verify(ctx, 2) {
		t.Fatal("unknown user verified")
	}
	if calls != 3 {
		t.Fatalf("misses must not be cached, got %d calls", calls)
	}

	v.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	delete(exists, 1)
	if v.Verify(ctx, 1) {
		t.Fatal("expired entry should be re-checked")
	}
}
