package policy

import (
	"context"
	"sync"
	"time"

	"github.com/diewo77/go-videoshop/internal/models"
	"gorm.io/gorm"
)

// UserLookup reports whether a user id still exists.
type UserLookup func(ctx context.Context, uid uint) (bool, error)

// DBUserLookup checks the users table.
func DBUserLookup(db *gorm.DB) UserLookup {
	return func(ctx context.Context, uid uint) (bool, error) {
		var n int64
		err := db.WithContext(ctx).Model(&models.User{}).Where("id = ?", uid).Count(&n).Error
		return n > 0, err
	}
}

// CachedVerifier memoizes positive user lookups for ttl so authenticated
// requests do not hit the users table every time. Misses are never cached.
type CachedVerifier struct {
	inner UserLookup
	ttl   time.Duration
	mu    sync.RWMutex
	seen  map[uint]time.Time
	now   func() time.Time
}

func NewCachedVerifier(inner UserLookup, ttl time.Duration) *CachedVerifier {
	return &CachedVerifier{inner: inner, ttl: ttl, seen: make(map[uint]time.Time), now: time.Now}
}

// Verify matches auth.UserVerifier.
func (v *CachedVerifier) Verify(ctx context.Context, uid uint) bool {
	v.mu.RLock()
	exp, ok := v.seen[uid]
	v.mu.RUnlock()
	if ok && v.now().Before(exp) {
		return true
	}
	exists, err := v.inner(ctx, uid)
	if err != nil || !exists {
		v.Invalidate(uid)
		return false
	}
	v.mu.Lock()
	v.seen[uid] = v.now().Add(v.ttl)
	v.mu.Unlock()
	return true
}

// Invalidate drops a user from the cache.
func (v *CachedVerifier) Invalidate(uid uint) {
	v.mu.Lock()
	delete(v.seen, uid)
	v.mu.Unlock()
}
