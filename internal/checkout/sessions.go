package checkout

import (
	"context"
	"fmt"
	"inventory/internal/cart"
	"inventory/pkg/models"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultIdleTTL = 12 * time.Hour

type sessionEntry struct {
	session  *cart.Session
	lastSeen time.Time
}

// Sessions holds one cart session per user. Carts live only in memory and
// are dropped after a period of inactivity.
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	factory  func(identity models.Identity) *cart.Session
	instance string
	logger   *zap.Logger
	now      func() time.Time
}

func NewSessions(committer *cart.Committer, resolver *cart.Resolver, logger *zap.Logger) *Sessions {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Sessions{
		sessions: make(map[string]*sessionEntry),
		factory: func(identity models.Identity) *cart.Session {
			return cart.NewSession(identity, committer, resolver, logger)
		},
		instance: uuid.NewString()[:8],
		logger:   logger,
		now:      time.Now,
	}
}

// For returns the session of the given user, creating it on first use.
func (s *Sessions) For(identity models.Identity) *cart.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[identity.ID]
	if !ok {
		entry = &sessionEntry{session: s.factory(identity)}
		s.sessions[identity.ID] = entry
		s.logger.Debug("Cart session created", zap.String("user_id", identity.ID))
	}
	entry.lastSeen = s.now()

	return entry.session
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

// Sweep drops sessions idle for longer than maxIdle. A session in the middle
// of a commit is kept.
func (s *Sessions) Sweep(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	dropped := 0
	for userID, entry := range s.sessions {
		if entry.lastSeen.Before(cutoff) && !entry.session.Committing() {
			delete(s.sessions, userID)
			dropped++
		}
	}

	return dropped
}

func (s *Sessions) Run(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if dropped := s.Sweep(maxIdle); dropped > 0 {
				s.logger.Info("Dropped idle cart sessions", zap.Int("count", dropped))
			}
		}
	}
}

// ETag identifies one version of a cart. The instance prefix keeps tags from
// a previous process from matching a fresh cart.
func (s *Sessions) ETag(version uint64) string {
	return fmt.Sprintf(`"%s.%d"`, s.instance, version)
}
