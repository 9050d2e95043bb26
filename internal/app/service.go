package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"quizhub-service/internal/domain"
	"quizhub-service/internal/kv"
)

// AdminCheck decides whether a caller id holds the administrator role. The
// predicate is injected so alternate auth schemes can replace the default
// identity comparison without touching the operations.
type AdminCheck func(callerID string) bool

// AdminID builds the default check: exact string equality with the configured
// administrator identity. An empty configured id matches nobody.
func AdminID(adminID string) AdminCheck {
	return func(callerID string) bool {
		return adminID != "" && callerID == adminID
	}
}

// QuizService implements the catalog, submission, and admin use cases over a
// flat key-value namespace. The store may be nil when no backend is bound; in
// that case every operation reports domain.ErrStoreUnavailable and the
// transport decides how to degrade.
type QuizService struct {
	store   kv.Store
	isAdmin AdminCheck
	now     func() time.Time
	newID   func() string
}

type Option func(*QuizService)

// WithClock overrides the service clock, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(s *QuizService) { s.now = now }
}

// WithIDGenerator overrides message id generation, for deterministic tests.
func WithIDGenerator(newID func() string) Option {
	return func(s *QuizService) { s.newID = newID }
}

func NewQuizService(store kv.Store, isAdmin AdminCheck, opts ...Option) *QuizService {
	s := &QuizService{
		store:   store,
		isAdmin: isAdmin,
		now:     time.Now,
		newID:   newMessageID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsAdmin reports whether the caller holds the administrator role.
func (s *QuizService) IsAdmin(callerID string) bool {
	return s.isAdmin(callerID)
}

func (s *QuizService) nowMillis() int64 {
	return s.now().UnixMilli()
}

func (s *QuizService) requireStore() error {
	if s.store == nil {
		return domain.ErrStoreUnavailable
	}
	return nil
}

// requireAdmin gates every admin operation. On failure nothing has touched the
// store yet; identity verification needs no reads.
func (s *QuizService) requireAdmin(adminID string) error {
	if !s.isAdmin(adminID) {
		return domain.ErrForbidden
	}
	return s.requireStore()
}

// getJSON loads and decodes the value at key into out.
func (s *QuizService) getJSON(ctx context.Context, key string, out any) (bool, error) {
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// putJSON encodes v and writes it under key, replacing any previous value.
func (s *QuizService) putJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.store.Put(ctx, key, raw)
}
