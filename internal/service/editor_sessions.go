package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lineoa/keywordconsole/internal/domain"
	"github.com/lineoa/keywordconsole/pkg/cache"
	"github.com/lineoa/keywordconsole/pkg/flexmessage"
	"github.com/lineoa/keywordconsole/pkg/logger"
	"github.com/lineoa/keywordconsole/pkg/tracing"
)

// editorSession is one editor plus its pending image reads. mu serializes
// every event of the session.
type editorSession struct {
	mu        sync.Mutex
	id        string
	keywordID string
	ids       flexmessage.IDGenerator
	editor    *flexmessage.Editor
	reads     map[string]*domain.ImageRead
	createdAt time.Time
	updatedAt time.Time
	closed    bool
}

func (s *editorSession) snapshot() *domain.EditorSession {
	active := s.editor.Active()
	snap := &domain.EditorSession{
		ID:         s.id,
		KeywordID:  s.keywordID,
		Active:     active,
		ActiveHint: active.Hint(),
		Sections:   s.editor.Sections(),
		Expanded:   s.editor.Expanded(),
		Drag:       s.editor.Drag(),
		Preview:    s.editor.Preview(),
		CreatedAt:  s.createdAt,
		UpdatedAt:  s.updatedAt,
	}
	if len(s.reads) > 0 {
		snap.ImageReads = make([]domain.ImageRead, 0, len(s.reads))
		for _, read := range s.reads {
			snap.ImageReads = append(snap.ImageReads, *read)
		}
		sort.Slice(snap.ImageReads, func(i, j int) bool {
			return snap.ImageReads[i].ElementID < snap.ImageReads[j].ElementID
		})
	}
	return snap
}

// pruneReads forgets finished reads whose element left the editor. Pending
// reads stay so their outcome can still be polled.
func (s *editorSession) pruneReads() {
	for elementID, read := range s.reads {
		if read.Status == domain.ImageReadPending {
			continue
		}
		if _, _, ok := s.editor.Locate(elementID); !ok {
			delete(s.reads, elementID)
		}
	}
}

// EditorSessions holds the open editor sessions. Idle sessions expire after
// the configured ttl.
type EditorSessions struct {
	store        *cache.Store[*editorSession]
	logger       logger.Logger
	now          func() time.Time
	newSessionID func() string
	newIDs       func() flexmessage.IDGenerator

	hooksMu    sync.RWMutex
	closeHooks []func(id string)
}

// SessionsOption configures EditorSessions
type SessionsOption func(*EditorSessions)

// WithElementIDs replaces the element id generator given to new sessions
func WithElementIDs(newIDs func() flexmessage.IDGenerator) SessionsOption {
	return func(s *EditorSessions) {
		s.newIDs = newIDs
	}
}

// WithSessionClock replaces time.Now for session timestamps and expiry
func WithSessionClock(now func() time.Time) SessionsOption {
	return func(s *EditorSessions) {
		s.now = now
	}
}

// NewEditorSessions creates the session registry. A positive cleanupInterval
// sweeps expired sessions in the background until Stop.
func NewEditorSessions(ttl, cleanupInterval time.Duration, log logger.Logger, opts ...SessionsOption) *EditorSessions {
	s := &EditorSessions{
		logger:       log,
		now:          time.Now,
		newSessionID: uuid.NewString,
		newIDs:       func() flexmessage.IDGenerator { return flexmessage.UUIDGenerator{} },
	}
	for _, opt := range opts {
		opt(s)
	}
	s.store = cache.NewStore[*editorSession](ttl, cleanupInterval,
		cache.WithClock[*editorSession](s.now),
		cache.WithEvictHook(s.onEvict),
	)
	return s
}

func (s *EditorSessions) onEvict(id string, sess *editorSession) {
	sess.mu.Lock()
	sess.closed = true
	sess.mu.Unlock()

	s.hooksMu.RLock()
	hooks := s.closeHooks
	s.hooksMu.RUnlock()
	for _, fn := range hooks {
		fn(id)
	}

	s.logger.WithField("session_id", id).Debug("Editor session closed")
	tracing.RecordActiveSessions(context.Background(), s.store.Len())
}

// onClose registers fn to run once a session expires or is closed
func (s *EditorSessions) onClose(fn func(id string)) {
	s.hooksMu.Lock()
	defer s.hooksMu.Unlock()
	s.closeHooks = append(s.closeHooks, fn)
}

// create registers a new session around editor
func (s *EditorSessions) create(ctx context.Context, keywordID string, ids flexmessage.IDGenerator, editor *flexmessage.Editor) *domain.EditorSession {
	now := s.now().UTC()
	sess := &editorSession{
		id:        s.newSessionID(),
		keywordID: keywordID,
		ids:       ids,
		editor:    editor,
		reads:     make(map[string]*domain.ImageRead),
		createdAt: now,
		updatedAt: now,
	}
	s.store.Set(sess.id, sess)
	tracing.RecordActiveSessions(ctx, s.store.Len())

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshot()
}

// with runs fn while holding the session lock and returns its error.
// Sessions that are unknown, expired or closed yield ErrSessionNotFound.
func (s *EditorSessions) with(id string, fn func(sess *editorSession) error) error {
	sess, ok := s.store.Get(id)
	if !ok {
		return domain.ErrSessionNotFound(id)
	}
	ran, err := s.withSession(sess, fn)
	if !ran {
		return domain.ErrSessionNotFound(id)
	}
	return err
}

// withSession locks an already resolved session. It reports false without
// calling fn when the session was closed in the meantime.
func (s *EditorSessions) withSession(sess *editorSession, fn func(sess *editorSession) error) (bool, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.closed {
		return false, nil
	}
	if err := fn(sess); err != nil {
		return true, err
	}
	sess.updatedAt = s.now().UTC()
	return true, nil
}

// view runs fn under the session lock without extending the session's
// lifetime or touching its update time
func (s *EditorSessions) view(id string, fn func(sess *editorSession) error) error {
	sess, ok := s.store.Peek(id)
	if !ok {
		return domain.ErrSessionNotFound(id)
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.closed {
		return domain.ErrSessionNotFound(id)
	}
	return fn(sess)
}

// close removes a session
func (s *EditorSessions) close(id string) error {
	if !s.store.Delete(id) {
		return domain.ErrSessionNotFound(id)
	}
	return nil
}

// Len returns the number of open sessions
func (s *EditorSessions) Len() int {
	return s.store.Len()
}

// CloseAll closes every open session and returns how many were closed
func (s *EditorSessions) CloseAll() int {
	closed := 0
	for _, id := range s.store.Keys() {
		if s.store.Delete(id) {
			closed++
		}
	}
	return closed
}

// Sweep closes expired sessions now and returns how many were closed
func (s *EditorSessions) Sweep() int {
	return s.store.Sweep()
}

// Stop ends the background sweep
func (s *EditorSessions) Stop() {
	s.store.Stop()
}
