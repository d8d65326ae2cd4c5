package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lineoa/keywordconsole/internal/domain"
	"github.com/lineoa/keywordconsole/pkg/flexmessage"
	pkgmocks "github.com/lineoa/keywordconsole/pkg/mocks"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newNopLogger(ctrl *gomock.Controller) *pkgmocks.MockLogger {
	log := pkgmocks.NewMockLogger(ctrl)
	log.EXPECT().WithField(gomock.Any(), gomock.Any()).Return(log).AnyTimes()
	log.EXPECT().WithFields(gomock.Any()).Return(log).AnyTimes()
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()
	return log
}

func newTestSessions(t *testing.T, clock *fakeClock) *EditorSessions {
	ctrl := gomock.NewController(t)
	sessions := NewEditorSessions(30*time.Minute, 0, newNopLogger(ctrl),
		WithSessionClock(clock.Now),
		WithElementIDs(func() flexmessage.IDGenerator { return flexmessage.NewSequenceGenerator("el") }),
	)
	t.Cleanup(sessions.Stop)
	return sessions
}

func openSession(t *testing.T, sessions *EditorSessions) string {
	ids := sessions.newIDs()
	snap := sessions.create(context.Background(), "", ids, flexmessage.NewEditor(ids))
	require.NotEmpty(t, snap.ID)
	return snap.ID
}

func TestEditorSessions_CreateAndWith(t *testing.T) {
	clock := newFakeClock()
	sessions := newTestSessions(t, clock)

	id := openSession(t, sessions)
	assert.Equal(t, 1, sessions.Len())

	clock.Advance(time.Minute)
	err := sessions.with(id, func(sess *editorSession) error {
		_, ok := sess.editor.Add(flexmessage.ElementText)
		assert.True(t, ok)
		return nil
	})
	require.NoError(t, err)

	err = sessions.with(id, func(sess *editorSession) error {
		snap := sess.snapshot()
		assert.Equal(t, flexmessage.SectionBody, snap.Active)
		assert.Len(t, snap.Sections[flexmessage.SectionBody], 1)
		assert.Equal(t, clock.Now(), snap.UpdatedAt)
		assert.True(t, snap.UpdatedAt.After(snap.CreatedAt))
		return nil
	})
	require.NoError(t, err)
}

func TestEditorSessions_UnknownSession(t *testing.T) {
	sessions := newTestSessions(t, newFakeClock())

	err := sessions.with("missing", func(*editorSession) error {
		t.Fatal("must not run")
		return nil
	})
	assert.True(t, domain.IsNotFound(err))
	assert.True(t, domain.IsNotFound(sessions.close("missing")))
}

func TestEditorSessions_PropagatesEventError(t *testing.T) {
	sessions := newTestSessions(t, newFakeClock())
	id := openSession(t, sessions)

	err := sessions.with(id, func(*editorSession) error {
		return domain.ErrImageReadInProgress
	})
	assert.ErrorIs(t, err, domain.ErrImageReadInProgress)
}

func TestEditorSessions_Close(t *testing.T) {
	sessions := newTestSessions(t, newFakeClock())
	id := openSession(t, sessions)

	var held *editorSession
	require.NoError(t, sessions.with(id, func(sess *editorSession) error {
		held = sess
		return nil
	}))

	require.NoError(t, sessions.close(id))
	assert.Equal(t, 0, sessions.Len())
	assert.True(t, domain.IsNotFound(sessions.with(id, func(*editorSession) error { return nil })))

	ran, err := sessions.withSession(held, func(*editorSession) error { return nil })
	assert.False(t, ran, "a closed session no longer accepts events")
	assert.NoError(t, err)
}

func TestEditorSessions_CloseAll(t *testing.T) {
	sessions := newTestSessions(t, newFakeClock())
	var closed []string
	sessions.onClose(func(id string) { closed = append(closed, id) })

	first := openSession(t, sessions)
	second := openSession(t, sessions)

	assert.Equal(t, 2, sessions.CloseAll())
	assert.Equal(t, 0, sessions.Len())
	assert.ElementsMatch(t, []string{first, second}, closed)
	assert.True(t, domain.IsNotFound(sessions.with(first, func(*editorSession) error { return nil })))
	assert.Equal(t, 0, sessions.CloseAll())
}

func TestEditorSessions_View(t *testing.T) {
	clock := newFakeClock()
	sessions := newTestSessions(t, clock)
	id := openSession(t, sessions)

	var before time.Time
	require.NoError(t, sessions.with(id, func(sess *editorSession) error {
		before = sess.updatedAt
		return nil
	}))

	clock.Advance(time.Minute)
	require.NoError(t, sessions.view(id, func(sess *editorSession) error { return nil }))
	require.NoError(t, sessions.with(id, func(sess *editorSession) error {
		assert.Equal(t, before, sess.updatedAt, "view leaves the update time alone")
		return nil
	}))

	assert.True(t, domain.IsNotFound(sessions.view("missing", func(*editorSession) error { return nil })))
}

func TestEditorSessions_Expiry(t *testing.T) {
	clock := newFakeClock()
	sessions := newTestSessions(t, clock)
	idle := openSession(t, sessions)
	busy := openSession(t, sessions)

	clock.Advance(20 * time.Minute)
	require.NoError(t, sessions.with(busy, func(*editorSession) error { return nil }))

	clock.Advance(15 * time.Minute)
	assert.Equal(t, 1, sessions.Sweep())
	assert.True(t, domain.IsNotFound(sessions.with(idle, func(*editorSession) error { return nil })))
	assert.NoError(t, sessions.with(busy, func(*editorSession) error { return nil }))
}

func TestEditorSessions_SerializesEvents(t *testing.T) {
	sessions := newTestSessions(t, newFakeClock())
	id := openSession(t, sessions)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = sessions.with(id, func(sess *editorSession) error {
				sess.editor.Add(flexmessage.ElementText)
				return nil
			})
		}()
	}
	wg.Wait()

	require.NoError(t, sessions.with(id, func(sess *editorSession) error {
		assert.Len(t, sess.editor.Tree(), 50)
		assert.NoError(t, sess.editor.Sections().Validate())
		return nil
	}))
}
