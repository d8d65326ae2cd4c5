package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/lineoa/keywordconsole/internal/domain"
	"github.com/lineoa/keywordconsole/pkg/flexmessage"
	"github.com/lineoa/keywordconsole/pkg/logger"
	"github.com/lineoa/keywordconsole/pkg/ratelimiter"
	"github.com/lineoa/keywordconsole/pkg/tracing"
)

const uploadRateNamespace = "editor_upload"

// ImageUploadService binds image sources to image elements. Uploaded files
// are encoded into data URLs in the background.
type ImageUploadService struct {
	sessions *EditorSessions
	limiter  *ratelimiter.RateLimiter
	readers  *semaphore.Weighted
	maxBytes int64
	logger   logger.Logger
	now      func() time.Time
	pending  sync.WaitGroup
}

func NewImageUploadService(sessions *EditorSessions, limiter *ratelimiter.RateLimiter, maxBytes, maxConcurrentReads int64, uploadsPerMinute int, logger logger.Logger) *ImageUploadService {
	limiter.SetPolicy(uploadRateNamespace, uploadsPerMinute, time.Minute)
	sessions.onClose(func(id string) {
		limiter.Reset(uploadRateNamespace, id)
	})
	return &ImageUploadService{
		sessions: sessions,
		limiter:  limiter,
		readers:  semaphore.NewWeighted(maxConcurrentReads),
		maxBytes: maxBytes,
		logger:   logger,
		now:      time.Now,
	}
}

// SetImageURL sets the source of an image element in any section. Changed is
// false when the id is unknown or names another kind.
func (s *ImageUploadService) SetImageURL(ctx context.Context, req *domain.SetImageURLRequest) (*domain.EditorResult, error) {
	return tracing.TraceMethodWithResult(ctx, "ImageUploadService", "SetImageURL", func(ctx context.Context) (*domain.EditorResult, error) {
		var result *domain.EditorResult
		err := s.sessions.with(req.SessionID, func(sess *editorSession) error {
			result = &domain.EditorResult{}
			el, _, ok := sess.editor.Locate(req.ElementID)
			if ok && el.Kind == flexmessage.ElementImage {
				url := req.URL
				result.Changed = sess.editor.UpdateAnywhere(req.ElementID, flexmessage.Patch{Content: &url})
				result.Element, _, _ = sess.editor.Locate(req.ElementID)
			}
			result.Session = sess.snapshot()
			return nil
		})
		if err != nil {
			return nil, err
		}
		tracing.RecordMutation(ctx, "SetImageURL", result.Changed)
		return result, nil
	})
}

// UploadImage buffers file, registers a pending read for the element and
// encodes it in the background. Oversized or unreadable files produce a read
// that is already failed. At most one read per element may be pending.
func (s *ImageUploadService) UploadImage(ctx context.Context, req *domain.UploadImageRequest, file io.Reader) (*domain.ImageRead, error) {
	return tracing.TraceMethodWithResult(ctx, "ImageUploadService", "UploadImage", func(ctx context.Context) (*domain.ImageRead, error) {
		if err := req.Validate(s.maxBytes); err != nil {
			return nil, domain.NewValidationError(err.Error())
		}
		if !s.limiter.Allow(uploadRateNamespace, req.SessionID) {
			return nil, &domain.ErrRateLimited{RetryAfter: s.limiter.RetryAfter(uploadRateNamespace, req.SessionID)}
		}

		var (
			sess *editorSession
			read *domain.ImageRead
		)
		err := s.sessions.with(req.SessionID, func(current *editorSession) error {
			el, _, ok := current.editor.Locate(req.ElementID)
			if !ok {
				return &domain.ErrNotFound{Entity: "image element", ID: req.ElementID}
			}
			if el.Kind != flexmessage.ElementImage {
				return domain.NewValidationError(fmt.Sprintf("element %s is a %s, not an image", req.ElementID, el.Kind))
			}
			if existing, ok := current.reads[req.ElementID]; ok && existing.Status == domain.ImageReadPending {
				return domain.ErrImageReadInProgress
			}
			read = &domain.ImageRead{
				ElementID:   req.ElementID,
				Status:      domain.ImageReadPending,
				FileName:    req.FileName,
				ContentType: req.ContentType,
				Size:        req.Size,
				StartedAt:   s.now().UTC(),
			}
			current.reads[req.ElementID] = read
			sess = current
			return nil
		})
		if err != nil {
			return nil, err
		}

		// The request body is only readable while the request is in flight
		data, readErr := io.ReadAll(io.LimitReader(file, s.maxBytes+1))
		if readErr == nil && int64(len(data)) > s.maxBytes {
			readErr = fmt.Errorf("file exceeds %d bytes", s.maxBytes)
		}

		snapshot := *read
		if readErr != nil {
			s.finish(ctx, sess, read, "", readErr)
			s.sessions.withSession(sess, func(*editorSession) error {
				snapshot = *read
				return nil
			})
			return &snapshot, nil
		}

		s.pending.Add(1)
		go s.encode(sess, read, data)

		s.logger.WithFields(map[string]interface{}{
			"session_id": req.SessionID,
			"element_id": req.ElementID,
			"size":       len(data),
		}).Debug("Image read started")
		return &snapshot, nil
	})
}

// encode turns data into a data URL and applies it to the element
func (s *ImageUploadService) encode(sess *editorSession, read *domain.ImageRead, data []byte) {
	defer s.pending.Done()
	ctx := context.Background()

	if err := s.readers.Acquire(ctx, 1); err != nil {
		s.finish(ctx, sess, read, "", err)
		return
	}
	dataURL, err := encodeDataURL(data)
	s.readers.Release(1)

	s.finish(ctx, sess, read, dataURL, err)
}

// finish records the outcome of a read and applies dataURL when it succeeded.
// A vanished element or closed session turns the update into a no-op.
func (s *ImageUploadService) finish(ctx context.Context, sess *editorSession, read *domain.ImageRead, dataURL string, readErr error) {
	outcome := tracing.OutcomeDone
	ran, _ := s.sessions.withSession(sess, func(sess *editorSession) error {
		finishedAt := s.now().UTC()
		read.FinishedAt = &finishedAt

		if readErr != nil {
			read.Status = domain.ImageReadFailed
			read.Error = readErr.Error()
		} else if el, _, ok := sess.editor.Locate(read.ElementID); !ok || el.Kind != flexmessage.ElementImage {
			read.Status = domain.ImageReadFailed
			read.Error = "element no longer exists"
		} else {
			// Same content leaves the tree unchanged; the read still succeeded
			sess.editor.UpdateAnywhere(read.ElementID, flexmessage.Patch{Content: &dataURL})
			read.Status = domain.ImageReadDone
		}
		if read.Status == domain.ImageReadFailed {
			outcome = tracing.OutcomeFailed
		}
		return nil
	})
	if !ran {
		outcome = tracing.OutcomeFailed
	}

	tracing.RecordImageRead(ctx, outcome, s.now().Sub(read.StartedAt))
	if outcome == tracing.OutcomeFailed {
		fields := map[string]interface{}{
			"session_id": sess.id,
			"element_id": read.ElementID,
		}
		if readErr != nil {
			fields["error"] = readErr.Error()
		}
		s.logger.WithFields(fields).Warn("Image read failed")
	}
}

// ImageStatus returns the latest read registered for an element. Polling
// does not keep an idle session alive.
func (s *ImageUploadService) ImageStatus(ctx context.Context, sessionID, elementID string) (*domain.ImageRead, error) {
	var read *domain.ImageRead
	err := s.sessions.view(sessionID, func(sess *editorSession) error {
		current, ok := sess.reads[elementID]
		if !ok {
			return &domain.ErrNotFound{Entity: "image read", ID: elementID}
		}
		c := *current
		read = &c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return read, nil
}

// Wait blocks until every background read has finished
func (s *ImageUploadService) Wait() {
	s.pending.Wait()
}

func encodeDataURL(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("file is empty")
	}
	contentType := http.DetectContentType(data)
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("unsupported content type %s", contentType)
	}

	var b bytes.Buffer
	b.Grow(len("data:;base64,") + len(contentType) + base64.StdEncoding.EncodedLen(len(data)))
	b.WriteString("data:")
	b.WriteString(contentType)
	b.WriteString(";base64,")
	enc := base64.NewEncoder(base64.StdEncoding, &b)
	_, _ = enc.Write(data)
	_ = enc.Close()
	return b.String(), nil
}
