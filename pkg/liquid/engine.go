package liquid

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/osteele/liquid"
)

// Limits applied when the caller passes zero values
const (
	DefaultRenderTimeout   = 2 * time.Second
	DefaultMaxTemplateSize = 100 * 1024
)

// ErrTemplateTooLarge is returned before parsing when content exceeds the size limit
var ErrTemplateTooLarge = errors.New("template exceeds maximum allowed size")

// ErrRenderTimeout is returned when rendering outlives the timeout or the context
var ErrRenderTimeout = errors.New("liquid rendering timeout")

// Engine renders untrusted Liquid snippets with a size limit and a timeout
type Engine struct {
	timeout time.Duration
	maxSize int
	engine  *liquid.Engine
}

// NewEngine creates an engine. Non-positive limits fall back to the defaults.
func NewEngine(timeout time.Duration, maxSize int) *Engine {
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxTemplateSize
	}
	return &Engine{
		timeout: timeout,
		maxSize: maxSize,
		engine:  liquid.NewEngine(),
	}
}

// HasMarkup reports whether s contains Liquid output or tag delimiters
func HasMarkup(s string) bool {
	return strings.Contains(s, "{{") || strings.Contains(s, "{%")
}

// Render parses and renders content against data. Content without markup is
// returned as is.
func (e *Engine) Render(ctx context.Context, content string, data map[string]interface{}) (string, error) {
	if len(content) > e.maxSize {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrTemplateTooLarge, len(content), e.maxSize)
	}
	if !HasMarkup(content) {
		return content, nil
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	type result struct {
		out string
		err error
	}
	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("panic during liquid rendering: %v", r)}
			}
		}()
		out, err := e.engine.ParseAndRenderString(content, data)
		if err != nil {
			done <- result{err: fmt.Errorf("liquid rendering failed: %w", err)}
			return
		}
		done <- result{out: out}
	}()

	select {
	case r := <-done:
		return r.out, r.err
	case <-ctx.Done():
		return "", fmt.Errorf("%w after %v", ErrRenderTimeout, e.timeout)
	}
}

// RenderEach renders every value of contents, keyed the same way. The first
// failure aborts and is returned with its key.
func (e *Engine) RenderEach(ctx context.Context, contents map[string]string, data map[string]interface{}) (map[string]string, error) {
	out := make(map[string]string, len(contents))
	for key, content := range contents {
		rendered, err := e.Render(ctx, content, data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		out[key] = rendered
	}
	return out, nil
}
