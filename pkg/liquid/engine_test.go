package liquid

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine_Defaults(t *testing.T) {
	e := NewEngine(0, -1)
	assert.Equal(t, DefaultRenderTimeout, e.timeout)
	assert.Equal(t, DefaultMaxTemplateSize, e.maxSize)
}

func TestHasMarkup(t *testing.T) {
	assert.True(t, HasMarkup("Hi {{ user.display_name }}"))
	assert.True(t, HasMarkup("{% if vip %}VIP{% endif %}"))
	assert.False(t, HasMarkup("歡迎光臨"))
	assert.False(t, HasMarkup(""))
}

func TestEngine_Render(t *testing.T) {
	e := NewEngine(time.Second, 1024)
	ctx := context.Background()

	testCases := []struct {
		name     string
		content  string
		data     map[string]interface{}
		expected string
	}{
		{"plain text", "立即購買", nil, "立即購買"},
		{"variable", "Hi {{ user.display_name }}", map[string]interface{}{"user": map[string]interface{}{"display_name": "Vin"}}, "Hi Vin"},
		{"missing variable", "Hi {{ user.display_name }}", map[string]interface{}{}, "Hi "},
		{"filter", "{{ name | upcase }}", map[string]interface{}{"name": "derek"}, "DEREK"},
		{"condition", "{% if vip %}VIP{% else %}guest{% endif %}", map[string]interface{}{"vip": true}, "VIP"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := e.Render(ctx, tc.content, tc.data)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, out)
		})
	}
}

func TestEngine_RenderSizeLimit(t *testing.T) {
	e := NewEngine(time.Second, 16)

	_, err := e.Render(context.Background(), strings.Repeat("{{ x }}", 10), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTemplateTooLarge)
}

func TestEngine_RenderSyntaxError(t *testing.T) {
	e := NewEngine(time.Second, 1024)

	_, err := e.Render(context.Background(), "{% if x %}unterminated", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "liquid rendering failed")
}

func TestEngine_RenderTimeout(t *testing.T) {
	e := NewEngine(50*time.Millisecond, 1024)
	content := `{% for i in (1..1000000) %}{% for j in (1..1000000) %}{{ i }}{% endfor %}{% endfor %}`

	start := time.Now()
	_, err := e.Render(context.Background(), content, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRenderTimeout)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestEngine_RenderCancelledContext(t *testing.T) {
	e := NewEngine(time.Minute, 1024)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Render(ctx, `{% for i in (1..1000000) %}{% for j in (1..1000000) %}{{ i }}{% endfor %}{% endfor %}`, nil)
	assert.ErrorIs(t, err, ErrRenderTimeout)
}

func TestEngine_RenderEach(t *testing.T) {
	e := NewEngine(time.Second, 1024)
	data := map[string]interface{}{"shop": "LINE 商店"}

	out, err := e.RenderEach(context.Background(), map[string]string{
		"t1": "歡迎來到 {{ shop }}",
		"t2": "no markup",
	}, data)
	require.NoError(t, err)
	assert.Equal(t, "歡迎來到 LINE 商店", out["t1"])
	assert.Equal(t, "no markup", out["t2"])

	_, err = e.RenderEach(context.Background(), map[string]string{"bad": "{% if x %}unterminated"}, data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad:")
}
