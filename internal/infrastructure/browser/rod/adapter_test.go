package rod

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Headless)
	assert.Equal(t, defaultSlowMotion, cfg.SlowMotion)
	assert.Equal(t, defaultTimeout, cfg.Timeout)
	assert.False(t, cfg.NoSandbox, "should be secure by default")
	assert.False(t, cfg.DevTools)
}

func TestWait_HonorsContextCancellation(t *testing.T) {
	b := &BrowserAdapter{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := b.Wait(ctx, time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWait_ReturnsAfterDuration(t *testing.T) {
	b := &BrowserAdapter{}

	start := time.Now()
	err := b.Wait(context.Background(), 10*time.Millisecond)

	assert.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}

func newTestAdapter(t *testing.T) *BrowserAdapter {
	t.Helper()
	if testing.Short() {
		t.Skip("requires a browser")
	}

	cfg := DefaultConfig()
	cfg.Headless = true
	cfg.SlowMotion = 0
	cfg.NoSandbox = true

	adapter, err := NewBrowserAdapter(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(adapter.Close)
	return adapter
}

func newTestPage(t *testing.T, html string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, html)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestBrowserAdapter_Navigate(t *testing.T) {
	adapter := newTestAdapter(t)
	server := newTestPage(t, `<!DOCTYPE html>
<html>
<head><title>Compose</title></head>
<body><h1>Inbox</h1></body>
</html>`)

	err := adapter.Navigate(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/", adapter.CurrentURL())
}

func TestBrowserAdapter_ClickAndFill(t *testing.T) {
	adapter := newTestAdapter(t)
	server := newTestPage(t, `<!DOCTYPE html>
<html>
<body>
  <button aria-label="New message" onclick="document.getElementById('form').style.display='block'">Compose</button>
  <div id="form" style="display:none">
    <input aria-label="To" type="text">
  </div>
</body>
</html>`)

	ctx := context.Background()
	require.NoError(t, adapter.Navigate(ctx, server.URL))

	require.NoError(t, adapter.Click(ctx, `button[aria-label='New message']`))
	require.NoError(t, adapter.Fill(ctx, `input[aria-label='To']`, "a@b.com"))

	content, err := adapter.Content(ctx)
	require.NoError(t, err)
	assert.Contains(t, content.HTML, `aria-label="To"`)
}

func TestBrowserAdapter_ClickMissingSelector(t *testing.T) {
	adapter := newTestAdapter(t)
	server := newTestPage(t, `<html><body><p>empty</p></body></html>`)

	ctx := context.Background()
	require.NoError(t, adapter.Navigate(ctx, server.URL))

	shortTimeout := *adapter
	shortTimeout.timeout = time.Second

	err := shortTimeout.Click(ctx, `button[aria-label='Does Not Exist']`)
	assert.Error(t, err)
}

func TestBrowserAdapter_Content(t *testing.T) {
	adapter := newTestAdapter(t)
	server := newTestPage(t, `<!DOCTYPE html>
<html>
<head><title>Inbox Page</title></head>
<body><div id="inbox">Hello</div></body>
</html>`)

	ctx := context.Background()
	require.NoError(t, adapter.Navigate(ctx, server.URL))

	content, err := adapter.Content(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Inbox Page", content.Title)
	assert.Contains(t, content.HTML, `id="inbox"`)
}

func TestBrowserAdapter_Screenshot(t *testing.T) {
	adapter := newTestAdapter(t)
	server := newTestPage(t, `<html><body><h1>Shot</h1></body></html>`)

	ctx := context.Background()
	require.NoError(t, adapter.Navigate(ctx, server.URL))

	shot, err := adapter.Screenshot(ctx)
	require.NoError(t, err)

	assert.Equal(t, "jpeg", shot.Format)
	assert.NotEmpty(t, shot.Data)
	assert.LessOrEqual(t, shot.Width, maxScreenshotWidth)
}

func TestBrowserAdapter_CloseIsIdempotent(t *testing.T) {
	adapter := newTestAdapter(t)

	assert.True(t, adapter.IsReady())
	adapter.Close()
	assert.False(t, adapter.IsReady())
	adapter.Close()
}
