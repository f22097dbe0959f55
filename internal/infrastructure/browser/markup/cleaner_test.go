package markup

import (
	"strings"
	"testing"
)

func TestCompact_RemovesScriptStyle(t *testing.T) {
	html := `
<body>
    <div id="main">Inbox</div>
    <script>alert("hi")</script>
    <style>.x {}</style>
</body>`

	out := Compact(html, nil)

	if strings.Contains(out, "<script") || strings.Contains(out, "<style") {
		t.Errorf("script/style tags must be removed, output: %s", out)
	}
	if !strings.Contains(out, `id="main"`) {
		t.Errorf("expected normal elements to be kept")
	}
}

func TestCompact_RemovesComments(t *testing.T) {
	html := `
<body>
    <!-- internal note -->
    <div>Text</div>
</body>`

	out := Compact(html, nil)

	if strings.Contains(out, "internal note") {
		t.Errorf("HTML comments must be removed")
	}
}

func TestCompact_KeepsLocatorAttributes(t *testing.T) {
	html := `
<body>
    <button aria-label="New message" role="button" style="color:red" onclick="x()">Compose</button>
</body>`

	out := Compact(html, nil)

	if !strings.Contains(out, `aria-label="New message"`) {
		t.Errorf("aria-label must be kept, selectors key on it")
	}
	if !strings.Contains(out, `role="button"`) {
		t.Errorf("role must be kept")
	}
	if strings.Contains(out, "style=") {
		t.Errorf("style attribute must be removed")
	}
	if strings.Contains(out, "onclick") {
		t.Errorf("inline handlers must be removed")
	}
}

func TestCompact_TruncatesLargeOutput(t *testing.T) {
	cfg := DefaultConfig
	cfg.MaxOutputSize = 50

	html := "<body><div>" + strings.Repeat("a", 200) + "</div></body>"

	out := Compact(html, &cfg)

	if len(out) > 50+len("\n<!-- truncated -->") {
		t.Errorf("output must be capped, got %d bytes", len(out))
	}
	if !strings.Contains(out, "truncated") {
		t.Errorf("truncated output must be marked")
	}
}

func TestCompact_UnparseableInputReturnedAsIs(t *testing.T) {
	// html.Parse is extremely lenient; a fragment without a body still
	// falls back to the raw input.
	out := Compact("", nil)

	if out != "" && !strings.Contains(out, "<body>") {
		t.Errorf("unexpected output for empty input: %q", out)
	}
}
