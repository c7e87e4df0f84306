package ingest

import (
	"strings"
	"testing"
	"time"
)

func TestNormalizeBody_PlainText(t *testing.T) {
	in := "  my car was broken into last night  "
	if got := NormalizeBody(in); got != "my car was broken into last night" {
		t.Errorf("NormalizeBody = %q", got)
	}
}

func TestNormalizeBody_HTML(t *testing.T) {
	in := `<html><head><style>p { color: red }</style></head><body><p>The windscreen</p><p>is cracked.</p><script>track()</script></body></html>`
	got := NormalizeBody(in)
	if !strings.Contains(got, "The windscreen") || !strings.Contains(got, "is cracked.") {
		t.Errorf("visible text lost: %q", got)
	}
	if strings.Contains(got, "color: red") || strings.Contains(got, "track()") {
		t.Errorf("style or script text leaked: %q", got)
	}
}

func TestNormalizeBody_ProseWithAngleBracket(t *testing.T) {
	in := "the repair quote was < 500 pounds"
	if got := NormalizeBody(in); got != in {
		t.Errorf("plain prose altered: %q", got)
	}
}

func TestNewEvent_TrimsFields(t *testing.T) {
	ev := NewEvent(" driver@example.com ", " Claim ", "<p>hello</p>", time.Now())
	if ev.Sender != "driver@example.com" {
		t.Errorf("sender = %q", ev.Sender)
	}
	if ev.Subject != "Claim" {
		t.Errorf("subject = %q", ev.Subject)
	}
	if ev.Body != "hello" {
		t.Errorf("body = %q", ev.Body)
	}
}
