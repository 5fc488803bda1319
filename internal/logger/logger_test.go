package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestAnonymize(t *testing.T) {
	in := "user_id=42 author_id = -7 mail me at someone@example.com token eyJhbGciOi.abc"
	out := Anonymize(in)

	for _, leaked := range []string{"42", "-7", "someone@example.com", "eyJhbGciOi"} {
		if strings.Contains(out, leaked) {
			t.Fatalf("%q leaked in %q", leaked, out)
		}
	}
	if !strings.Contains(out, "user_id=[USER_ID]") || !strings.Contains(out, "author_id=[USER_ID]") {
		t.Fatalf("ids not masked: %q", out)
	}
}

func TestLogger_WritesJSONEntry(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf)

	l.Error("feedsync", "refresh failed for user_id=5", errors.New("dial tcp: refused"))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if entry.Level != ErrorLevel || entry.Module != "feedsync" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.Message != "refresh failed for user_id=[USER_ID]" {
		t.Fatalf("message not anonymized: %q", entry.Message)
	}
	if entry.Error != "dial tcp: refused" {
		t.Fatalf("unexpected error field: %q", entry.Error)
	}
}

func TestLogger_MinLevel(t *testing.T) {
	defer SetLevel("info")

	var buf bytes.Buffer
	l := NewWithWriter(&buf)

	SetLevel("warn")
	l.Info("test", "dropped")
	l.Debug("test", "dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below WARN, got %q", buf.String())
	}

	l.Warn("test", "kept", nil)
	if !strings.Contains(buf.String(), `"level":"WARN"`) {
		t.Fatalf("expected WARN entry, got %q", buf.String())
	}

	SetLevel("bogus")
	buf.Reset()
	l.Info("test", "still dropped")
	if buf.Len() != 0 {
		t.Fatalf("unknown level should not change threshold, got %q", buf.String())
	}
}
