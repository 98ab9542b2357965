package logfields

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"RunID", KeyRunID, "r1", RunID("r1")},
		{"Stage", KeyStage, "scan", Stage("scan")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"File", KeyFile, "a/b/c.mdx", File("a/b/c.mdx")},
		{"Module", KeyModule, "T1_Intro", Module("T1_Intro")},
		{"Section", KeySection, "S1", Section("S1")},
		{"Topic", KeyTopic, "basics", Topic("basics")},
		{"Link", KeyLink, "T1_Intro/S1/basics", Link("T1_Intro/S1/basics")},
		{"Format", KeyFormat, "json", Format("json")},
	}
	for _, c := range cases {
		if c.attr.Key != c.attrKey {
			t.Fatalf("%s: key = %q, want %q", c.name, c.attr.Key, c.attrKey)
		}
		if c.attr.Value.String() != c.attrVal {
			t.Fatalf("%s: value = %q, want %q", c.name, c.attr.Value.String(), c.attrVal)
		}
	}
}

func TestNumericHelpers(t *testing.T) {
	if got := Count(3); got.Key != KeyCount || got.Value.Int64() != 3 {
		t.Fatalf("Count: %v", got)
	}
	if got := Duration(1500 * time.Microsecond); got.Key != KeyDurationMS || got.Value.Float64() != 1.5 {
		t.Fatalf("Duration: %v", got)
	}
}

func TestErrorHelper(t *testing.T) {
	if got := Error(nil); got.Value.String() != "" {
		t.Fatalf("nil error should render empty, got %q", got.Value.String())
	}
	if got := Error(errors.New("boom")); got.Key != KeyError || got.Value.String() != "boom" {
		t.Fatalf("unexpected attr %v", got)
	}
}
