package errors

import (
	"bytes"
	stderrors "errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, 0},
		{"completeness", CompletenessError("missing files").Build(), 3},
		{"broken link", BrokenLinkError("broken").Build(), 3},
		{"config", ConfigError("bad config").Build(), 7},
		{"scan", ScanError("unreadable").Build(), 11},
		{"serialize", FileSystemError("write failed").Build(), 11},
		{"internal", InternalError("boom").Build(), 10},
		{"unclassified", stderrors.New("unknown"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, slog.Default())
	verbose := NewCLIErrorAdapter(true, slog.Default())

	internal := InternalError("invariant broken").Build()
	require.Equal(t, "Internal error occurred (use -v for details)", quiet.FormatError(internal))
	require.Equal(t, "Error: [internal] invariant broken", verbose.FormatError(internal))

	broken := BrokenLinkError("unresolved internal link in a.mdx").Build()
	require.Equal(t, "Error: [broken_link] unresolved internal link in a.mdx", quiet.FormatError(broken))

	require.Equal(t, "Error: plain", quiet.FormatError(stderrors.New("plain")))
	require.Empty(t, quiet.FormatError(nil))
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var out, logs bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))
	adapter.out = &out
	code := -1
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(BrokenLinkError("unresolved internal link").
		WithContext("file", "T1_A/S1/x.mdx").
		WithContext("target", "T1_A/S1/missing").
		Build())

	require.Equal(t, 3, code)
	require.Contains(t, out.String(), "unresolved internal link")
	require.Contains(t, logs.String(), "file=T1_A/S1/x.mdx")
	require.Contains(t, logs.String(), "target=T1_A/S1/missing")

	code = -1
	adapter.HandleError(nil)
	require.Equal(t, -1, code)
}
