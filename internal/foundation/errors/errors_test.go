package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "curriculumgen.yaml").
			Build()

		require.Equal(t, CategoryConfig, err.Category())
		require.Equal(t, SeverityFatal, err.Severity())
		require.Equal(t, "invalid configuration", err.Message())
		file, ok := err.Context().GetString("file")
		require.True(t, ok)
		require.Equal(t, "curriculumgen.yaml", file)
		require.Equal(t, "[config] invalid configuration", err.Error())
	})

	t.Run("Wrapped cause", func(t *testing.T) {
		cause := stderrors.New("permission denied")
		err := WrapError(cause, CategoryScan, "read directory").Fatal().Build()
		require.ErrorIs(t, err, cause)
		require.Equal(t, SeverityFatal, err.Severity())
		require.Equal(t, "[scan] read directory: permission denied", err.Error())

		fsErr := FileSystemError("replace artifact").WithCause(cause).Build()
		require.ErrorIs(t, fsErr, cause)
		require.ErrorIs(t, fsErr, ErrSerialize)
		require.Equal(t, "[filesystem] replace artifact: permission denied", fsErr.Error())
	})

	t.Run("WithContext does not mutate the receiver", func(t *testing.T) {
		base := BrokenLinkError("unresolved internal link").Build()
		derived := base.WithContext("target", "t1/s1/x")
		_, ok := base.Context().GetString("target")
		require.False(t, ok)
		target, ok := derived.Context().GetString("target")
		require.True(t, ok)
		require.Equal(t, "t1/s1/x", target)
	})
}

func TestSentinelMatching(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"config", ConfigError("bad").Build(), ErrConfig},
		{"scan", ScanError("unreadable").Build(), ErrScan},
		{"completeness", CompletenessError("missing").Build(), ErrCompleteness},
		{"broken link", BrokenLinkError("broken").Build(), ErrBrokenLink},
		{"filesystem", FileSystemError("write").Build(), ErrSerialize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.err, tt.sentinel)
			wrapped := fmt.Errorf("pipeline: %w", tt.err)
			require.ErrorIs(t, wrapped, tt.sentinel)
		})
	}

	require.NotErrorIs(t, ScanError("x").Build(), ErrBrokenLink)
	require.NotErrorIs(t, InternalError("x").Build(), ErrScan)
}

func TestContextHelpers(t *testing.T) {
	err := fmt.Errorf("generate: %w", CompletenessError("2 files missing").
		WithContext("missing", []string{"a/b/c", "a/b/d"}).
		Build())

	_, ok := AsClassified(err)
	require.True(t, ok)
	require.True(t, HasCategory(err, CategoryCompleteness))
	require.Equal(t, CategoryCompleteness, GetCategory(err))

	missing, ok := ContextStrings(err, "missing")
	require.True(t, ok)
	require.Equal(t, []string{"a/b/c", "a/b/d"}, missing)

	_, ok = ContextString(err, "missing")
	require.False(t, ok)

	require.Equal(t, CategoryInternal, GetCategory(stderrors.New("plain")))
}

func TestErrorContextMerge(t *testing.T) {
	a := ErrorContext{"x": 1, "y": 2}
	b := ErrorContext{"y": 3}
	merged := a.Merge(b)
	require.Equal(t, 1, merged["x"])
	require.Equal(t, 3, merged["y"])
	require.Equal(t, 2, a["y"])

	var empty ErrorContext
	require.Equal(t, b, empty.Merge(b))
}
