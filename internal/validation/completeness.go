package validation

import (
	"fmt"
	"log/slog"
	"strings"

	ferrors "git.home.luguber.info/inful/curriculumgen/internal/foundation/errors"
	"git.home.luguber.info/inful/curriculumgen/internal/logfields"
	"git.home.luguber.info/inful/curriculumgen/internal/util/sets"
)

// CheckCompleteness requires discovered ⊆ represented. All missing identities
// are reported in a single error, sorted.
func CheckCompleteness(discovered, represented sets.Set[string]) error {
	missing := discovered.Missing(represented)
	if len(missing) == 0 {
		slog.Debug("Completeness check passed", logfields.Count(discovered.Len()))
		return nil
	}
	noun := "files are"
	if len(missing) == 1 {
		noun = "file is"
	}
	msg := fmt.Sprintf("%d content %s not represented in the curriculum tree: %s",
		len(missing), noun, strings.Join(missing, ", "))
	return ferrors.CompletenessError(msg).WithContext("missing", missing).Build()
}
