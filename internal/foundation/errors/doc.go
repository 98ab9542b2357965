// Package errors provides the classified error primitives used by the curriculum pipeline.
//
// Every fatal pipeline failure is a ClassifiedError carrying a category, a severity
// and a structured context map. Categories mirror the failure modes of a generation run:
//
//   - CategoryScan: the content directory (or a subdirectory) could not be read
//   - CategoryCompleteness: discovered files are missing from the built tree
//   - CategoryBrokenLink: an internal cross-reference does not resolve
//   - CategoryFileSystem: the artifact could not be written
//   - CategoryConfig: invalid or unreadable configuration
//
// Each category has a sentinel so callers can branch with the standard library:
//
//	if errors.Is(err, ferrors.ErrBrokenLink) {
//		file, _ := ferrors.ContextString(err, "file")
//	}
//
// Example construction:
//
//	err := errors.NewError(errors.CategoryBrokenLink, "unresolved internal link").
//		WithContext("file", rel).
//		WithContext("target", target).
//		Build()
package errors
