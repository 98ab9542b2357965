// Package pipeline runs the curriculum generation stages in order:
//
//	scan → read → build → completeness → links → render → write
//
// A run either completes or aborts as a unit. Nothing is written unless the
// tree passed both validators, and a failed run leaves any previously
// generated artifact untouched.
package pipeline
