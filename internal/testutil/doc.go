// Package testutil contains helpers shared by package tests: in-memory
// content trees and fluent assertions over an afero filesystem.
package testutil
