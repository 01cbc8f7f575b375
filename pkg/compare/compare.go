// Package compare renders structural differences between decoded documents.
package compare

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// documentOptions treat a nil container and an empty one as equal. Numbers
// are compared by their literal text, the way the oracle compares them.
var documentOptions = cmp.Options{
	cmpopts.EquateEmpty(),
}

// Diff returns a "-expected +actual" diff, or "" when the documents are equal.
func Diff(expected, actual any) string {
	return cmp.Diff(expected, actual, documentOptions)
}
