// Package diff renders unified diffs between two path listings.
// It uses github.com/pmezard/go-difflib/difflib to produce classic unified
// patches (---/+++ headers, @@ hunks, lines prefixed with ' ', '-', '+').
package diff

import (
	"fmt"

	difflib "github.com/pmezard/go-difflib/difflib"
)

// Options controls patch generation behavior.
type Options struct {
	// Context controls the number of context lines in unified hunks.
	// If 0, default to 3.
	Context int

	// FromName and ToName label the two sides in the patch header.
	FromName string
	ToName   string
}

// Lines produces a unified patch turning listing a into listing b.
// Each element is one path without its trailing newline. Equal listings
// return "".
func Lines(a, b []string, opt Options) (string, error) {
	if equal(a, b) {
		return "", nil
	}
	ctx := opt.Context
	if ctx <= 0 {
		ctx = 3
	}
	u := difflib.UnifiedDiff{
		A:        withNL(a),
		B:        withNL(b),
		FromFile: opt.FromName,
		ToFile:   opt.ToName,
		Context:  ctx,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		return "", fmt.Errorf("diff: %s vs %s: %w", opt.FromName, opt.ToName, err)
	}
	return s, nil
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// withNL appends the newline difflib expects at the end of every line.
func withNL(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l + "\n"
	}
	return out
}
