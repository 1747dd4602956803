// Package main provides the find-sources CLI: it lists the .cpp files under
// the engine's subsystem source trees, sorted, one path per line.
//
// Modes:
//   - print : find-sources                      (listing on stdout)
//   - write : find-sources --write sources.txt  (listing written atomically)
//   - check : find-sources --check sources.txt  (unified diff, exit 3 when stale)
//
// Positional arguments are accepted and ignored.
package main

import (
	"os"

	"source-collector/internal/walkwalk"
)

func main() {
	if code := execute(os.Args[1:], os.Stdout, os.Stderr, walkwalk.NewNativeFS()); code != exitOK {
		os.Exit(code)
	}
}
