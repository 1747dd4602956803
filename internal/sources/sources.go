// Package sources builds the sorted source listing: it runs the walker over
// every configured root in order, concatenates the results and sorts them
// once.
package sources

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/go-git/go-billy/v5"

	"source-collector/internal/config"
	"source-collector/internal/sortutil"
	"source-collector/internal/walkwalk"
)

// Collect returns every file under cfg.Roots whose name ends with
// cfg.Suffix, sorted byte-wise. Roots are walked sequentially in
// configuration order. On error no partial listing is returned.
func Collect(fsys billy.Filesystem, cfg *config.Config, log *slog.Logger) ([]string, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	opt := walkwalk.Options{
		Suffix:  cfg.Suffix,
		Exclude: cfg.ExcludeSet(),
		Logger:  log,
	}

	var all []string
	for _, root := range cfg.Roots {
		files, err := walkwalk.CollectFiles(fsys, root, opt)
		if err != nil {
			return nil, fmt.Errorf("sources: collecting %s: %w", root, err)
		}
		log.Debug("collected root", "root", root, "files", len(files))
		all = append(all, files...)
	}
	return sortutil.SortPaths(all), nil
}

// Print writes paths to w, one per line.
func Print(w io.Writer, paths []string) error {
	for _, p := range paths {
		if _, err := fmt.Fprintln(w, p); err != nil {
			return fmt.Errorf("sources: writing listing: %w", err)
		}
	}
	return nil
}
