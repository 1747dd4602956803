// Package walkwalk provides the suffix-filtered filesystem walker used by the
// driver to gather source files under each configured root.
//
// Walking goes through a billy.Filesystem so the same code runs against the
// real disk (NativeFS) and against in-memory trees in tests.
package walkwalk

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// Options controls which files CollectFiles reports.
type Options struct {
	// Suffix is matched case-sensitively against the file name.
	Suffix string
	// Exclude holds exact base names pruned from the walk (dirs and files).
	Exclude map[string]struct{}
	// Logger receives debug records for skipped paths. Nil discards them.
	Logger *slog.Logger
}

type walkState struct {
	fsys  billy.Filesystem
	opt   Options
	log   *slog.Logger
	files []string
}

// CollectFiles walks start on fsys and returns the paths of the files whose
// name ends with opt.Suffix, in traversal order.
//
// A start that does not exist or is not a directory yields no paths and no
// error. Unreadable subdirectories are skipped. Directory symlinks below
// start are never descended into.
//
// Reported paths are built with filepath.Join, which cleans them: a start of
// "./Core/common/" reports "Core/common/a.cpp". No other normalization is
// applied.
func CollectFiles(fsys billy.Filesystem, start string, opt Options) ([]string, error) {
	ws := &walkState{fsys: fsys, opt: opt, log: opt.Logger}
	if ws.log == nil {
		ws.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	// Stat follows links, so a symlinked start directory is still entered.
	info, err := fsys.Stat(start)
	if err != nil {
		if skippable(err) {
			ws.log.Debug("root not readable, skipping", "root", start, "err", err)
			return nil, nil
		}
		return nil, fmt.Errorf("walkwalk: stat %q: %w", start, err)
	}
	if !info.IsDir() {
		ws.log.Debug("root is not a directory, skipping", "root", start)
		return nil, nil
	}

	entries, err := fsys.ReadDir(start)
	if err != nil {
		if skippable(err) {
			ws.log.Debug("root not readable, skipping", "root", start, "err", err)
			return nil, nil
		}
		return nil, fmt.Errorf("walkwalk: readdir %q: %w", start, err)
	}
	for _, e := range entries {
		p := filepath.Join(start, e.Name())
		if err := util.Walk(fsys, p, ws.visit); err != nil {
			return nil, fmt.Errorf("walkwalk: walk %q: %w", p, err)
		}
	}
	return ws.files, nil
}

func (ws *walkState) visit(path string, info os.FileInfo, err error) error {
	if err != nil {
		if skippable(err) {
			ws.log.Debug("skipping unreadable path", "path", path, "err", err)
			return nil
		}
		return err
	}
	if ws.excluded(info.Name()) {
		if info.IsDir() {
			return filepath.SkipDir
		}
		return nil
	}
	if info.IsDir() {
		return nil
	}
	// util.Walk lstats entries: a directory symlink shows up here as a
	// non-directory and must not be reported as a file.
	if isSymlink(info) && ws.linksToDir(path) {
		return nil
	}
	if strings.HasSuffix(info.Name(), ws.opt.Suffix) {
		ws.files = append(ws.files, path)
	}
	return nil
}

func (ws *walkState) excluded(base string) bool {
	_, ok := ws.opt.Exclude[base]
	return ok
}

// linksToDir reports whether the symlink at path resolves to a directory.
// Dangling links report false and are treated as files.
func (ws *walkState) linksToDir(path string) bool {
	target, err := ws.fsys.Stat(path)
	return err == nil && target.IsDir()
}

// isSymlink reports whether info describes a symlink.
func isSymlink(info os.FileInfo) bool {
	return info.Mode()&fs.ModeSymlink != 0
}

// skippable reports whether err means "nothing to enumerate here" rather
// than a failure worth aborting the run for.
func skippable(err error) bool {
	return errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, fs.ErrPermission) ||
		errors.Is(err, syscall.ENOTDIR)
}
