package main

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
)

func engineTree(t *testing.T) billy.Filesystem {
	t.Helper()
	fsys := memfs.New()
	for _, p := range []string{
		"Core/core/core.cpp",
		"Core/common/logging/log.cpp",
		"Core/common/logging/log.h",
		"Core/audio_core/hle/hle.cpp",
		"Core/video_core/shader/shader.CPP",
		"Core/network/room.cppx",
	} {
		if err := util.WriteFile(fsys, p, nil, 0o644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
	return fsys
}

func runCLI(t *testing.T, fsys billy.Filesystem, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := execute(args, &stdout, &stderr, fsys)
	return code, stdout.String(), stderr.String()
}

const engineListing = "Core/audio_core/hle/hle.cpp\nCore/common/logging/log.cpp\nCore/core/core.cpp\n"

func TestPrintsSortedListing(t *testing.T) {
	code, out, errOut := runCLI(t, engineTree(t))
	if code != exitOK {
		t.Fatalf("exit=%d stderr=%q", code, errOut)
	}
	if out != engineListing {
		t.Fatalf("stdout got %q want %q", out, engineListing)
	}
	if errOut != "" {
		t.Fatalf("stderr should be empty, got %q", errOut)
	}
}

func TestPositionalArgsIgnored(t *testing.T) {
	code, out, _ := runCLI(t, engineTree(t), "whatever", "else")
	if code != exitOK || out != engineListing {
		t.Fatalf("exit=%d stdout=%q", code, out)
	}
}

func TestEmptyTreeSucceeds(t *testing.T) {
	code, out, _ := runCLI(t, memfs.New())
	if code != exitOK || out != "" {
		t.Fatalf("exit=%d stdout=%q", code, out)
	}
}

func TestVerboseLogsToStderrOnly(t *testing.T) {
	code, out, errOut := runCLI(t, engineTree(t), "-v")
	if code != exitOK {
		t.Fatalf("exit=%d", code)
	}
	if out != engineListing {
		t.Fatalf("stdout polluted: %q", out)
	}
	if !strings.Contains(errOut, "collected root") {
		t.Fatalf("expected debug records on stderr, got %q", errOut)
	}
}

func TestWriteThenCheck(t *testing.T) {
	fsys := engineTree(t)
	path := filepath.Join(t.TempDir(), "sources.txt")

	code, out, errOut := runCLI(t, fsys, "--write", path)
	if code != exitOK || out != "" {
		t.Fatalf("write: exit=%d stdout=%q stderr=%q", code, out, errOut)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(raw) != engineListing {
		t.Fatalf("written listing %q", raw)
	}

	code, out, errOut = runCLI(t, fsys, "--check", path)
	if code != exitOK || out != "" {
		t.Fatalf("check fresh: exit=%d stdout=%q stderr=%q", code, out, errOut)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "sources.txt" {
		t.Fatalf("tree beside the listing was modified: %v", entries)
	}
}

func TestCheckStaleListing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.txt")
	stale := "Core/common/logging/log.cpp\nCore/core/removed.cpp\n"
	if err := os.WriteFile(path, []byte(stale), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	code, out, errOut := runCLI(t, engineTree(t), "--check", path)
	if code != exitStale {
		t.Fatalf("exit=%d want %d", code, exitStale)
	}
	for _, want := range []string{"+Core/audio_core/hle/hle.cpp", "-Core/core/removed.cpp", "+Core/core/core.cpp"} {
		if !strings.Contains(out, want) {
			t.Fatalf("diff missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(errOut, "out of date") {
		t.Fatalf("stderr got %q", errOut)
	}
}

func TestCheckAndWriteConflict(t *testing.T) {
	code, _, errOut := runCLI(t, engineTree(t), "--check", "a", "--write", "b")
	if code != exitUsage {
		t.Fatalf("exit=%d want %d", code, exitUsage)
	}
	if !strings.HasPrefix(errOut, "ERROR:") {
		t.Fatalf("stderr got %q", errOut)
	}
}

func TestUnknownFlagIsUsageError(t *testing.T) {
	code, _, errOut := runCLI(t, engineTree(t), "--not-a-flag")
	if code != exitUsage {
		t.Fatalf("exit=%d want %d (stderr=%q)", code, exitUsage, errOut)
	}
}

func TestConfigOverridesRoots(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "find-sources.yaml")
	body := "roots: [Core/video_core, Core/network]\nsuffix: .cppx\n"
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	code, out, errOut := runCLI(t, engineTree(t), "--config", cfgPath)
	if code != exitOK {
		t.Fatalf("exit=%d stderr=%q", code, errOut)
	}
	if out != "Core/network/room.cppx\n" {
		t.Fatalf("stdout got %q", out)
	}
}

func TestInvalidConfigIsUsageError(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "find-sources.yaml")
	if err := os.WriteFile(cfgPath, []byte("suffix: \"\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	code, out, errOut := runCLI(t, engineTree(t), "-c", cfgPath)
	if code != exitUsage || out != "" {
		t.Fatalf("exit=%d stdout=%q", code, out)
	}
	if !strings.Contains(errOut, "suffix must not be empty") {
		t.Fatalf("stderr got %q", errOut)
	}
}

// brokenFS fails every directory listing with an error the walker does not
// skip.
type brokenFS struct {
	billy.Filesystem
}

func (brokenFS) ReadDir(string) ([]os.FileInfo, error) {
	return nil, errors.New("disk on fire")
}

func TestTraversalErrorExitsOne(t *testing.T) {
	code, out, errOut := runCLI(t, brokenFS{engineTree(t)})
	if code != exitError {
		t.Fatalf("exit=%d want %d (stderr=%q)", code, exitError, errOut)
	}
	if out != "" {
		t.Fatalf("partial listing on stdout: %q", out)
	}
	if !strings.HasPrefix(errOut, "ERROR:") || !strings.Contains(errOut, "disk on fire") {
		t.Fatalf("stderr got %q", errOut)
	}
}

func TestMainMissingRootsExitZero(t *testing.T) {
	if os.Getenv("FIND_SOURCES_HELPER") == "1" {
		os.Args = []string{"find-sources"}
		main()
		return
	}

	// The package directory holds no Core/ tree, so every root is missing.
	cmd := exec.Command(os.Args[0], "-test.run=^TestMainMissingRootsExitZero$")
	cmd.Env = append(os.Environ(), "FIND_SOURCES_HELPER=1")
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("expected exit 0, got error: %v", err)
	}
	// Stdout also carries the test binary's own trailer.
	if strings.Contains(string(out), ".cpp") {
		t.Fatalf("expected empty listing, got %q", out)
	}
}
