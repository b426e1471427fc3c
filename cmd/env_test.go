// Testing Strategy Design Decision:
//
// The cmd/ package contains CLI integration tests that exercise the full stack:
// command parsing -> extension -> service layer -> store layer -> SQLite.
//
// Unit tests for the internal packages live alongside them; the tests here
// prove the wiring: that a scanned file is searchable, that ids printed by
// one command are accepted by the next, and that JSON output stays parseable.

package cmd

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the docdex binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		// Build to a temp location
		tmpDir, err := os.MkdirTemp("", "docdex-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "docdex"
		if os.PathSeparator == '\\' {
			binaryName = "docdex.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Find project root (parent of cmd/)
		wd := mustGetwd()
		projectRoot := filepath.Dir(wd)

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string
	home   string
	docs   string
	binary string
}

// newTestEnv creates a temporary directory with an initialised docdex index
// and an empty documents directory ready to be registered as a scan root.
//
// HOME is redirected to a sibling of the working directory so global config
// never touches the developer's real home directory, and so global
// (~/.docdex) and local (./.docdex) stay distinct paths.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	binary := buildBinary(t)
	dir := t.TempDir()

	home := filepath.Join(dir, "home")
	docs := filepath.Join(dir, "docs")
	for _, d := range []string{home, docs} {
		if err := os.Mkdir(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	env := &testEnv{t: t, dir: dir, home: home, docs: docs, binary: binary}
	env.run("init")
	return env
}

// run executes docdex with the given args and returns combined output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("docdex %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes docdex and returns combined output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	out, err := e.command(e.dir, args...).CombinedOutput()
	return string(out), err
}

// command builds a docdex invocation running in the given directory.
func (e *testEnv) command(dir string, args ...string) *exec.Cmd {
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "HOME="+e.home)
	return cmd
}

// write drops a document file into the docs directory, backdated an hour so
// a subsequent rescan after modification reliably sees a newer mtime.
func (e *testEnv) write(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.docs, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		e.t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		e.t.Fatal(err)
	}
	old := time.Now().Add(-time.Hour)
	if err := os.Chtimes(path, old, old); err != nil {
		e.t.Fatal(err)
	}
	return path
}

// scan registers the docs directory (idempotence is fine: re-adding the
// same root fails, which we ignore) and runs a scan.
func (e *testEnv) scan() string {
	e.t.Helper()
	_, _ = e.runErr("root", "add", e.docs)
	return e.run("scan")
}

// docID looks up a document's id via ls -o json.
func (e *testEnv) docID(filename string) int64 {
	e.t.Helper()
	out := e.run("ls", "-o", "json")
	var docs []struct {
		ID       int64  `json:"id"`
		Filename string `json:"filename"`
	}
	require.NoError(e.t, json.Unmarshal([]byte(out), &docs))
	for _, d := range docs {
		if d.Filename == filename {
			return d.ID
		}
	}
	e.t.Fatalf("document %q not found in ls output: %s", filename, out)
	return 0
}

// rm deletes a file from the docs directory.
func (e *testEnv) rm(name string) {
	e.t.Helper()
	if err := os.Remove(filepath.Join(e.docs, name)); err != nil {
		e.t.Fatal(err)
	}
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

// firstJSONID digs the first element's id out of a JSON array field, for
// chaining ids between commands without hardcoding them.
func firstJSONID(t *testing.T, out, field string) int64 {
	t.Helper()
	var payload map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	var items []struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(payload[field], &items))
	require.NotEmpty(t, items, "no %s in output: %s", field, out)
	return items[0].ID
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// equals checks if output equals expected string (trimmed).
func (e *testEnv) equals(output, expected string) {
	e.t.Helper()
	assert.Equal(e.t, strings.TrimSpace(expected), strings.TrimSpace(output))
}
