package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	env := newTestEnv(t)

	t.Run("set and get local", func(t *testing.T) {
		out := env.run("config", "search.limit", "25", "--local")
		env.contains(out, "search.limit = 25 (local)")

		out = env.run("config", "search.limit")
		env.equals(out, "25")

		if _, err := os.Stat(filepath.Join(env.dir, ".docdex", "config.yaml")); err != nil {
			t.Fatalf("expected local config file: %v", err)
		}
	})

	t.Run("show all", func(t *testing.T) {
		env.run("config", "author.name", "Test Author", "--local")

		out := env.run("config")
		env.contains(out, "search.limit: 25")
		env.contains(out, "author.name: Test Author")
	})

	t.Run("unknown key fails", func(t *testing.T) {
		out, err := env.runErr("config", "no.such.key")
		if err == nil {
			t.Fatalf("expected error for unknown key, got: %s", out)
		}
	})

	t.Run("global when no local exists", func(t *testing.T) {
		// Run from a directory with no .docdex; HOME points into the temp
		// tree so the global file lands there.
		other := filepath.Join(env.dir, "other")
		if err := os.Mkdir(other, 0o755); err != nil {
			t.Fatal(err)
		}

		cmd := env.command(other, "config", "scan.max_depth", "4")
		out, err := cmd.CombinedOutput()
		if err != nil {
			t.Fatalf("config in bare dir failed: %v\n%s", err, out)
		}
		env.contains(string(out), "(global)")

		if _, err := os.Stat(filepath.Join(env.home, ".docdex", "config.yaml")); err != nil {
			t.Fatalf("expected global config file under HOME: %v", err)
		}
	})
}

func TestStats(t *testing.T) {
	env := newTestEnv(t)

	env.write("a.txt", "suction pump service instructions")
	env.write("b.txt", "suction pump parts list")
	env.scan()

	a := env.docID("a.txt")
	b := env.docID("b.txt")
	env.run("link", itoa(a), itoa(b))
	env.run("note", "add", itoa(a), "check diaphragm at every service")
	env.run("fav", "add", "pump diaphragm", itoa(a))

	out := env.run("stats")
	env.contains(out, "Documents:  2")
	env.contains(out, "Scan roots: 1")
	env.contains(out, "Links:      1")
	env.contains(out, "Notes:      1")
	env.contains(out, "Bookmarks:  1")
	env.contains(out, "Oldest doc:")
}

func TestOptimize(t *testing.T) {
	env := newTestEnv(t)

	env.write("a.txt", "compressor service bulletin")
	env.scan()

	out := env.run("optimize")
	env.contains(out, "Index optimised")

	// Index still works afterwards.
	out = env.run("search", "compressor")
	env.contains(out, "a.txt")
}
