package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNote(t *testing.T) {
	env := newTestEnv(t)

	env.write("evita4_service.txt", "Evita4 service manual.")
	env.scan()
	doc := env.docID("evita4_service.txt")

	t.Run("add", func(t *testing.T) {
		out := env.run("note", "add", itoa(doc), "calibration values superseded, see rev C")
		env.contains(out, "Added note")
	})

	t.Run("add anchored to page", func(t *testing.T) {
		out := env.run("note", "add", itoa(doc), "fuse table on this page", "-p", "0")
		env.contains(out, "Added note")
	})

	t.Run("list", func(t *testing.T) {
		out := env.run("note", "ls", itoa(doc))
		env.contains(out, "calibration values superseded")
		env.contains(out, "(p.0)")
	})

	t.Run("show includes notes", func(t *testing.T) {
		out := env.run("show", itoa(doc))
		env.contains(out, "Notes:")
		env.contains(out, "fuse table")
	})

	t.Run("add to missing document fails", func(t *testing.T) {
		out, err := env.runErr("note", "add", "9999", "orphan note")
		if err == nil {
			t.Fatalf("expected error noting a missing document, got: %s", out)
		}
	})

	t.Run("remove", func(t *testing.T) {
		out := env.run("note", "ls", itoa(doc), "-o", "json")
		var notes []struct {
			ID int64 `json:"id"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &notes))
		require.NotEmpty(t, notes)

		out = env.run("note", "rm", itoa(notes[0].ID))
		env.contains(out, "Deleted note")
	})

	t.Run("remove unknown id fails", func(t *testing.T) {
		out, err := env.runErr("note", "rm", "9999")
		if err == nil {
			t.Fatalf("expected error deleting unknown note, got: %s", out)
		}
	})
}

func TestFav(t *testing.T) {
	env := newTestEnv(t)

	env.write("evita4_service.txt", "Evita4 service manual with fuse table.")
	env.scan()
	doc := env.docID("evita4_service.txt")

	t.Run("add", func(t *testing.T) {
		out := env.run("fav", "add", "evita4 fuse table", itoa(doc), "-p", "0")
		env.contains(out, `Added bookmark "evita4 fuse table"`)
	})

	t.Run("duplicate name fails", func(t *testing.T) {
		out, err := env.runErr("fav", "add", "evita4 fuse table", itoa(doc))
		if err == nil {
			t.Fatalf("expected error adding duplicate bookmark name, got: %s", out)
		}
	})

	t.Run("lookup by name", func(t *testing.T) {
		out := env.run("fav", "ls", "evita4 fuse table")
		env.contains(out, "evita4 fuse table")
		env.contains(out, "doc "+itoa(doc))
		env.contains(out, "p.0")
	})

	t.Run("list all", func(t *testing.T) {
		out := env.run("fav", "ls")
		env.contains(out, "evita4 fuse table")
	})

	t.Run("rename", func(t *testing.T) {
		out := env.run("fav", "ls", "-o", "json")
		var favs []struct {
			ID int64 `json:"id"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &favs))
		require.NotEmpty(t, favs)

		out = env.run("fav", "mv", itoa(favs[0].ID), "evita4 fuse table rev C")
		env.contains(out, "Renamed bookmark")

		out = env.run("fav", "ls", "evita4 fuse table rev C")
		env.contains(out, "rev C")
	})

	t.Run("remove", func(t *testing.T) {
		out := env.run("fav", "ls", "-o", "json")
		var favs []struct {
			ID int64 `json:"id"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &favs))
		require.NotEmpty(t, favs)

		out = env.run("fav", "rm", itoa(favs[0].ID))
		env.contains(out, "Deleted bookmark")
	})

	t.Run("lookup unknown name fails", func(t *testing.T) {
		out, err := env.runErr("fav", "ls", "no such bookmark")
		if err == nil {
			t.Fatalf("expected error for unknown bookmark name, got: %s", out)
		}
	})
}
