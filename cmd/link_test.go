package cmd

import (
	"testing"
)

func TestLink(t *testing.T) {
	env := newTestEnv(t)

	env.write("evita4_service.txt", "Evita4 service manual.")
	env.write("evita4_parts.txt", "Evita4 spare parts catalogue.")
	env.write("evita4_bulletin.txt", "Evita4 technical bulletin: flow sensor recall.")
	env.scan()

	manual := env.docID("evita4_service.txt")
	parts := env.docID("evita4_parts.txt")
	bulletin := env.docID("evita4_bulletin.txt")

	t.Run("create link", func(t *testing.T) {
		out := env.run("link", itoa(manual), itoa(parts))
		env.contains(out, "->")
	})

	t.Run("create with description", func(t *testing.T) {
		out := env.run("link", itoa(manual), itoa(bulletin), "-d", "recall applies")
		env.contains(out, "recall applies")
	})

	t.Run("list shows both directions", func(t *testing.T) {
		// parts was the target; listing from its side still shows the link
		out := env.run("link", "--list", itoa(parts))
		env.contains(out, "evita4_service.txt")
	})

	t.Run("self link fails", func(t *testing.T) {
		out, err := env.runErr("link", itoa(manual), itoa(manual))
		if err == nil {
			t.Fatalf("expected error linking document to itself, got: %s", out)
		}
	})

	t.Run("link to missing document fails", func(t *testing.T) {
		out, err := env.runErr("link", itoa(manual), "9999")
		if err == nil {
			t.Fatalf("expected error linking to missing document, got: %s", out)
		}
	})

	t.Run("duplicate link fails", func(t *testing.T) {
		out, err := env.runErr("link", itoa(manual), itoa(parts))
		if err == nil {
			t.Fatalf("expected error creating duplicate link, got: %s", out)
		}
	})

	t.Run("show includes links", func(t *testing.T) {
		out := env.run("show", itoa(manual))
		env.contains(out, "Links:")
	})

	t.Run("unlink", func(t *testing.T) {
		out := env.run("link", "--list", itoa(manual), "-o", "json")
		linkID := firstJSONID(t, out, "links")

		out = env.run("unlink", itoa(linkID))
		env.contains(out, "Removed link")
	})

	t.Run("unlink unknown id fails", func(t *testing.T) {
		out, err := env.runErr("unlink", "9999")
		if err == nil {
			t.Fatalf("expected error unlinking unknown id, got: %s", out)
		}
	})
}

func TestLinkRemovedWithDocument(t *testing.T) {
	env := newTestEnv(t)

	env.write("a.txt", "pump assembly drawing")
	env.write("b.txt", "pump overhaul procedure")
	env.scan()

	a := env.docID("a.txt")
	b := env.docID("b.txt")
	env.run("link", itoa(a), itoa(b))

	// Deleting a document's file and rescanning drops its links too.
	env.rm("b.txt")
	out := env.run("scan")
	env.contains(out, "1 removed")

	out = env.run("link", "--list", itoa(a))
	if len(out) > 0 && out != "\n" {
		t.Errorf("expected no links after linked document removed, got: %s", out)
	}
}
