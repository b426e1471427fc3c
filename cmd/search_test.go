package cmd

import (
	"encoding/json"
	"testing"
)

func TestSearch(t *testing.T) {
	env := newTestEnv(t)

	env.write("evita4_service.txt", "Evita4 ventilator service manual. Flow sensor calibration requires test lung and flow analyser.")
	env.write("primus_maintenance.txt", "Primus anaesthesia workstation preventive maintenance schedule.")
	env.scan()

	t.Run("full text match", func(t *testing.T) {
		out := env.run("search", "calibration")
		env.contains(out, "evita4_service.txt")
	})

	t.Run("multi word query", func(t *testing.T) {
		out := env.run("search", "preventive", "maintenance")
		env.contains(out, "primus_maintenance.txt")
	})

	t.Run("snippets show page context", func(t *testing.T) {
		out := env.run("search", "calibration")
		env.contains(out, "p.0")
	})

	t.Run("stemming matches related forms", func(t *testing.T) {
		// porter stemmer: "calibrate" matches "calibration"
		out := env.run("search", "calibrate")
		env.contains(out, "evita4_service.txt")
	})

	t.Run("no matches", func(t *testing.T) {
		out := env.run("search", "zirconium")
		env.contains(out, "no matches")
	})

	t.Run("metadata match without text occurrence", func(t *testing.T) {
		id := env.docID("primus_maintenance.txt")
		env.run("set", itoa(id), "--manufacturer", "Draeger")

		out := env.run("search", "Draeger")
		env.contains(out, "primus_maintenance.txt")
	})

	t.Run("json output", func(t *testing.T) {
		out := env.run("search", "calibration", "-o", "json")
		var res struct {
			Query string `json:"query"`
			Hits  []struct {
				Document struct {
					Filename string `json:"filename"`
				} `json:"document"`
				Rank    float64 `json:"rank"`
				Snippet *struct {
					Page int    `json:"page"`
					Text string `json:"text"`
				} `json:"snippet"`
			} `json:"hits"`
		}
		if err := json.Unmarshal([]byte(out), &res); err != nil {
			t.Fatalf("search -o json produced invalid JSON: %v\noutput: %s", err, out)
		}
		if len(res.Hits) == 0 {
			t.Fatal("expected at least one hit")
		}
		if res.Hits[0].Document.Filename != "evita4_service.txt" {
			t.Errorf("expected evita4_service.txt first, got %q", res.Hits[0].Document.Filename)
		}
	})
}

func TestSearchLimit(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 5; i++ {
		env.write("doc"+itoa(int64(i))+".txt", "compressor overhaul instructions for unit "+itoa(int64(i)))
	}
	env.scan()

	env.run("config", "search.limit", "2", "--local")

	out := env.run("search", "compressor", "-o", "json")
	var res struct {
		Hits []json.RawMessage `json:"hits"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(res.Hits) > 2 {
		t.Errorf("expected at most 2 hits with search.limit=2, got %d", len(res.Hits))
	}
}
