package testing

import (
	"path/filepath"
	"testing"

	"github.com/go-drift/mapstream/pkg/state"
)

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(filepath.Join("testdata", "counter-burst.yaml"))
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	if sc.Name != "counter-burst" {
		t.Errorf("unexpected name %q", sc.Name)
	}
	if len(sc.Steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(sc.Steps))
	}
	if sc.Steps[1].Set["label"] != "two" {
		t.Errorf("unexpected step 2: %+v", sc.Steps[1])
	}
	if len(sc.Steps[2].Delete) != 1 || sc.Steps[2].Delete[0] != "label" {
		t.Errorf("unexpected step 3: %+v", sc.Steps[2])
	}
	if !sc.Steps[4].Clear {
		t.Errorf("expected final clear step: %+v", sc.Steps[4])
	}
}

func TestLoadScenario_MissingFile(t *testing.T) {
	if _, err := LoadScenario(filepath.Join("testdata", "nope.yaml")); err == nil {
		t.Error("expected an error for a missing fixture")
	}
}

func TestParseScenario_Invalid(t *testing.T) {
	if _, err := ParseScenario([]byte("steps: {not: a list}")); err == nil {
		t.Error("expected a parse error")
	}
}

func TestScenario_Apply(t *testing.T) {
	sc, err := LoadScenario(filepath.Join("testdata", "counter-burst.yaml"))
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}

	stream := state.NewMapStream()
	var updates []state.Update
	stream.Listen(func(u state.Update) {
		updates = append(updates, u)
	})

	sc.Apply(stream)

	// 1 set + 1 set + 1 delete + 1 set + 1 clear
	if len(updates) != 5 {
		t.Fatalf("expected 5 emissions, got %d", len(updates))
	}
	if stream.Len() != 0 {
		t.Errorf("final clear should empty the store, got %d keys", stream.Len())
	}
	last := updates[len(updates)-1]
	if !last.Removed("count") {
		t.Error("final update should report count removed")
	}
}

func TestScenario_ApplyReachesBinder(t *testing.T) {
	sc := &Scenario{Steps: []Step{
		{Set: map[string]any{"count": 1}},
		{Set: map[string]any{"count": 2}},
	}}

	stream := state.NewMapStream()
	seen := 0
	stream.Listen(func(state.Update) { seen++ }, "count")

	sc.Apply(stream)

	if seen != 2 {
		t.Errorf("expected 2 deliveries, got %d", seen)
	}
	if v, ok := stream.Get("count"); !ok || v != 2 {
		t.Errorf("expected count=2, got %v", v)
	}
}
