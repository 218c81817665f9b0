package testing

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/mapstream/pkg/state"
)

// Scenario is a YAML-scripted sequence of store mutations, used to drive
// binder tests from testdata fixtures instead of inline mutation code.
//
//	name: counter-burst
//	steps:
//	  - set: {count: 1}
//	  - set: {count: 2, label: two}
//	  - delete: [label]
//	  - clear: true
type Scenario struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step is one mutation of a scenario. Fields are applied in declaration
// order: set, then delete, then clear.
type Step struct {
	Set    map[string]any `yaml:"set,omitempty"`
	Delete []string       `yaml:"delete,omitempty"`
	Clear  bool           `yaml:"clear,omitempty"`
}

// LoadScenario reads a scenario fixture from path.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses a YAML scenario document.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	return &sc, nil
}

// Apply replays the scenario's steps against the stream, one emission per
// non-empty step field.
func (sc *Scenario) Apply(stream *state.MapStream) {
	for _, step := range sc.Steps {
		if len(step.Set) > 0 {
			stream.SetAll(step.Set)
		}
		for _, key := range step.Delete {
			stream.Delete(key)
		}
		if step.Clear {
			stream.Clear()
		}
	}
}
