package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-drift/mapstream/pkg/core"
	"github.com/go-drift/mapstream/pkg/widgets"
)

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the mounted widget tree structure.
type Snapshot struct {
	Tree *TreeNode `json:"tree"`
}

// TreeNode represents one element in the serialized widget tree.
type TreeNode struct {
	Type     string      `json:"type"`
	Text     string      `json:"text,omitempty"`
	Children []*TreeNode `json:"children,omitempty"`
}

// CaptureSnapshot captures the current widget tree.
func (t *Tester) CaptureSnapshot() *Snapshot {
	snap := &Snapshot{}
	if t.root != nil {
		snap.Tree = captureTreeNode(t.root)
	}
	return snap
}

func captureTreeNode(e core.Element) *TreeNode {
	node := &TreeNode{
		Type: widgetTypeName(e.Widget()),
	}
	if text, ok := e.Widget().(widgets.Text); ok {
		node.Text = text.Content
	}
	e.VisitChildren(func(child core.Element) bool {
		node.Children = append(node.Children, captureTreeNode(child))
		return true
	})
	return node
}

func widgetTypeName(w core.Widget) string {
	if w == nil {
		return "nil"
	}
	wt := reflect.TypeOf(w)
	for wt.Kind() == reflect.Pointer {
		wt = wt.Elem()
	}
	return wt.String()
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When
// MAPSTREAM_UPDATE_SNAPSHOTS=1 is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv("MAPSTREAM_UPDATE_SNAPSHOTS") == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: MAPSTREAM_UPDATE_SNAPSHOTS=1 go test -run %s", path, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: MAPSTREAM_UPDATE_SNAPSHOTS=1 go test -run %s", path, diff, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff between this snapshot and other. Returns the
// empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}

	aLines := strings.Split(string(a), "\n")
	bLines := strings.Split(string(b), "\n")
	var sb strings.Builder
	max := len(aLines)
	if len(bLines) > max {
		max = len(bLines)
	}
	for i := 0; i < max; i++ {
		var got, want string
		if i < len(aLines) {
			got = aLines[i]
		}
		if i < len(bLines) {
			want = bLines[i]
		}
		if got != want {
			fmt.Fprintf(&sb, "line %d:\n  got:  %s\n  want: %s\n", i+1, got, want)
		}
	}
	return sb.String()
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
