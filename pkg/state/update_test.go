package state

import "testing"

func TestUpdate_Touches(t *testing.T) {
	u := Update{Keys: []string{"a", "b"}}

	if !u.Touches("a") {
		t.Error("expected update to touch a")
	}
	if !u.Touches("c", "b") {
		t.Error("expected update to touch b")
	}
	if u.Touches("c") {
		t.Error("update should not touch c")
	}
	if !u.Touches() {
		t.Error("empty key set matches every update")
	}
}

func TestUpdate_Removed(t *testing.T) {
	u := Update{
		Keys:   []string{"kept", "gone"},
		Values: map[string]any{"kept": 1},
	}

	if u.Removed("kept") {
		t.Error("kept has a value, not removed")
	}
	if !u.Removed("gone") {
		t.Error("gone has no value, should be removed")
	}
	if u.Removed("untouched") {
		t.Error("untouched key is not removed")
	}
}

func TestUpdate_SameContent(t *testing.T) {
	a := Update{Keys: []string{"k"}, Values: map[string]any{"k": 1}, Seq: 1}
	b := Update{Keys: []string{"k"}, Values: map[string]any{"k": 1}, Seq: 2}
	c := Update{Keys: []string{"k"}, Values: map[string]any{"k": 2}, Seq: 3}
	d := Update{Keys: []string{"other"}, Values: map[string]any{"other": 1}, Seq: 4}

	if !a.SameContent(b) {
		t.Error("identical content with different seq should match")
	}
	if a.SameContent(c) {
		t.Error("different values should not match")
	}
	if a.SameContent(d) {
		t.Error("different keys should not match")
	}
}
