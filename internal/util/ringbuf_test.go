package util

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestRingBufferEvictsOldest(t *testing.T) {
	r := NewRingBuffer[int](3)
	for i := 1; i <= 5; i++ {
		r.Push(i)
	}

	if got := r.Snapshot(); !reflect.DeepEqual(got, []int{3, 4, 5}) {
		t.Fatalf("snapshot = %v, want [3 4 5]", got)
	}
	if got := r.Last(2); !reflect.DeepEqual(got, []int{4, 5}) {
		t.Fatalf("last(2) = %v, want [4 5]", got)
	}
	if got := r.Last(10); len(got) != 3 {
		t.Fatalf("last(10) returned %d items, want 3", len(got))
	}
}

func TestRingBufferPartial(t *testing.T) {
	r := NewRingBuffer[string](0)
	if got := r.Snapshot(); len(got) != 0 {
		t.Fatalf("empty snapshot = %v", got)
	}
	r.Push("a")
	r.Push("b")
	if got := r.Snapshot(); !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("snapshot = %v, want [b]", got)
	}
}

func TestWriteJSONFileCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.json")
	if err := WriteJSONFile(path, map[string]string{"k": "v"}); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]string
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatal(err)
	}
	if got["k"] != "v" {
		t.Fatalf("got %v", got)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Fatalf("expected no temp files left behind, found %d entries", len(entries))
	}
}
