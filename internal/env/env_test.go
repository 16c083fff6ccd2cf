package env

import (
	"slices"
	"strings"
	"testing"
)

func lookup(environ []string, key string) (string, bool) {
	for _, kv := range environ {
		if v, ok := strings.CutPrefix(kv, key+"="); ok {
			return v, true
		}
	}
	return "", false
}

func TestMergeOverlayWins(t *testing.T) {
	e := New()
	e.env = Var{"PATH": "/usr/bin", "HOME": "/root", "MOJO_MODE": "development"}
	out := e.Merge(Var{"MOJO_MODE": "production"})
	if v, _ := lookup(out, "MOJO_MODE"); v != "production" {
		t.Fatalf("MOJO_MODE=%q want production", v)
	}
	if v, _ := lookup(out, "HOME"); v != "/root" {
		t.Fatalf("HOME=%q; base env must survive", v)
	}
}

func TestMergeGlobalThenOverlay(t *testing.T) {
	e := New()
	e.env = Var{}
	e.Set("A", "global")
	e.Set("B", "global")
	out := e.Merge(Var{"B": "overlay"})
	if v, _ := lookup(out, "A"); v != "global" {
		t.Fatalf("A=%q", v)
	}
	if v, _ := lookup(out, "B"); v != "overlay" {
		t.Fatalf("B=%q; per-call overlay must win", v)
	}
}

func TestMergeExpansion(t *testing.T) {
	e := New()
	e.env = Var{"BASE": "/srv"}
	out := e.Merge(Var{"APP": "${BASE}/myapp"})
	if v, _ := lookup(out, "APP"); v != "/srv/myapp" {
		t.Fatalf("APP=%q want /srv/myapp", v)
	}
}

func TestMergeSortedAndFresh(t *testing.T) {
	e := New()
	e.env = Var{"Z": "1", "A": "2"}
	out := e.Merge(nil)
	if !slices.IsSorted(out) {
		t.Fatalf("merge output not sorted: %v", out)
	}
	// second merge must not observe mutations of the first result
	out[0] = "A=mutated"
	out2 := e.Merge(nil)
	if v, _ := lookup(out2, "A"); v != "2" {
		t.Fatalf("A=%q; Merge must return a fresh slice", v)
	}
}

func TestUnset(t *testing.T) {
	e := New()
	e.env = Var{}
	e.Set("K", "v")
	e.Unset("K")
	if _, ok := lookup(e.Merge(nil), "K"); ok {
		t.Fatalf("K should be gone after Unset")
	}
}
