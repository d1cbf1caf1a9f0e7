package project

import (
	"path/filepath"
	"testing"
)

func TestIdentifyUsesBasename(t *testing.T) {
	ident := Identify(filepath.Join("some", "deep", "path", "myapp"))
	if ident.Name != "myapp" {
		t.Errorf("expected name myapp, got %q", ident.Name)
	}
}

func TestIdentifySamePathSameIdentity(t *testing.T) {
	a := Identify("/home/alice/projects/myapp")
	b := Identify("/var/builds/myapp")

	// Identity depends only on the folder name, not its location.
	if a != b {
		t.Errorf("same folder name must resolve to the same identity: %v vs %v", a, b)
	}
}

func TestIdentifyDifferentNamesDiverge(t *testing.T) {
	a := Identify("/projects/app-one")
	b := Identify("/projects/app-two")

	if a.Hash == b.Hash {
		t.Error("different project names must hash differently")
	}
}

func TestIdentifyHashShape(t *testing.T) {
	ident := Identify("/projects/myapp")
	if len(ident.Hash) != 16 {
		t.Fatalf("expected 16-char hash, got %d chars", len(ident.Hash))
	}
	for _, r := range ident.Hash {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			t.Fatalf("hash contains non-hex character %q", r)
		}
	}
}

func TestIdentifyTrailingSlash(t *testing.T) {
	a := Identify("/projects/myapp")
	b := Identify("/projects/myapp/")

	if a != b {
		t.Error("trailing slash must not change identity")
	}
}
