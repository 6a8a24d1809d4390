package pathutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRelativeReturnsForwardSlashes(t *testing.T) {
	baseParts := []string{"home", "user", "data"}
	fileParts := append(append([]string{}, baseParts...), "sub", "spells.txt")

	posixBase := filepath.Join(baseParts...)
	posixFile := filepath.Join(fileParts...)

	rel, ok := Relative(posixBase, posixFile)
	if !ok {
		t.Fatalf("Relative rejected a nested POSIX path")
	}
	if rel != "sub/spells.txt" {
		t.Fatalf("expected relative path 'sub/spells.txt', got %q", rel)
	}

	windowsBase := strings.ReplaceAll(posixBase, string(filepath.Separator), "\\")
	windowsFile := strings.ReplaceAll(posixFile, string(filepath.Separator), "\\")

	rel, ok = Relative(windowsBase, windowsFile)
	if !ok {
		t.Fatalf("Relative rejected a nested Windows path")
	}
	if rel != "sub/spells.txt" {
		t.Fatalf("expected relative path 'sub/spells.txt', got %q", rel)
	}
}

func TestRelativeRejectsOutsidePaths(t *testing.T) {
	base := filepath.Join("data", "catalogs")
	for _, target := range []string{
		base,
		filepath.Join("data"),
		filepath.Join("data", "other", "spells.txt"),
	} {
		if rel, ok := Relative(base, target); ok {
			t.Fatalf("expected %q to be outside %q, got %q", target, base, rel)
		}
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	if got := ExpandHome("~/spells.txt"); got != filepath.Join(home, "spells.txt") {
		t.Fatalf("expected home expansion, got %q", got)
	}
	if got := ExpandHome("/abs/spells.txt"); got != "/abs/spells.txt" {
		t.Fatalf("expected absolute path untouched, got %q", got)
	}
	if got := ExpandHome("~user/spells.txt"); got != "~user/spells.txt" {
		t.Fatalf("expected other users untouched, got %q", got)
	}
}

func TestLocalLocations(t *testing.T) {
	cases := map[string]bool{
		"spells.txt":             true,
		"/data/spells.txt":       true,
		"file:///data/spells":    true,
		"s3://bucket/spells.txt": false,
	}
	for loc, want := range cases {
		if got := IsLocal(loc); got != want {
			t.Fatalf("IsLocal(%q) = %v, want %v", loc, got, want)
		}
	}

	if got := LocalPath("file:///data//spells.txt"); got != filepath.FromSlash("/data/spells.txt") {
		t.Fatalf("unexpected local path %q", got)
	}
}
