package fonts

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

func TestLoadBuiltinSpellings(t *testing.T) {
	for _, name := range []string{"builtin:go-mono", "built-in:go-mono", "go-mono", "Go Mono"} {
		data, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q) error: %v", name, err)
		}
		if !bytes.Equal(data, gomono.TTF) {
			t.Fatalf("Load(%q) returned the wrong font", name)
		}
	}
	if _, err := Load("builtin:comic-sans"); err == nil {
		t.Fatalf("expected error for unknown builtin")
	}
}

func TestLibraryFallbackChain(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(dir, "custom.ttf")
	if err := os.WriteFile(custom, gomono.TTF, 0o644); err != nil {
		t.Fatalf("write font: %v", err)
	}

	lib := NewLibrary(dir)
	lib.Register(Source{Family: "Custom", Src: "custom.ttf"})
	lib.Register(Source{Family: "Broken", Src: "missing.ttf", Fallback: "builtin:go-mono"})
	lib.Register(Source{Family: "Worse", Src: "missing.ttf", Fallback: "missing-too.ttf"})

	cases := map[string][]byte{
		"Custom":  gomono.TTF,
		"Broken":  gomono.TTF,
		"Worse":   goregular.TTF,
		"Unknown": goregular.TTF,
		"Go Mono": gomono.TTF,
	}
	for family, want := range cases {
		got, err := lib.Bytes(family)
		if err != nil {
			t.Fatalf("Bytes(%q) error: %v", family, err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("Bytes(%q) resolved to the wrong font", family)
		}
	}
	if fams := lib.Families(); len(fams) != 3 || fams[0] != "Broken" {
		t.Fatalf("unexpected families: %v", fams)
	}
}

func TestLibraryRelativePathNeedsBaseDir(t *testing.T) {
	lib := NewLibrary("")
	if _, err := lib.read("fonts/x.ttf"); err == nil {
		t.Fatalf("relative font path without base dir should be rejected")
	}
}

func TestLibraryFontIsCached(t *testing.T) {
	lib := NewLibrary("")
	a, err := lib.Font("go")
	if err != nil {
		t.Fatalf("Font error: %v", err)
	}
	b, err := lib.Font("go")
	if err != nil {
		t.Fatalf("Font error: %v", err)
	}
	if a != b {
		t.Fatalf("parsed font should be cached")
	}
}
