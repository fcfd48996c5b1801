package renderer

import "testing"

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"png": FormatPNG, ".PNG": FormatPNG, "jpeg": FormatJPEG, "jpg": FormatJPEG,
		"pdf": FormatPDF, " svg ": FormatSVG,
	}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("gif"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestFormatFromPath(t *testing.T) {
	if got := FormatFromPath("out/banner.pdf"); got != FormatPDF {
		t.Fatalf("got %q want pdf", got)
	}
	if got := FormatFromPath("text-image"); got != FormatPNG {
		t.Fatalf("missing extension should default to png, got %q", got)
	}
	if FormatSVG.Ext() != ".svg" {
		t.Fatalf("unexpected extension %q", FormatSVG.Ext())
	}
}
