package layout

import (
	"errors"
	"testing"
)

func TestSplitParagraphs(t *testing.T) {
	got := SplitParagraphs("a b\r\n\nc  d")
	if len(got) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d: %q", len(got), got)
	}
	if !equalStrings(got[0], []string{"a", "b"}) {
		t.Fatalf("first paragraph mismatch: %q", got[0])
	}
	if !equalStrings(got[1], []string{""}) {
		t.Fatalf("empty paragraph should hold one empty word, got %q", got[1])
	}
	// 连续空格保留空单词
	if !equalStrings(got[2], []string{"c", "", "d"}) {
		t.Fatalf("double space should produce an empty word, got %q", got[2])
	}
}

func TestWrapParagraphBreaks(t *testing.T) {
	m := &monoMeasurer{}
	cases := []struct {
		text string
		want []string
	}{
		{"a b\nc d", []string{"a b", "c d"}},
		{"a\n\nb", []string{"a", "", "b"}},
		{"a\n\n\nb", []string{"a", "", "", "b"}},
		{"\nb", []string{"", "b"}},
	}
	for _, tc := range cases {
		lines, _, err := Wrap(SplitParagraphs(tc.text), 1000, 10, "Body", m)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tc.text, err)
		}
		if got := lineTexts(lines); !equalStrings(got, tc.want) {
			t.Fatalf("%q: got %q want %q", tc.text, got, tc.want)
		}
	}
}

// TestWrapNeverSplitsWords 验证：只有单个单词的行才允许超过 maxWidth。
func TestWrapNeverSplitsWords(t *testing.T) {
	m := &monoMeasurer{}
	// 字号 10 → 每个字符 5px，maxWidth 40 → 最多 8 个字符
	lines, maxW, err := Wrap(SplitParagraphs("aa bbbbbbbbbbbb cc dd"), 40, 10, "Body", m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"aa", "bbbbbbbbbbbb", "cc dd"}
	if got := lineTexts(lines); !equalStrings(got, want) {
		t.Fatalf("got %q want %q", got, want)
	}
	for _, ln := range lines {
		if ln.Width > 40 && len(ln.Words()) != 1 {
			t.Fatalf("multi-word line exceeds width: %q (%g)", ln.Text, ln.Width)
		}
	}
	if !near(maxW, 60) {
		t.Fatalf("max observed width should track the overflowing word, got %g", maxW)
	}
}

func TestWrapExactFitStaysOnOneLine(t *testing.T) {
	m := &monoMeasurer{}
	// "abc def" = 7 字符 = 35px，恰好等于 maxWidth
	lines, _, err := Wrap(SplitParagraphs("abc def"), 35, 10, "Body", m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 1 || lines[0].Text != "abc def" {
		t.Fatalf("expected a single line, got %q", lineTexts(lines))
	}
}

func TestWrapMeasurementError(t *testing.T) {
	cause := errors.New("surface lost")
	m := MeasureFunc(func(string, float64, string) (float64, error) { return 0, cause })
	_, _, err := Wrap(SplitParagraphs("hello"), 100, 10, "Body", m)
	if !errors.Is(err, ErrMeasurementFailure) {
		t.Fatalf("expected ErrMeasurementFailure, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected the cause to be attached, got %v", err)
	}
	var me *MeasurementError
	if !errors.As(err, &me) || me.Text != "hello" || me.FontSize != 10 || me.Family != "Body" {
		t.Fatalf("unexpected measurement error context: %#v", me)
	}
}
