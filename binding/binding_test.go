package binding

import (
	"encoding/json"
	"testing"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var data any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	return data
}

func TestInterpolate(t *testing.T) {
	data := decode(t, `{"user":{"name":"Ada","tags":["x","y"]},"count":3,"price":9.5,"rows":[[1,2],[3,4]]}`)
	cases := []struct {
		in, want string
	}{
		{"Hello, ${user.name}!", "Hello, Ada!"},
		{"${ user.tags[1] }", "y"},
		{"${rows[1][0]}", "3"},
		{"${count} items at ${price}", "3 items at 9.5"},
		{"${user.missing}", "${user.missing}"},
		{"${user.missing|friend}", "friend"},
		{"${user.name|friend}", "Ada"},
		{"${user.tags[9]}", "${user.tags[9]}"},
		{"${user.tags[x]}", "${user.tags[x]}"},
		{"no placeholders", "no placeholders"},
	}
	for _, tc := range cases {
		if got := Interpolate(tc.in, data); got != tc.want {
			t.Fatalf("Interpolate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestInterpolateWithoutData(t *testing.T) {
	if got := Interpolate("Hi ${name|there}", nil); got != "Hi there" {
		t.Fatalf("fallback should apply without data, got %q", got)
	}
	if got := Interpolate("Hi ${name}", nil); got != "Hi ${name}" {
		t.Fatalf("placeholder should be kept without data, got %q", got)
	}
}
