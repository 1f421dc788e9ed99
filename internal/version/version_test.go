package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestColored(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	orig := Version
	defer func() { Version = orig }()

	cases := []struct {
		in, want string
	}{
		{"1.2.3", "1.2.3"},
		{"0.1.0-dev", "0.1.0-dev"},
		{"1.2.3-rc.1+build.123", "1.2.3-rc.1+build.123"},
		{"nightly", "nightly"},
		{"  ", "dev"},
	}
	for _, tc := range cases {
		Version = tc.in
		if got := Colored(); got != tc.want {
			t.Errorf("Colored() with %q = %q, want %q", tc.in, got, tc.want)
		}
	}
}
