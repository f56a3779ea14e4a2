package ingest

import "testing"

func TestCleanCell(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "  Base monetaria  ", want: "Base monetaria"},
		{in: "Base\n\tmonetaria", want: "Base monetaria"},
		{in: "a    b", want: "a b"},
		{in: " padded ", want: "padded"},
		{in: "ctrl\x00char", want: "ctrl char"},
		{in: "", want: ""},
		{in: "   ", want: ""},
	}
	for _, tt := range tests {
		if got := cleanCell(tt.in); got != tt.want {
			t.Errorf("cleanCell(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
