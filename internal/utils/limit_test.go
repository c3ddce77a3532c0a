package utils

import (
	"errors"
	"testing"
)

func TestParseLimit(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"  ", 0, false},
		{"10", 10, false},
		{" 25 ", 25, false},
		{"0", 0, false},
		{"-1", 0, true},
		{"ten", 0, true},
		{"999999999999999999999999", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseLimit(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrBadLimit) {
				t.Fatalf("ParseLimit(%q) err = %v; want ErrBadLimit", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("ParseLimit(%q) = %d, %v; want %d", tc.in, got, err, tc.want)
		}
	}
}
