package common

import "testing"

func TestClampAndWrap(t *testing.T) {
	cases := []struct {
		name string
		got  int
		want int
	}{
		{"clamp_low", Clamp(-3, 1, 60), 1},
		{"clamp_high", Clamp(99, 1, 60), 60},
		{"clamp_mid", Clamp(8, 1, 60), 8},
		{"wrap_forward", Wrap(5, 4), 1},
		{"wrap_negative", Wrap(-1, 4), 3},
		{"wrap_empty", Wrap(3, 0), 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.got != c.want {
				t.Fatalf("expected %d, got %d", c.want, c.got)
			}
		})
	}
}
