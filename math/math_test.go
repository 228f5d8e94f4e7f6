// SPDX-License-Identifier: GPL-2.0-or-later

package math

import (
	"testing"
)

func TestClamp(t *testing.T) {
	for _, tc := range []struct {
		min, val, max, want float64
	}{
		{1, 0, 10, 1},
		{1, 100, 10, 10},
		{1, 5, 10, 5},
		{0, 0.5, 1, 0.5},
	} {
		if got := Clamp(tc.min, tc.val, tc.max); got != tc.want {
			t.Errorf("Clamp(%v,%v,%v) = %v, want %v", tc.min, tc.val, tc.max, got, tc.want)
		}
	}
	if got := Clamp[int32](-3, -5, 3); got != -3 {
		t.Errorf("Clamp[int32] = %v", got)
	}
}

func TestLerp(t *testing.T) {
	for _, tc := range []struct {
		a, b, t, want float32
	}{
		{0, 10, 0, 0},
		{0, 10, 1, 10},
		{2, 4, 0.25, 2.5},
		{4, 2, 0.5, 3},
	} {
		if got := Lerp(tc.a, tc.b, tc.t); got != tc.want {
			t.Errorf("Lerp(%v,%v,%v) = %v, want %v", tc.a, tc.b, tc.t, got, tc.want)
		}
	}
}
