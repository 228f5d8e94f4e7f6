// SPDX-License-Identifier: GPL-2.0-or-later

// Package math has the generic helpers missing from math32 and mgl32.
package math

type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

type Float interface {
	~float32 | ~float64
}

// Clamp limits val to [min,max].
func Clamp[K Number](min, val, max K) K {
	if min > val {
		return min
	} else if max < val {
		return max
	}
	return val
}

// Lerp interpolates between a and b, t in [0,1].
func Lerp[F Float](a, b, t F) F {
	return a + (b-a)*t
}
