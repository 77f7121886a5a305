package util

import (
	"math"

	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

func Abs[A Number](n A) A {
	if n < 0 {
		return -n
	}
	return n
}

func Min[A constraints.Ordered](num1 A, num2 A) A {
	if num1 > num2 {
		return num2
	}
	return num1
}

func Max[A constraints.Ordered](num1 A, num2 A) A {
	if num1 < num2 {
		return num2
	}
	return num1
}

func Clamp[A constraints.Ordered](n, lo, hi A) A {
	return Max(lo, Min(n, hi))
}

func Sum[A Number](nums []A) A {
	var total A
	for _, v := range nums {
		total += v
	}
	return total
}

func Mean[A Number](nums []A) float64 {
	if len(nums) == 0 {
		return 0
	}
	return float64(Sum(nums)) / float64(len(nums))
}

// NearlyEqual compares floats with an absolute epsilon.
func NearlyEqual[A constraints.Float](a, b, eps A) bool {
	return math.Abs(float64(a-b)) <= float64(eps)
}
