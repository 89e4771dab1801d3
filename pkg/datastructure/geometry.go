package datastructure

import "math"

const epsilon = 1e-9

func Eq(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func Lt(a, b float64) bool {
	return a < b && !Eq(a, b)
}

func Ge(a, b float64) bool {
	return a > b || Eq(a, b)
}
