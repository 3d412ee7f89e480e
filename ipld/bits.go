package ipld

import "math"

func toBits(f float64) uint64 {
	return math.Float64bits(f)
}
