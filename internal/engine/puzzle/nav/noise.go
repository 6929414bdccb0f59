package nav

import "math"

// valueNoise is a seeded coherent value-noise sampler. Lattice values are
// derived from an integer hash of the seed and coordinates, interpolated
// with a smoothstep so neighboring samples vary gradually. Thresholded
// samples then form connected forest and stream regions instead of
// scattered single cells.
type valueNoise struct {
	seed int64
}

// lattice returns a deterministic pseudo-random value in [0,1) for an
// integer lattice point.
func (n valueNoise) lattice(x, y int64) float64 {
	h := uint64(n.seed) ^ uint64(x)*0x9e3779b97f4a7c15 ^ uint64(y)*0xbf58476d1ce4e5b9
	h ^= h >> 30
	h *= 0xbf58476d1ce4e5b9
	h ^= h >> 27
	h *= 0x94d049bb133111eb
	h ^= h >> 31
	return float64(h>>11) / float64(1<<53)
}

// sample returns smooth noise in [0,1) at the given continuous coordinate.
func (n valueNoise) sample(x, y float64) float64 {
	x0 := int64(math.Floor(x))
	y0 := int64(math.Floor(y))
	fx := x - math.Floor(x)
	fy := y - math.Floor(y)

	sx := fx * fx * (3 - 2*fx)
	sy := fy * fy * (3 - 2*fy)

	v00 := n.lattice(x0, y0)
	v10 := n.lattice(x0+1, y0)
	v01 := n.lattice(x0, y0+1)
	v11 := n.lattice(x0+1, y0+1)

	top := v00 + (v10-v00)*sx
	bottom := v01 + (v11-v01)*sx
	return top + (bottom-top)*sy
}

// fractal layers octaves of sample for richer terrain variation.
func (n valueNoise) fractal(x, y float64, octaves int) float64 {
	total := 0.0
	amplitude := 1.0
	frequency := 1.0
	norm := 0.0
	for i := 0; i < octaves; i++ {
		total += n.sample(x*frequency, y*frequency) * amplitude
		norm += amplitude
		amplitude *= 0.5
		frequency *= 2
	}
	return total / norm
}
