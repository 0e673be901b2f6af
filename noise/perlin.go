// Package noise provides seeded coherent noise for the wind field.
package noise

import (
	"math"
	"math/rand"
)

// Perlin generates coherent noise values. Identical seeds produce
// identical output; instances share no state.
type Perlin struct {
	perm [512]int
}

// New creates a Perlin noise generator from an explicit seed.
func New(seed int64) *Perlin {
	p := &Perlin{}
	p.Reseed(seed)
	return p
}

// Reseed replaces the permutation table. Only this instance is affected.
func (p *Perlin) Reseed(seed int64) {
	rng := rand.New(rand.NewSource(seed))

	// Initialize permutation table
	var perm [256]int
	for i := range perm {
		perm[i] = i
	}

	// Shuffle
	for i := len(perm) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}

	// Duplicate
	for i := 0; i < 256; i++ {
		p.perm[i] = perm[i]
		p.perm[i+256] = perm[i]
	}
}

// Noise3D returns a noise value in [-1, 1] for 3D coordinates.
func (p *Perlin) Noise3D(x, y, z float64) float64 {
	// Find unit cube
	X := int(math.Floor(x)) & 255
	Y := int(math.Floor(y)) & 255
	Z := int(math.Floor(z)) & 255

	// Find relative position in cube
	x -= math.Floor(x)
	y -= math.Floor(y)
	z -= math.Floor(z)

	// Compute fade curves
	u := fade(x)
	v := fade(y)
	w := fade(z)

	// Hash coordinates of cube corners
	A := p.perm[X] + Y
	AA := p.perm[A] + Z
	AB := p.perm[A+1] + Z
	B := p.perm[X+1] + Y
	BA := p.perm[B] + Z
	BB := p.perm[B+1] + Z

	// Blend results from 8 corners
	return lerp(w, lerp(v, lerp(u, grad3D(p.perm[AA], x, y, z),
		grad3D(p.perm[BA], x-1, y, z)),
		lerp(u, grad3D(p.perm[AB], x, y-1, z),
			grad3D(p.perm[BB], x-1, y-1, z))),
		lerp(v, lerp(u, grad3D(p.perm[AA+1], x, y, z-1),
			grad3D(p.perm[BA+1], x-1, y, z-1)),
			lerp(u, grad3D(p.perm[AB+1], x, y-1, z-1),
				grad3D(p.perm[BB+1], x-1, y-1, z-1))))
}

// Noise2D returns a noise value in [-1, 1] for 2D coordinates.
func (p *Perlin) Noise2D(x, y float64) float64 {
	return p.Noise3D(x, y, 0)
}

// Octave3D sums octaves of progressively higher frequency and lower
// amplitude, normalized by the amplitude sum so the result stays in
// [-1, 1] regardless of octave count.
func (p *Perlin) Octave3D(x, y, z float64, octaves int, persistence float64) float64 {
	total := 0.0
	frequency := 1.0
	amplitude := 1.0
	maxValue := 0.0

	for i := 0; i < octaves; i++ {
		total += p.Noise3D(x*frequency, y*frequency, z*frequency) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxValue
}

// Octave2D is the 2D form of Octave3D.
func (p *Perlin) Octave2D(x, y float64, octaves int, persistence float64) float64 {
	return p.Octave3D(x, y, 0, octaves, persistence)
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

func grad3D(hash int, x, y, z float64) float64 {
	h := hash & 15
	u := x
	if h >= 8 {
		u = y
	}
	v := y
	if h >= 4 {
		if h == 12 || h == 14 {
			v = x
		} else {
			v = z
		}
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}
