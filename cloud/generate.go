package cloud

import (
	"math"
	"math/rand/v2"
)

// StarfieldExtent is the edge length of the cube the starfield fills, centered on
// the origin.
const StarfieldExtent = 20

// Buffers holds flat xyz position triples and, when the cloud is colored per
// point, rgb color triples.
type Buffers struct {
	Positions []float32
	Colors    []float32
}

// Count returns the number of points.
func (b Buffers) Count() int { return len(b.Positions) / 3 }

// Starfield scatters p.Stars points uniformly in the starfield cube. Stars are
// colored by their material, so Colors is nil.
func Starfield(p Params, rng *rand.Rand) (Buffers, error) {
	if err := p.Validate(); err != nil {
		return Buffers{}, err
	}
	pos := make([]float32, p.Stars*3)
	for i := range pos {
		pos[i] = float32((rng.Float64() - 0.5) * StarfieldExtent)
	}
	return Buffers{Positions: pos}, nil
}

// Point is one sampled galaxy point.
type Point struct {
	// Radius is the sampled distance along the arm before jitter; the color is a
	// function of Radius only.
	Radius   float64
	Position [3]float64
	Color    RGB
}

// Galaxy places p.Count points on p.Branches spiral arms.
func Galaxy(p Params, rng *rand.Rand) (Buffers, error) {
	if err := p.Validate(); err != nil {
		return Buffers{}, err
	}
	grad, err := NewGradient(p.InsideColor, p.OutsideColor)
	if err != nil {
		return Buffers{}, err
	}

	pos := make([]float32, p.Count*3)
	col := make([]float32, p.Count*3)
	for i := 0; i < p.Count; i++ {
		pt := SampleGalaxyPoint(i, p, grad, rng)
		pos[i*3+0] = float32(pt.Position[0])
		pos[i*3+1] = float32(pt.Position[1])
		pos[i*3+2] = float32(pt.Position[2])
		col[i*3+0] = float32(pt.Color.R)
		col[i*3+1] = float32(pt.Color.G)
		col[i*3+2] = float32(pt.Color.B)
	}
	return Buffers{Positions: pos, Colors: col}, nil
}

// SampleGalaxyPoint draws point i. It consumes seven values from rng: the radius,
// then magnitude and sign for x, y and z in that order.
func SampleGalaxyPoint(i int, p Params, grad Gradient, rng *rand.Rand) Point {
	x := rng.Float64() * p.Radius
	angle := BranchAngle(i, p.Branches) + x*p.Spin

	rx := Jitter(rng, p.RandomnessPower)
	ry := Jitter(rng, p.RandomnessPower)
	rz := Jitter(rng, p.RandomnessPower)

	return Point{
		Radius: x,
		Position: [3]float64{
			math.Sin(angle)*x + rx,
			ry,
			math.Cos(angle)*x + rz,
		},
		Color: grad.At(x / p.Radius),
	}
}

// BranchAngle is the base angle of the arm point i is assigned to. Points are dealt
// to arms round-robin by index.
func BranchAngle(i, branches int) float64 {
	return float64(i%branches) / float64(branches) * 2 * math.Pi
}

// Jitter returns u^power with a random sign, u uniform in [0,1). Large powers pull
// most offsets toward zero and leave a thin tail of strays.
func Jitter(rng *rand.Rand, power float64) float64 {
	mag := math.Pow(rng.Float64(), power)
	if rng.Float64() < 0.5 {
		return mag
	}
	return -mag
}
