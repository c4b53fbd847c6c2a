package material

import (
	"math"

	"github.com/dfaivre/go-hybrid-tracer/pkg/core"
)

// Texture is a decoded RGB image: 3 bytes per pixel, row-major, origin
// top-left. Loading and decoding is the concern of pkg/loaders.
type Texture struct {
	Path   string
	Width  int
	Height int
	Bytes  []byte
}

// Sample returns the color at texture coordinate (u, v). Coordinates outside
// [0,1] wrap by fractional reflection rather than clamping, so plane and
// tri-planar UVs derived from world positions tile the image.
func (t *Texture) Sample(u, v float64) core.Vec3 {
	if t.Width == 0 || t.Height == 0 {
		return core.Zero
	}

	x := int(float64(t.Width) * wrap(u))
	y := int(float64(t.Height) * wrap(v))
	if x >= t.Width {
		x = t.Width - 1
	}
	if y >= t.Height {
		y = t.Height - 1
	}
	return t.Pixel(x, y)
}

// Pixel returns the color at integer pixel coordinates.
func (t *Texture) Pixel(x, y int) core.Vec3 {
	pos := (y*t.Width + x) * 3
	return core.NewVec3(
		float64(t.Bytes[pos])/255.0,
		float64(t.Bytes[pos+1])/255.0,
		float64(t.Bytes[pos+2])/255.0,
	)
}

// wrap maps any coordinate to [0,1) by reflecting its fractional part.
func wrap(c float64) float64 {
	return math.Abs(c - math.Trunc(c))
}

// TriPlanar samples the texture along all three axis-aligned projections of
// the local point and blends them by the normal's axis weights raised to the
// blending exponent. Used by the ray marcher, where CSG surfaces have no
// single parameterization.
func TriPlanar(tex *Texture, p, n core.Vec3, blending, scale float64) core.Vec3 {
	x := tex.Sample(p.Y*scale, p.Z*scale)
	y := tex.Sample(p.X*scale, p.Z*scale)
	z := tex.Sample(p.X*scale, p.Y*scale)

	bw := n.Abs().Pow(blending)
	sum := bw.X + bw.Y + bw.Z
	if sum == 0 {
		return x
	}
	bw = bw.Multiply(1.0 / sum)

	return x.Multiply(bw.X).Add(y.Multiply(bw.Y)).Add(z.Multiply(bw.Z))
}
