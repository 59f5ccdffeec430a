// ABOUTME: Typed shape dimensions for tanks, pits and shafts
// ABOUTME: Loose dimension maps are converted to a Geometry once at the API boundary

package models

import (
	"encoding/json"
	"math"
	"strings"
)

type Shape string

const (
	ShapeRectangular Shape = "rectangular"
	ShapeCircular    Shape = "circular"
)

// ParseShape accepts the common spellings used by clients.
func ParseShape(s string) (Shape, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rectangular", "rectangle", "rect", "box":
		return ShapeRectangular, true
	case "circular", "circle", "cylindrical", "cylinder":
		return ShapeCircular, true
	default:
		return "", false
	}
}

// Geometry is a structure's interior. Degenerate geometries report zero volume and area.
type Geometry interface {
	Shape() Shape
	Degenerate() bool
	CubicMeters() float64
	SurfaceArea() float64
}

// Rectangular dimensions in meters.
type Rectangular struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Depth  float64 `json:"depth"`
}

func (r Rectangular) Shape() Shape { return ShapeRectangular }

func (r Rectangular) Degenerate() bool {
	return !(r.Length > 0 && r.Width > 0 && r.Depth > 0)
}

func (r Rectangular) CubicMeters() float64 {
	if r.Degenerate() {
		return 0
	}
	return r.Length * r.Width * r.Depth
}

// SurfaceArea covers four walls and the floor; the top is open.
func (r Rectangular) SurfaceArea() float64 {
	if r.Degenerate() {
		return 0
	}
	return 2*(r.Length*r.Depth+r.Width*r.Depth) + r.Length*r.Width
}

func (r Rectangular) MarshalJSON() ([]byte, error) {
	type dims Rectangular
	return json.Marshal(struct {
		Shape Shape `json:"shape"`
		dims
	}{ShapeRectangular, dims(r)})
}

// Cylindrical dimensions in meters.
type Cylindrical struct {
	Diameter float64 `json:"diameter"`
	Height   float64 `json:"height"`
}

func (c Cylindrical) Shape() Shape { return ShapeCircular }

func (c Cylindrical) Degenerate() bool {
	return !(c.Diameter > 0 && c.Height > 0)
}

func (c Cylindrical) CubicMeters() float64 {
	if c.Degenerate() {
		return 0
	}
	r := c.Diameter / 2
	return math.Pi * r * r * c.Height
}

// SurfaceArea covers the wall and the floor.
func (c Cylindrical) SurfaceArea() float64 {
	if c.Degenerate() {
		return 0
	}
	r := c.Diameter / 2
	return math.Pi*c.Diameter*c.Height + math.Pi*r*r
}

func (c Cylindrical) MarshalJSON() ([]byte, error) {
	type dims Cylindrical
	return json.Marshal(struct {
		Shape Shape `json:"shape"`
		dims
	}{ShapeCircular, dims(c)})
}

// Unsupported stands in for dimensions given with a shape that cannot be
// built. It is always degenerate, so costing treats it as zero volume.
type Unsupported struct {
	Name string
}

func (u Unsupported) Shape() Shape         { return Shape(u.Name) }
func (u Unsupported) Degenerate() bool     { return true }
func (u Unsupported) CubicMeters() float64 { return 0 }
func (u Unsupported) SurfaceArea() float64 { return 0 }

// ParseGeometry converts a client dimension map into a Geometry. Missing keys
// read as zero and a blank shape means rectangular. A cylinder's height comes
// from "depth" when that key is present, otherwise from "height". Unsupported
// shapes return a degenerate Unsupported geometry.
func ParseGeometry(shape string, dims map[string]float64) Geometry {
	if strings.TrimSpace(shape) == "" {
		shape = string(ShapeRectangular)
	}
	s, ok := ParseShape(shape)
	if !ok {
		return Unsupported{Name: shape}
	}
	switch s {
	case ShapeRectangular:
		return Rectangular{Length: dims["length"], Width: dims["width"], Depth: dims["depth"]}
	default:
		height, ok := dims["depth"]
		if !ok {
			height = dims["height"]
		}
		return Cylindrical{Diameter: dims["diameter"], Height: height}
	}
}

// GeometryResult is the outcome of a volume calculation. Degenerate is set
// when the shape was unsupported or a dimension was not positive.
type GeometryResult struct {
	Liters      float64 `json:"liters"`
	CubicMeters float64 `json:"volume_m3"`
	Degenerate  bool    `json:"degenerate"`
}

// VolumeRequest asks for the volume of a custom structure
type VolumeRequest struct {
	Shape      string             `json:"shape"`
	Dimensions map[string]float64 `json:"dimensions"`
}
