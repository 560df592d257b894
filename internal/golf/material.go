package golf

import (
	"fmt"
	"strings"
)

// Material tags a terrain edge. The order is a priority: where two edges of
// different materials meet, the corner takes the lower value.
type Material int

const (
	Normal Material = iota
	Slippery
	Bouncy
	Sand
	Hole
	Green
	Sticky
	Water
)

// MaterialProperties describe the contact response of a material.
// Bounce scales the velocity component along the contact normal and
// Friction scales the tangential one.
type MaterialProperties struct {
	Bounce   float64 `json:"bounce"`
	Friction float64 `json:"friction"`
}

var materialProperties = [...]MaterialProperties{
	Normal:   {Bounce: -0.3, Friction: 0.94},
	Slippery: {Bounce: -0.2, Friction: 0.98},
	Bouncy:   {Bounce: -0.6, Friction: 0.91},
	Sand:     {Bounce: -0.07, Friction: 0.4},
	Hole:     {Bounce: -0.1, Friction: 0},
	Green:    {Bounce: -0.2, Friction: 0.96},
	Sticky:   {Bounce: -0.1, Friction: 0},
	Water:    {Bounce: 0.5, Friction: 0.5},
}

var materialNames = [...]string{
	Normal:   "normal",
	Slippery: "slippery",
	Bouncy:   "bouncy",
	Sand:     "sand",
	Hole:     "hole",
	Green:    "green",
	Sticky:   "sticky",
	Water:    "water",
}

// Materials lists every material in priority order.
func Materials() []Material {
	return []Material{Normal, Slippery, Bouncy, Sand, Hole, Green, Sticky, Water}
}

func (m Material) Valid() bool {
	return m >= Normal && m <= Water
}

func (m Material) Properties() MaterialProperties {
	return materialProperties[m]
}

func (m Material) String() string {
	if !m.Valid() {
		return fmt.Sprintf("material(%d)", int(m))
	}
	return materialNames[m]
}

// ParseMaterial accepts a material name, case-insensitively. "ice" is an
// alias for slippery.
func ParseMaterial(name string) (Material, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "ice" {
		return Slippery, nil
	}
	for i, n := range materialNames {
		if n == name {
			return Material(i), nil
		}
	}
	return 0, fmt.Errorf("unknown material %q", name)
}

func minMaterial(a, b Material) Material {
	if a < b {
		return a
	}
	return b
}
