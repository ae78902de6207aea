package nscp

import (
	"fmt"
	"math"
	"strings"
)

// NSCP 2015 Material Constants

const (
	// Modulus of elasticity for steel (Section 420.2.2)
	Es = 200000.0 // MPa

	// Modulus of elasticity for structural steel shapes (Section 502.3)
	EsStructural = 200000.0 // MPa
)

// Ec calculates the modulus of elasticity of normal weight concrete
// NSCP 2015 Section 419.2.2.1
func Ec(fc float64) float64 {
	return 4700 * math.Sqrt(fc)
}

// Modulus returns the elastic modulus (MPa) for a named material.
// Concrete needs its specified strength f'c.
func Modulus(material string, fc float64) (float64, error) {
	switch strings.ToLower(material) {
	case "steel", "structural-steel":
		return Es, nil
	case "concrete":
		if fc <= 0 {
			return 0, fmt.Errorf("concrete modulus needs a positive f'c, got %g", fc)
		}
		return Ec(fc), nil
	default:
		return 0, fmt.Errorf("unknown material %q", material)
	}
}
