package section

import "fmt"

// Section represents a cross-section defined by the vertices of a simple polygon
// The section is defined in a local coordinate system where:
// - Y-axis points upward
// - X-axis points to the right
// - Origin can be at any convenient location
type Section struct {
	Name        string `mapstructure:"name" json:"name"`
	Description string `mapstructure:"description" json:"description,omitempty"`

	// Vertices in order (either direction), no holes
	Vertices []Point `mapstructure:"vertices" json:"vertices"`
}

// Point represents a 2D coordinate
type Point struct {
	X float64 `mapstructure:"x" json:"x"`
	Y float64 `mapstructure:"y" json:"y"`
}

// Properties holds calculated geometric properties
type Properties struct {
	// Overall dimensions
	Width  float64
	Height float64
	Area   float64

	// Centroid location
	CentroidX float64
	CentroidY float64

	// Bounding box
	MinX float64
	MaxX float64
	MinY float64
	MaxY float64

	// Second moments about the centroidal axes
	Ix float64
	Iy float64

	// Elastic section moduli to the extreme fibres
	SxTop    float64
	SxBottom float64
}

// Validate checks if the section definition is valid
func (s *Section) Validate() error {
	if len(s.Vertices) < 3 {
		return &ValidationError{"section must have at least 3 vertices"}
	}
	for i, v := range s.Vertices {
		j := (i + 1) % len(s.Vertices)
		if v == s.Vertices[j] {
			return &ValidationError{msg: fmt.Sprintf("vertices %d and %d coincide", i+1, j+1)}
		}
	}
	if area, _, _ := s.areaAndCentroid(); area == 0 {
		return &ValidationError{"section has zero area"}
	}
	return nil
}

// ValidationError represents a section validation error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}
