package section

import "fmt"

// Rectangle returns a solid b x h section with its bottom-left corner at the origin
func Rectangle(name string, b, h float64) (*Section, error) {
	if b <= 0 || h <= 0 {
		return nil, &ValidationError{msg: fmt.Sprintf("rectangle %gx%g must have positive sides", b, h)}
	}
	return &Section{
		Name:     name,
		Vertices: []Point{{0, 0}, {b, 0}, {b, h}, {0, h}},
	}, nil
}

// IShape returns an I section symmetric about the vertical axis.
// bf1 x tf1 is the top flange, d x tw the web between the flanges and
// bf2 x tf2 the bottom flange; the overall depth is tf1 + d + tf2.
func IShape(name string, bf1, tf1, d, tw, bf2, tf2 float64) (*Section, error) {
	for _, v := range []float64{bf1, tf1, d, tw, bf2, tf2} {
		if v <= 0 {
			return nil, &ValidationError{"I-shape dimensions must be positive"}
		}
	}
	if tw > bf1 || tw > bf2 {
		return nil, &ValidationError{msg: fmt.Sprintf("web thickness %g is wider than a flange", tw)}
	}
	h := tf2 + d + tf1
	return &Section{
		Name: name,
		Vertices: []Point{
			{-bf2 / 2, 0}, {bf2 / 2, 0}, {bf2 / 2, tf2}, {tw / 2, tf2},
			{tw / 2, tf2 + d}, {bf1 / 2, tf2 + d}, {bf1 / 2, h}, {-bf1 / 2, h},
			{-bf1 / 2, tf2 + d}, {-tw / 2, tf2 + d}, {-tw / 2, tf2}, {-bf2 / 2, tf2},
		},
	}, nil
}

// Shape describes a section either by a named builder or by its vertices
type Shape struct {
	Kind string `mapstructure:"kind"` // rectangle, i or polygon

	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`

	TopFlangeWidth        float64 `mapstructure:"bf1"`
	TopFlangeThickness    float64 `mapstructure:"tf1"`
	WebDepth              float64 `mapstructure:"d"`
	WebThickness          float64 `mapstructure:"tw"`
	BottomFlangeWidth     float64 `mapstructure:"bf2"`
	BottomFlangeThickness float64 `mapstructure:"tf2"`

	Vertices []Point `mapstructure:"vertices"`
}

// Build creates the section the shape describes
func (sh Shape) Build(name string) (*Section, error) {
	switch sh.Kind {
	case "rectangle", "rect":
		return Rectangle(name, sh.Width, sh.Height)
	case "i", "I", "i-shape":
		return IShape(name, sh.TopFlangeWidth, sh.TopFlangeThickness, sh.WebDepth,
			sh.WebThickness, sh.BottomFlangeWidth, sh.BottomFlangeThickness)
	case "polygon", "":
		s := &Section{Name: name, Vertices: sh.Vertices}
		if err := s.Validate(); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, &ValidationError{msg: fmt.Sprintf("unknown shape kind %q", sh.Kind)}
	}
}
