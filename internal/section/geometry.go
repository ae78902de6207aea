package section

import (
	"math"
	"sort"
)

// Properties computes the geometric properties of the section
func (s *Section) Properties() (Properties, error) {
	var props Properties
	if err := s.Validate(); err != nil {
		return props, err
	}

	// Find bounding box
	props.MinX, props.MaxX = s.Vertices[0].X, s.Vertices[0].X
	props.MinY, props.MaxY = s.Vertices[0].Y, s.Vertices[0].Y

	for _, v := range s.Vertices {
		props.MinX = math.Min(props.MinX, v.X)
		props.MaxX = math.Max(props.MaxX, v.X)
		props.MinY = math.Min(props.MinY, v.Y)
		props.MaxY = math.Max(props.MaxY, v.Y)
	}

	props.Width = props.MaxX - props.MinX
	props.Height = props.MaxY - props.MinY

	props.Area, props.CentroidX, props.CentroidY = s.areaAndCentroid()
	ix, iy := s.originMoments()
	props.Ix = ix - props.Area*props.CentroidY*props.CentroidY
	props.Iy = iy - props.Area*props.CentroidX*props.CentroidX

	if top := props.MaxY - props.CentroidY; top > 0 {
		props.SxTop = props.Ix / top
	}
	if bottom := props.CentroidY - props.MinY; bottom > 0 {
		props.SxBottom = props.Ix / bottom
	}
	return props, nil
}

// areaAndCentroid uses the shoelace formula
func (s *Section) areaAndCentroid() (area, cx, cy float64) {
	n := len(s.Vertices)
	if n < 3 {
		return 0, 0, 0
	}

	var signedArea float64
	var sumX, sumY float64

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := s.Vertices[i].X*s.Vertices[j].Y - s.Vertices[j].X*s.Vertices[i].Y
		signedArea += cross
		sumX += (s.Vertices[i].X + s.Vertices[j].X) * cross
		sumY += (s.Vertices[i].Y + s.Vertices[j].Y) * cross
	}

	signedArea /= 2
	area = math.Abs(signedArea)

	if area > 0 {
		cx = sumX / (6 * signedArea)
		cy = sumY / (6 * signedArea)
	}

	return area, cx, cy
}

// originMoments returns the second moments about the coordinate axes,
// independent of the vertex direction
func (s *Section) originMoments() (ix, iy float64) {
	n := len(s.Vertices)
	var signed float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a, b := s.Vertices[i], s.Vertices[j]
		cross := a.X*b.Y - b.X*a.Y
		signed += cross
		ix += (a.Y*a.Y + a.Y*b.Y + b.Y*b.Y) * cross
		iy += (a.X*a.X + a.X*b.X + b.X*b.X) * cross
	}
	if signed < 0 {
		ix, iy = -ix, -iy
	}
	return ix / 12, iy / 12
}

// WidthAtDepth calculates the width of the section at a given depth from top
// Uses horizontal line intersection with the polygon
func (s *Section) WidthAtDepth(depthFromTop float64) float64 {
	maxY := s.Vertices[0].Y
	for _, v := range s.Vertices {
		maxY = math.Max(maxY, v.Y)
	}
	return s.widthAtY(maxY - depthFromTop)
}

// widthAtY calculates the width at a specific Y coordinate
func (s *Section) widthAtY(y float64) float64 {
	intersections := s.findIntersectionsAtY(y)

	if len(intersections) < 2 {
		return 0
	}

	sort.Float64s(intersections)

	// Total width is the sum of all segments
	var totalWidth float64
	for i := 0; i+1 < len(intersections); i += 2 {
		totalWidth += intersections[i+1] - intersections[i]
	}

	return totalWidth
}

// findIntersectionsAtY finds all X coordinates where a horizontal line at Y intersects the polygon
func (s *Section) findIntersectionsAtY(y float64) []float64 {
	var intersections []float64
	n := len(s.Vertices)

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		v1, v2 := s.Vertices[i], s.Vertices[j]

		if (v1.Y <= y && v2.Y > y) || (v2.Y <= y && v1.Y > y) {
			t := (y - v1.Y) / (v2.Y - v1.Y)
			x := v1.X + t*(v2.X-v1.X)
			intersections = append(intersections, x)
		}
	}

	return intersections
}
