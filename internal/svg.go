package internal

import (
	"io"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/pkg/errors"
)

// Read a region from the <polygon> elements of an SVG document. This is not a
// full SVG reader: transforms, paths and other shapes are ignored.
//
// Each polygon whose first point lies inside the hull of an earlier polygon
// becomes a hole of that polygon. Every other polygon starts a new one.
func LoadSVGRegion(r io.Reader) (Region, error) {
	root, err := svgparser.Parse(r, false)
	if err != nil {
		return nil, errors.Wrap(err, "parsing svg")
	}
	elements := root.FindAll("polygon")
	if len(elements) == 0 {
		return nil, errors.New("no polygons found in svg")
	}

	var region Region
	for i, element := range elements {
		contour, err := parseSVGPoints(element.Attributes["points"])
		if err != nil {
			return nil, errors.Wrapf(err, "polygon %d", i)
		}
		if len(contour) < 3 {
			return nil, errors.Errorf("polygon %d has only %d points", i, len(contour))
		}
		parent := -1
		for j, poly := range region {
			if poly.Hull.ContainsPointByEvenOdd(contour[0]) {
				parent = j
				break
			}
		}
		if parent >= 0 {
			region[parent].Holes = append(region[parent].Holes, contour)
		} else {
			region = append(region, Polygon{Hull: contour})
		}
	}
	return region, nil
}

// Parse an SVG points list. Coordinates may be separated by commas, spaces or
// both.
func parseSVGPoints(s string) (Contour, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields)%2 != 0 {
		return nil, errors.Errorf("odd number of coordinates in %q", s)
	}
	contour := make(Contour, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid x value %q", fields[i])
		}
		y, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid y value %q", fields[i+1])
		}
		contour = append(contour, Point{X: x, Y: y})
	}
	// SVG polygons often repeat the first point at the end
	if n := len(contour); n > 1 && PointsEqual(contour[0], contour[n-1]) {
		contour = contour[:n-1]
	}
	return contour, nil
}
