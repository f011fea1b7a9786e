package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/osuushi/cdt"
	"github.com/osuushi/cdt/internal/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
	"gopkg.in/alecthomas/kingpin.v2"
)

// Triangulate and refine polygons into a quality mesh. Input on stdin should be
// newline separated points in the form "x y", with each polygon separated by
// an extra newline, unless --svg is given.
//
// Counterclockwise polygons are solid and clockwise polygons are holes. A hole
// belongs to the first solid polygon containing its first point. None of these
// requirements are validated.
var (
	app = kingpin.New("meshtri", "Constrained Delaunay triangulation with quality refinement.")

	svgPath       = app.Flag("svg", "Read polygons from an SVG file instead of stdin.").ExistingFile()
	paramsPath    = app.Flag("params", "YAML file with refinement parameters.").ExistingFile()
	minB          = app.Flag("min-b", "Minimum triangle quality (shortest edge over circumradius).").Default("-1").Float64()
	maxArea       = app.Flag("max-area", "Maximum triangle area, 0 for no limit.").Default("-1").Float64()
	minLength     = app.Flag("min-length", "Do not refine around edges shorter than this.").Default("-1").Float64()
	maxIterations = app.Flag("max-iterations", "Cap on refinement steps.").Default("-1").Int()
	scale         = app.Flag("scale", "Factor applied to input coordinates.").Default("1").Float64()
	pngPath       = app.Flag("png", "Write a PNG rendering of the mesh.").String()
	pngScale      = app.Flag("png-scale", "Pixels per unit in the PNG rendering.").Default("1").Float64()
	htmlPath      = app.Flag("html", "Write an interactive HTML chart of the mesh.").String()
	quiet         = app.Flag("quiet", "Do not print triangles.").Short('q').Bool()
	verbose       = app.Flag("verbose", "Log refinement progress.").Short('v').Counter()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	level := zapcore.WarnLevel
	switch {
	case *verbose >= 2:
		level = zapcore.DebugLevel
	case *verbose == 1:
		level = zapcore.InfoLevel
	}
	log := logger.New(os.Stderr, level, true)
	defer log.Sync()

	params, err := loadParameters()
	app.FatalIfError(err, "loading parameters")

	region, err := loadRegion()
	app.FatalIfError(err, "reading polygons")
	log.Info(fmt.Sprintf("Read %d polygons", len(region)))

	mesh, err := cdt.Triangulate(region, params, *scale, cdt.WithLogger(log))
	if errors.Is(err, cdt.ErrQualityNotReached) {
		log.Warn(err.Error())
	} else {
		app.FatalIfError(err, "triangulating")
	}

	if *pngPath != "" {
		app.FatalIfError(writeFile(*pngPath, func(w io.Writer) error {
			return mesh.DrawPNG(w, *pngScale)
		}), "writing png")
	}
	if *htmlPath != "" {
		app.FatalIfError(writeFile(*htmlPath, func(w io.Writer) error {
			return mesh.RenderHTML(w, "meshtri")
		}), "writing html")
	}
	if !*quiet {
		out := bufio.NewWriter(os.Stdout)
		for _, triangle := range mesh.TriangleCoords() {
			fmt.Fprintf(out, "%g %g %g %g %g %g\n",
				triangle[0].X, triangle[0].Y,
				triangle[1].X, triangle[1].Y,
				triangle[2].X, triangle[2].Y)
		}
		app.FatalIfError(out.Flush(), "writing triangles")
	}
}

// Parameters from --params, overridden by any explicitly given flags.
func loadParameters() (cdt.Parameters, error) {
	params := cdt.DefaultParameters()
	if *paramsPath != "" {
		f, err := os.Open(*paramsPath)
		if err != nil {
			return params, err
		}
		defer f.Close()
		if params, err = cdt.LoadParameters(f); err != nil {
			return params, err
		}
	}
	if *minB >= 0 {
		params.MinB = *minB
	}
	if *maxArea >= 0 {
		params.MaxArea = *maxArea
	}
	if *minLength >= 0 {
		params.MinLength = *minLength
	}
	if *maxIterations > 0 {
		params.MaxIterations = *maxIterations
	}
	return params, params.Validate()
}

func loadRegion() (cdt.Region, error) {
	if *svgPath != "" {
		f, err := os.Open(*svgPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return cdt.LoadSVGRegion(f)
	}
	contours, err := readContours(os.Stdin)
	if err != nil {
		return nil, err
	}
	return regionFromContours(contours), nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func readContours(in io.Reader) ([]cdt.Contour, error) {
	contours := []cdt.Contour{}
	// Scan lines
	scanner := bufio.NewScanner(in)
	points := cdt.Contour{}
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		line := strings.TrimSpace(scanner.Text())

		// If it's empty, and we collected any points, this is the end of the polygon
		if line == "" {
			if len(points) > 0 {
				contours = append(contours, points)
				points = cdt.Contour{}
			}
			continue
		}

		// Parse the point out of the line
		point, err := parsePoint(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNumber)
		}
		points = append(points, point)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// Handle trailing polygon if any
	if len(points) > 0 {
		contours = append(contours, points)
	}
	return contours, nil
}

func parsePoint(line string) (cdt.Point, error) {
	parts := strings.Fields(line)
	if len(parts) != 2 {
		return cdt.Point{}, errors.Errorf("expected two coordinates, got %q", line)
	}
	x, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return cdt.Point{}, err
	}
	y, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return cdt.Point{}, err
	}
	return cdt.Point{X: x, Y: y}, nil
}

// Solid polygons wind counterclockwise, holes clockwise.
func regionFromContours(contours []cdt.Contour) cdt.Region {
	var region cdt.Region
	var holes []cdt.Contour
	for _, contour := range contours {
		if contour.IsCCW() {
			region = append(region, cdt.Polygon{Hull: contour})
		} else {
			holes = append(holes, contour)
		}
	}
	for _, hole := range holes {
		placed := false
		for i := range region {
			if region[i].Hull.ContainsPointByEvenOdd(hole[0]) {
				region[i].Holes = append(region[i].Holes, hole)
				placed = true
				break
			}
		}
		if !placed {
			// A hole in nothing is just another outline
			region = append(region, cdt.Polygon{Hull: hole})
		}
	}
	return region
}
