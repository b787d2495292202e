package main

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	cdt "github.com/microsoft/automatic-graph-layout-sub018"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

func readText(in io.Reader) (cdt.Input, error) {
	var input cdt.Input
	var block []orb.Point
	flush := func() {
		switch len(block) {
		case 0:
			return
		case 1:
			input.Sites = append(input.Sites, cdt.SiteInput{Point: block[0]})
		case 2:
			input.Segments = append(input.Segments, cdt.Segment{A: block[0], B: block[1]})
		default:
			input.Obstacles = append(input.Obstacles, &cdt.Polyline{Points: block, Closed: true})
		}
		block = nil
	}

	scanner := bufio.NewScanner(in)
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		// An empty line ends the block
		if line == "" {
			flush()
			continue
		}
		point, err := parsePoint(strings.Fields(line))
		if err != nil {
			return cdt.Input{}, errors.Wrapf(err, "line %d", lineNumber)
		}
		block = append(block, point)
	}
	if err := scanner.Err(); err != nil {
		return cdt.Input{}, err
	}
	flush()
	return input, nil
}

func parsePoint(fields []string) (orb.Point, error) {
	if len(fields) != 2 {
		return orb.Point{}, errors.Errorf("expected \"x y\", got %q", strings.Join(fields, " "))
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return orb.Point{}, errors.Wrap(err, "x")
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return orb.Point{}, errors.Wrap(err, "y")
	}
	return orb.Point{x, y}, nil
}

// This is not a full svg reader. Polygons become closed obstacles, polylines
// open ones, lines segments and circles sites. Everything else is ignored,
// transforms included.
func readSVG(in io.Reader) (cdt.Input, error) {
	root, err := svgparser.Parse(in, true)
	if err != nil {
		return cdt.Input{}, errors.Wrap(err, "parsing svg")
	}

	var input cdt.Input
	for _, el := range root.FindAll("polygon") {
		points, err := parsePointList(el.Attributes["points"])
		if err != nil {
			return cdt.Input{}, err
		}
		input.Obstacles = append(input.Obstacles, &cdt.Polyline{Points: points, Closed: true})
	}
	for _, el := range root.FindAll("polyline") {
		points, err := parsePointList(el.Attributes["points"])
		if err != nil {
			return cdt.Input{}, err
		}
		input.Obstacles = append(input.Obstacles, &cdt.Polyline{Points: points})
	}
	for _, el := range root.FindAll("line") {
		values, err := parseAttributes(el, "x1", "y1", "x2", "y2")
		if err != nil {
			return cdt.Input{}, err
		}
		input.Segments = append(input.Segments, cdt.Segment{
			A: orb.Point{values[0], values[1]},
			B: orb.Point{values[2], values[3]},
		})
	}
	// Circles mark isolated sites at their centers
	for _, el := range root.FindAll("circle") {
		values, err := parseAttributes(el, "cx", "cy")
		if err != nil {
			return cdt.Input{}, err
		}
		input.Sites = append(input.Sites, cdt.SiteInput{Point: orb.Point{values[0], values[1]}})
	}
	return input, nil
}

// Points are "x,y" pairs separated by spaces.
func parsePointList(s string) ([]orb.Point, error) {
	var points []orb.Point
	for _, pair := range strings.Fields(s) {
		point, err := parsePoint(strings.Split(pair, ","))
		if err != nil {
			return nil, errors.Wrapf(err, "point list %q", s)
		}
		points = append(points, point)
	}
	return points, nil
}

func parseAttributes(el *svgparser.Element, names ...string) ([]float64, error) {
	values := make([]float64, len(names))
	for i, name := range names {
		v, err := strconv.ParseFloat(el.Attributes[name], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "<%s> attribute %s", el.Name, name)
		}
		values[i] = v
	}
	return values, nil
}
