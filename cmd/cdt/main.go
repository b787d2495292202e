package main

import (
	"fmt"
	"io"
	"os"

	"github.com/logrusorgru/aurora"
	imgcat "github.com/martinlindhe/imgcat/lib"
	cdt "github.com/microsoft/automatic-graph-layout-sub018"
	"github.com/microsoft/automatic-graph-layout-sub018/dbg"
	"go.uber.org/zap"
	"gopkg.in/alecthomas/kingpin.v2"
)

// Triangulates the input and reports the mesh. Text input on stdin (or in
// the given file) holds one "x y" point per line, with blocks separated by an
// empty line: a block of one point is a site, two points are a segment and
// anything longer is a closed obstacle. Lines starting with # are ignored.
var (
	app       = kingpin.New("cdt", "Constrained Delaunay triangulation of sites, obstacles and segments.")
	inputFile = app.Arg("input", "Input file. Stdin when omitted.").String()
	svgInput  = app.Flag("svg", "Read the input as SVG: polygons and polylines become obstacles, lines segments and circles sites.").Bool()
	pngFile   = app.Flag("png", "Draw the mesh to this PNG file.").String()
	scale     = app.Flag("scale", "Pixels per unit when drawing.").Default("10").Float64()
	cat       = app.Flag("imgcat", "Print the drawing to the terminal.").Bool()
	geoFile   = app.Flag("geojson", "Write the mesh as GeoJSON to this file.").String()
	validate  = app.Flag("validate", "Reject crossing constraints and check the finished mesh.").Bool()
	verbose   = app.Flag("verbose", "Log sweep events.").Short('v').Bool()
	dump      = app.Flag("dump", "Print every triangle.").Bool()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, aurora.Red(err.Error()))
		os.Exit(1)
	}
}

func run() error {
	logger := zap.NewNop()
	if *verbose {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			return err
		}
		defer logger.Sync()
	}

	in := io.Reader(os.Stdin)
	if *inputFile != "" {
		f, err := os.Open(*inputFile)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	var input cdt.Input
	var err error
	if *svgInput {
		input, err = readSVG(in)
	} else {
		input, err = readText(in)
	}
	if err != nil {
		return err
	}

	tr, err := cdt.Triangulate(input, cdt.WithLogger(logger), cdt.WithValidation(*validate))
	if err != nil {
		return err
	}
	if *validate {
		if err := tr.Validate(); err != nil {
			return err
		}
	}

	fmt.Printf("%s sites, %s edges, %s triangles\n",
		aurora.Cyan(len(tr.Sites())),
		aurora.Cyan(len(tr.Edges())),
		aurora.Green(len(tr.Triangles())),
	)
	if *dump {
		for _, t := range tr.Triangles() {
			fmt.Println(tr.DescribeTriangle(t))
		}
		if *verbose {
			fmt.Print(dbg.Dump(tr.TrianglePoints()))
		}
	}

	if *geoFile != "" {
		fc, err := tr.GeoJSON()
		if err != nil {
			return err
		}
		data, err := fc.MarshalJSON()
		if err != nil {
			return err
		}
		if err := os.WriteFile(*geoFile, data, 0o644); err != nil {
			return err
		}
	}

	if *pngFile != "" || *cat {
		path := *pngFile
		if path == "" {
			path = "/tmp/cdt.png"
		}
		if err := tr.DrawPNG(path, *scale); err != nil {
			return err
		}
		if *cat {
			imgcat.CatFile(path, os.Stdout)
		}
	}
	return nil
}
