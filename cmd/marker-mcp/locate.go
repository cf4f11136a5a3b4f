package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/ironsheep/marker-tools-mcp/internal/config"
	"github.com/ironsheep/marker-tools-mcp/internal/imaging"
	"github.com/ironsheep/marker-tools-mcp/internal/markers"
)

// runLocate implements the "locate" subcommand and returns the process exit
// code. Settings resolve as defaults, then the --config file, then any flag
// given explicitly on the command line.
func runLocate(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("locate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: marker-mcp locate [flags] <image>")
		fmt.Fprintln(stderr)
		fs.PrintDefaults()
	}

	configPath := fs.String("config", "", "JSON settings file (flags override its values)")
	redMin := fs.Int("red-min", markers.DefaultRedMin, "Marker pixels need red strictly above this")
	greenMax := fs.Int("green-max", markers.DefaultGreenMax, "Marker pixels need green strictly below this")
	blueMax := fs.Int("blue-max", markers.DefaultBlueMax, "Marker pixels need blue strictly below this")
	distance := fs.Float64("distance", markers.DefaultDistanceThreshold, "Join distance in pixels (strictly less than)")
	maxMarkers := fs.Int("max-markers", markers.DefaultMaxClusters, "Keep at most this many markers, largest first")
	workers := fs.Int("workers", 1, "Row-scan goroutines (0 or 1 scans sequentially)")
	blur := fs.Float64("blur", 0, "Gaussian smoothing radius applied before scanning (0 = off)")
	asJSON := fs.Bool("json", false, "Print the full report as JSON")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: locate needs exactly one image path")
		fs.Usage()
		return 2
	}

	var file config.File
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error loading config: %v\n", err)
			return 1
		}
		file = *loaded
	}

	var flags config.File
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "red-min":
			flags.RedMin = redMin
		case "green-max":
			flags.GreenMax = greenMax
		case "blue-max":
			flags.BlueMax = blueMax
		case "distance":
			flags.DistanceThreshold = distance
		case "max-markers":
			flags.MaxMarkers = maxMarkers
		case "workers":
			flags.Workers = workers
		case "blur":
			flags.Blur = blur
		}
	})
	merged := file.Overlay(&flags)
	if err := merged.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	settings := merged.Resolve(config.Defaults())

	img, err := imaging.NewImageCache().Load(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "Error opening image: %v\n", err)
		return 1
	}
	report, err := imaging.LocateMarkers(img, settings.Markers, settings.Blur)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}
	printReport(stdout, report)
	return 0
}

func printReport(w io.Writer, report *imaging.MarkerReport) {
	fmt.Fprintf(w, "Image dimensions: %dx%d\n", report.Width, report.Height)
	fmt.Fprintf(w, "Found %d red pixels\n", report.PixelCount)
	fmt.Fprintf(w, "Found %d red dot clusters\n", report.ClusterCount)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Red dot coordinates (x, y):")
	for _, m := range report.Markers {
		fmt.Fprintf(w, "Dot %d: (%d, %d)\n", m.Number, m.X, m.Y)
	}
}
