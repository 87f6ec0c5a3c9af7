// Command chartsnap renders data files as a chart into a PNG image.
//
//	chartsnap -kind line-series -o spectra.png subject-01.csv subject-02.csv
//
// Every file becomes one overlay; the first is drawn on top.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"git.sr.ht/~whereswaldon/brainchart/backend"
	"git.sr.ht/~whereswaldon/brainchart/chart"
	"git.sr.ht/~whereswaldon/brainchart/config"
	"git.sr.ht/~whereswaldon/brainchart/model"
	"git.sr.ht/~whereswaldon/brainchart/primitive"
	"git.sr.ht/~whereswaldon/brainchart/render/raster"
	"git.sr.ht/~whereswaldon/brainchart/selection"
)

func main() {
	kindName := flag.String("kind", model.Histogram.String(), "chart kind: histogram, line-series or matrix")
	out := flag.String("o", "chart.png", "output PNG file")
	cfgPath := flag.String("config", "", "TOML configuration file")
	width := flag.Int("width", 0, "image width in pixels (default from config)")
	height := flag.Int("height", 0, "image height in pixels (default from config)")
	right := flag.Bool("right", false, "put every overlay after the first on the right axis")
	identify := flag.String("identify", "", "print the item under the pixel \"x,y\" (origin bottom left)")
	verbose := flag.Bool("v", false, "log skipped frames")
	flag.Parse()

	if *verbose {
		chart.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	kind, ok := model.ParseChartKind(*kindName)
	if !ok {
		log.Fatalf("unknown chart kind %q", *kindName)
	}
	if flag.NArg() == 0 {
		log.Fatal("no data files given")
	}
	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			log.Fatal(err)
		}
	}
	if *width > 0 {
		cfg.Window.Width = *width
	}
	if *height > 0 {
		cfg.Window.Height = *height
	}

	set, err := loadSet(kind, flag.Args(), cfg, *right)
	if err != nil {
		log.Fatal(err)
	}
	canvas, err := raster.New(cfg.Window.Width, cfg.Window.Height)
	if err != nil {
		log.Fatalf("failed loading font: %v", err)
	}
	canvas.Clear(cfg.Background())
	sel := selection.NewManager()
	r := chart.NewRenderer(canvas, canvas, sel, cfg.ChartStyle())
	vp := primitive.Viewport{W: float64(cfg.Window.Width), H: float64(cfg.Window.Height)}

	canvas.DrawTitles(r.Draw(chart.Frame{Set: set, Viewport: vp}))

	if *identify != "" {
		x, y, err := parsePoint(*identify)
		if err != nil {
			log.Fatal(err)
		}
		r.Draw(chart.Frame{Set: set, Viewport: vp, Identify: true, MouseX: x, MouseY: y})
		if hit, ok := sel.Hit(kind); ok {
			fmt.Println(hit)
		} else {
			fmt.Println("nothing at", *identify)
		}
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	if err := canvas.EncodePNG(f); err != nil {
		f.Close()
		log.Fatalf("failed writing %s: %v", *out, err)
	}
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
}

func loadSet(kind model.ChartKind, paths []string, cfg config.Config, right bool) (*model.OverlaySet, error) {
	opts := backend.Options{Bins: cfg.Histogram.Bins, History: cfg.Lines.History}
	set := model.NewOverlaySet(kind, len(paths))
	for i, path := range paths {
		src, err := backend.LoadFile(kind, path, opts)
		if err != nil {
			return nil, err
		}
		cfg.ApplySource(src)
		if err := set.AddSource(src); err != nil {
			return nil, err
		}
		o := set.Overlay(i)
		o.Enabled = true
		o.SourceName = src.Name()
		if right && i > 0 && kind != model.Matrix {
			o.SetVerticalAxis(model.Right)
		}
	}
	cfg.Apply(set)
	set.RefreshSelection()
	return set, nil
}

func parsePoint(s string) (float64, float64, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("point %q is not \"x,y\"", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("point %q: %w", s, err)
	}
	return x, y, nil
}
