// Command brainchart shows histogram, line series and matrix data files as
// interactive charts. Files are reloaded when they change on disk.
//
//	brainchart -lines spectra.csv -matrix connectivity.csv
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/op"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"git.sr.ht/~whereswaldon/brainchart/backend"
	"git.sr.ht/~whereswaldon/brainchart/config"
	"git.sr.ht/~whereswaldon/brainchart/model"
)

// fileList collects a comma separated flag that may be repeated.
type fileList []string

func (f *fileList) String() string {
	return strings.Join(*f, ",")
}

func (f *fileList) Set(v string) error {
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			*f = append(*f, p)
		}
	}
	return nil
}

func main() {
	cfgPath := flag.String("config", "", "TOML configuration file")
	files := map[model.ChartKind]*fileList{
		model.Histogram:  new(fileList),
		model.LineSeries: new(fileList),
		model.Matrix:     new(fileList),
	}
	flag.Var(files[model.Histogram], "histogram", "histogram data files")
	flag.Var(files[model.LineSeries], "lines", "line series data files")
	flag.Var(files[model.Matrix], "matrix", "matrix data files")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			log.Fatal(err)
		}
	}

	bundle, err := backend.NewBundle(backend.Options{Bins: cfg.Histogram.Bins, History: cfg.Lines.History})
	if err != nil {
		log.Fatalf("failed starting backend: %v", err)
	}
	for kind, list := range files {
		for _, path := range *list {
			if err := bundle.Library.Load(kind, path); err != nil {
				log.Printf("failed loading %s: %v", path, err)
			}
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	go bundle.Library.Run(ctx)

	w := app.NewWindow(
		app.Title(cfg.Window.Title),
		app.Size(unit.Dp(cfg.Window.Width), unit.Dp(cfg.Window.Height)),
	)
	go func() {
		defer cancel()
		err := loop(ctx, w, bundle, cfg)
		if cerr := bundle.Library.Close(); cerr != nil {
			log.Printf("failed closing library: %v", cerr)
		}
		if err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func loop(ctx context.Context, w *app.Window, bundle backend.Bundle, cfg config.Config) error {
	expl := explorer.NewExplorer(w)
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	ui := NewUI(backend.NewWindowState(ctx, bundle, w), expl, cfg, th)
	var ops op.Ops
	for {
		ev := w.NextEvent()
		expl.ListenEvents(ev)
		switch ev := ev.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
			ui.Layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}
