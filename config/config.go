// Package config loads viewer and renderer settings from a TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"

	"git.sr.ht/~whereswaldon/brainchart/chart"
	"git.sr.ht/~whereswaldon/brainchart/model"
	"git.sr.ht/~whereswaldon/brainchart/scale"
	"github.com/pelletier/go-toml/v2"
)

type Window struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// Style mirrors chart.Style with colors as hex strings.
type Style struct {
	MarginFloor    float64 `toml:"margin_floor"`
	MarginPadding  float64 `toml:"margin_padding"`
	TickLength     float64 `toml:"tick_length"`
	BorderWidth    float64 `toml:"border_width"`
	TitlePadding   float64 `toml:"title_padding"`
	LabelSize      float64 `toml:"label_size"`
	TitleSize      float64 `toml:"title_size"`
	HighlightWidth float64 `toml:"highlight_width"`
	Foreground     string  `toml:"foreground"`
	Highlight      string  `toml:"highlight"`
	Background     string  `toml:"background"`
}

type Histogram struct {
	Bins         int  `toml:"bins"`
	ShowBars     bool `toml:"show_bars"`
	ShowEnvelope bool `toml:"show_envelope"`
}

type Lines struct {
	History         int     `toml:"history"`
	Width           float64 `toml:"width"`
	HighlightNewest bool    `toml:"highlight_newest"`
}

type Matrix struct {
	Zoom       float64 `toml:"zoom"`
	ShowGrid   bool    `toml:"show_grid"`
	Triangular string  `toml:"triangular"`
	RampLow    string  `toml:"ramp_low"`
	RampMid    string  `toml:"ramp_mid"`
	RampHigh   string  `toml:"ramp_high"`
	Grid       string  `toml:"grid"`
}

// Axis configures one side. Min and Max lock the range when both are set.
type Axis struct {
	Title        string   `toml:"title"`
	Units        string   `toml:"units"`
	Hidden       bool     `toml:"hidden"`
	Min          *float64 `toml:"min"`
	Max          *float64 `toml:"max"`
	Subdivisions int      `toml:"subdivisions"`
	Decimals     *int     `toml:"decimals"`
}

type Config struct {
	Window    Window          `toml:"window"`
	Style     Style           `toml:"style"`
	Histogram Histogram       `toml:"histogram"`
	Lines     Lines           `toml:"lines"`
	Matrix    Matrix          `toml:"matrix"`
	Axes      map[string]Axis `toml:"axes"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	s := chart.DefaultStyle()
	return Config{
		Window: Window{Title: "brainchart", Width: 1024, Height: 768},
		Style: Style{
			MarginFloor:    s.MarginFloor,
			MarginPadding:  s.MarginPadding,
			TickLength:     s.TickLength,
			BorderWidth:    s.BorderWidth,
			TitlePadding:   s.TitlePadding,
			LabelSize:      s.LabelSize,
			TitleSize:      s.TitleSize,
			HighlightWidth: s.HighlightWidth,
			Foreground:     "#000000",
			Highlight:      "#ffc400",
			Background:     "#ffffff",
		},
		Histogram: Histogram{Bins: 20, ShowBars: true, ShowEnvelope: true},
		Lines:     Lines{History: model.DefaultLineHistory, Width: 1},
		Matrix: Matrix{
			Zoom:       model.DefaultMatrixZoom,
			Triangular: model.Full.String(),
			RampLow:    "#2150ad",
			RampMid:    "#f7f7f7",
			RampHigh:   "#b3172b",
			Grid:       "#404040",
		},
	}
}

// Load reads the file at path over the defaults.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed opening config: %w", err)
	}
	defer f.Close()
	c, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Decode reads TOML from r over the defaults. Unknown keys are an error.
func Decode(r io.Reader) (Config, error) {
	c := Default()
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&c); err != nil {
		var derr *toml.DecodeError
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			return Config{}, fmt.Errorf("unknown keys:\n%s", serr.String())
		}
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return Config{}, fmt.Errorf("line %d column %d: %w", row, col, err)
		}
		return Config{}, fmt.Errorf("failed decoding config: %w", err)
	}
	return c, c.Validate()
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Validate reports every invalid value in c.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d is not positive", c.Window.Width, c.Window.Height))
	}
	for _, hex := range []string{c.Style.Foreground, c.Style.Highlight, c.Style.Background, c.Matrix.Grid} {
		if _, err := model.ParseColor(hex); err != nil {
			errs = append(errs, fmt.Errorf("color %q: %w", hex, err))
		}
	}
	if _, err := c.Ramp(); err != nil {
		errs = append(errs, err)
	}
	if _, ok := model.ParseTriangularMode(c.Matrix.Triangular); !ok {
		errs = append(errs, fmt.Errorf("unknown triangular mode %q", c.Matrix.Triangular))
	}
	if c.Matrix.Zoom < 100 {
		errs = append(errs, fmt.Errorf("matrix zoom %v is below 100", c.Matrix.Zoom))
	}
	for name, a := range c.Axes {
		if _, ok := axisLocation(name); !ok {
			errs = append(errs, fmt.Errorf("unknown axis %q", name))
		}
		if _, ok := model.ParseAxisUnits(a.Units); !ok {
			errs = append(errs, fmt.Errorf("axis %s: unknown units %q", name, a.Units))
		}
		if a.Min != nil && a.Max != nil && *a.Min >= *a.Max {
			errs = append(errs, fmt.Errorf("axis %s: min %v is not below max %v", name, *a.Min, *a.Max))
		}
	}
	return errors.Join(errs...)
}

func axisLocation(name string) (model.AxisLocation, bool) {
	for loc := model.Left; loc <= model.Bottom; loc++ {
		if loc.String() == name {
			return loc, true
		}
	}
	return 0, false
}

// ChartStyle converts the style section. Colors that fail to parse keep
// their defaults.
func (c Config) ChartStyle() chart.Style {
	s := chart.DefaultStyle()
	s.MarginFloor = c.Style.MarginFloor
	s.MarginPadding = c.Style.MarginPadding
	s.TickLength = c.Style.TickLength
	s.BorderWidth = c.Style.BorderWidth
	s.TitlePadding = c.Style.TitlePadding
	s.LabelSize = c.Style.LabelSize
	s.TitleSize = c.Style.TitleSize
	s.HighlightWidth = c.Style.HighlightWidth
	if fg, err := model.ParseColor(c.Style.Foreground); err == nil {
		s.Foreground = fg
	}
	if hl, err := model.ParseColor(c.Style.Highlight); err == nil {
		s.Highlight = hl
	}
	return s
}

// Background returns the clear color.
func (c Config) Background() color.NRGBA {
	bg, err := model.ParseColor(c.Style.Background)
	if err != nil {
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return bg
}

// Ramp returns the matrix color ramp.
func (c Config) Ramp() (model.Ramp, error) {
	r, err := model.RampFromHex(c.Matrix.RampLow, c.Matrix.RampMid, c.Matrix.RampHigh)
	if err != nil {
		return model.Ramp{}, fmt.Errorf("matrix ramp: %w", err)
	}
	return r, nil
}

// GridColor returns the matrix grid color.
func (c Config) GridColor() color.NRGBA {
	g, _ := model.ParseColor(c.Matrix.Grid)
	return g
}

// Palette returns the histogram palette mapping.
func (c Config) Palette() model.PaletteMapping {
	p := model.DefaultPaletteMapping()
	p.ShowBars = c.Histogram.ShowBars
	p.ShowEnvelope = c.Histogram.ShowEnvelope
	return p
}

// Apply copies the overlay set and axis settings onto set.
func (c Config) Apply(set *model.OverlaySet) {
	set.MatrixZoom = c.Matrix.Zoom
	set.ShowMatrixGrid = c.Matrix.ShowGrid
	set.HighlightNewest = c.Lines.HighlightNewest
	if mode, ok := model.ParseTriangularMode(c.Matrix.Triangular); ok {
		for _, o := range set.Overlays() {
			o.TriangularMode = mode
		}
	}
	for name, ac := range c.Axes {
		loc, ok := axisLocation(name)
		if !ok {
			continue
		}
		a := set.Axis(loc)
		a.Title = ac.Title
		a.Displayed = !ac.Hidden
		if u, ok := model.ParseAxisUnits(ac.Units); ok {
			a.Units = u
		}
		if ac.Min != nil && ac.Max != nil {
			a.LockRange(*ac.Min, *ac.Max)
		}
		if ac.Subdivisions > 0 {
			a.Scale.SubdivisionMode = scale.SubdivisionsUser
			a.Scale.Subdivisions = ac.Subdivisions
		}
		if ac.Decimals != nil {
			a.Scale.Decimals = *ac.Decimals
		}
	}
}

// ApplySource copies the per-source settings onto src.
func (c Config) ApplySource(src *model.Source) {
	switch {
	case !src.Valid():
	case src.Kind == model.Histogram:
		src.Histogram.SetPalette(c.Palette())
	case src.Kind == model.LineSeries:
		if c.Lines.Width > 0 {
			src.LineSeries.SetLineWidth(c.Lines.Width)
		}
	case src.Kind == model.Matrix:
		if r, err := c.Ramp(); err == nil {
			src.Matrix.SetRamp(r, c.GridColor())
		}
	}
}
