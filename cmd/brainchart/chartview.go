package main

import (
	"image"
	"log"
	"slices"

	"gioui.org/f32"
	"gioui.org/gesture"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
	"git.sr.ht/~whereswaldon/brainchart/chart"
	"git.sr.ht/~whereswaldon/brainchart/config"
	"git.sr.ht/~whereswaldon/brainchart/model"
	"git.sr.ht/~whereswaldon/brainchart/primitive"
	"git.sr.ht/~whereswaldon/brainchart/render/gioui"
	"git.sr.ht/~whereswaldon/brainchart/selection"
	"golang.org/x/exp/shiny/materialdesign/icons"
)

// overlaysPerChart is how many layers each chart view offers.
const overlaysPerChart = 4

// zoomStep is the factor applied by one click of the zoom buttons.
const zoomStep = 1.25

var zoomInIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.ActionZoomIn)
	return icon
}()

var zoomOutIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.ActionZoomOut)
	return icon
}()

type overlayRow struct {
	enabled widget.Bool
	side    widget.Clickable
	source  widget.Clickable
}

// ChartView shows one overlay set and lets the user pick sources, axes and
// display options for it. Clicking the plot identifies the item under the
// pointer. On matrices a secondary click also toggles the highlight of the
// cell's row and column.
type ChartView struct {
	kind     model.ChartKind
	cfg      config.Config
	set      *model.OverlaySet
	canvas   *gioui.Canvas
	renderer *chart.Renderer
	sel      *selection.Manager

	rows       []overlayRow
	grid       widget.Bool
	newest     widget.Bool
	zoomInBtn  widget.Clickable
	zoomOutBtn widget.Clickable
	modeBtn    widget.Clickable
	zoom       gesture.Scroll
	keyTable   component.GridState

	pressed bool
	pressAt f32.Point
	buttons pointer.Buttons
	hit     string
}

func NewChartView(kind model.ChartKind, cfg config.Config, shaper *text.Shaper) *ChartView {
	set := model.NewOverlaySet(kind, overlaysPerChart)
	cfg.Apply(set)
	canvas := gioui.New(shaper)
	sel := selection.NewManager()
	c := &ChartView{
		kind:     kind,
		cfg:      cfg,
		set:      set,
		canvas:   canvas,
		sel:      sel,
		renderer: chart.NewRenderer(canvas, canvas, sel, cfg.ChartStyle()),
		rows:     make([]overlayRow, overlaysPerChart),
	}
	for i, o := range set.Overlays() {
		c.rows[i].enabled.Value = o.Enabled
	}
	c.grid.Value = set.ShowMatrixGrid
	c.newest.Value = set.HighlightNewest
	return c
}

// SetSources replaces the candidate sources of the chart. Sources that are
// new get the first free overlay.
func (c *ChartView) SetSources(srcs []*model.Source) {
	for _, old := range slices.Clone(c.set.Sources()) {
		name := old.Name()
		if slices.ContainsFunc(srcs, func(s *model.Source) bool { return s.Name() == name }) {
			continue
		}
		c.set.RemoveSource(name)
		for i, o := range c.set.Overlays() {
			if o.SourceName == name {
				o.SourceName = ""
				o.Enabled = false
				c.rows[i].enabled.Value = false
			}
		}
	}
	for _, src := range srcs {
		c.cfg.ApplySource(src)
		if err := c.set.AddSource(src); err != nil {
			log.Printf("failed adding source: %v", err)
			continue
		}
		if c.shown(src.Name()) {
			continue
		}
		for i, o := range c.set.Overlays() {
			if o.SourceName == "" {
				o.SourceName = src.Name()
				o.Enabled = true
				c.rows[i].enabled.Value = true
				break
			}
		}
	}
	c.set.RefreshSelection()
}

func (c *ChartView) shown(name string) bool {
	for _, o := range c.set.Overlays() {
		if o.SourceName == name {
			return true
		}
	}
	return false
}

// nextSource returns the source after name in load order, wrapping around.
func (c *ChartView) nextSource(name string) string {
	srcs := c.set.Sources()
	if len(srcs) == 0 {
		return ""
	}
	i := slices.IndexFunc(srcs, func(s *model.Source) bool { return s.Name() == name })
	return srcs[(i+1)%len(srcs)].Name()
}

// Hit describes the item found by the last click.
func (c *ChartView) Hit() string {
	return c.hit
}

func (c *ChartView) Update(gtx C) {
	changed := false
	if c.grid.Update(gtx) {
		c.set.ShowMatrixGrid = c.grid.Value
	}
	if c.newest.Update(gtx) {
		c.set.HighlightNewest = c.newest.Value
	}
	if c.zoomInBtn.Clicked(gtx) {
		c.set.MatrixZoom *= zoomStep
	}
	if c.zoomOutBtn.Clicked(gtx) {
		c.set.MatrixZoom = max(c.set.MatrixZoom/zoomStep, model.DefaultMatrixZoom)
	}
	if c.modeBtn.Clicked(gtx) {
		next := (c.set.Overlay(0).TriangularMode + 1) % (model.UpperNoDiagonal + 1)
		for _, o := range c.set.Overlays() {
			o.TriangularMode = next
		}
	}
	for i := range c.rows {
		row := &c.rows[i]
		o := c.set.Overlay(i)
		if row.enabled.Update(gtx) {
			o.Enabled = row.enabled.Value
			changed = true
		}
		if row.side.Clicked(gtx) && c.kind != model.Matrix {
			if o.VerticalAxis() == model.Left {
				o.SetVerticalAxis(model.Right)
			} else {
				o.SetVerticalAxis(model.Left)
			}
			changed = true
		}
		if row.source.Clicked(gtx) {
			o.SourceName = c.nextSource(o.SourceName)
			changed = true
		}
	}
	if changed {
		c.set.RefreshSelection()
	}
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: c,
			Kinds:  pointer.Press,
		})
		if !ok {
			break
		}
		if ev, ok := ev.(pointer.Event); ok && ev.Kind == pointer.Press {
			c.pressed = true
			c.pressAt = ev.Position
			c.buttons = ev.Buttons
		}
	}
}

func (c *ChartView) Layout(gtx C, th *material.Theme) D {
	c.Update(gtx)
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Flexed(1, c.layoutPlot),
		layout.Rigid(func(gtx C) D {
			return c.layoutToolbar(gtx, th)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Max.Y = min(gtx.Constraints.Max.Y, gtx.Sp(20)*(overlaysPerChart+1)+gtx.Dp(10))
			return c.layoutControls(gtx, th)
		}),
	)
}

func (c *ChartView) layoutPlot(gtx C) D {
	size := gtx.Constraints.Max
	if c.kind == model.Matrix {
		dist := c.zoom.Update(gtx.Metric, gtx.Source, gtx.Now, gesture.Vertical, image.Rect(0, -1e6, 0, 1e6))
		if dist != 0 {
			proportion := 1 - float64(dist)/float64(size.Y)
			c.set.MatrixZoom = max(c.set.MatrixZoom*proportion, model.DefaultMatrixZoom)
		}
	}
	gtx.Constraints = layout.Exact(size)
	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, c)
	if c.kind == model.Matrix {
		c.zoom.Add(gtx.Ops)
	}
	paint.Fill(gtx.Ops, c.cfg.Background())

	c.canvas.Begin(gtx)
	vp := c.canvas.Viewport()
	if c.pressed {
		c.pressed = false
		c.identify(vp)
	}
	c.canvas.DrawTitles(c.renderer.Draw(chart.Frame{Set: c.set, Viewport: vp}))
	return D{Size: size}
}

// identify runs a hit-test pass at the last press. Gio positions have their
// origin at the top left.
func (c *ChartView) identify(vp primitive.Viewport) {
	c.sel.Reset()
	c.renderer.Draw(chart.Frame{
		Set:      c.set,
		Viewport: vp,
		Identify: true,
		MouseX:   float64(c.pressAt.X),
		MouseY:   vp.H - float64(c.pressAt.Y),
	})
	hit, ok := c.sel.Hit(c.kind)
	if !ok {
		c.hit = ""
		return
	}
	c.hit = hit
	log.Printf("identified %v: %s", c.kind, hit)
	if c.kind == model.Matrix && c.buttons == pointer.ButtonSecondary {
		m := c.sel.Matrix
		o := c.set.Overlay(m.Overlay)
		o.ToggleRow(m.Row)
		o.ToggleColumn(m.Column)
	}
}

func (c *ChartView) layoutToolbar(gtx C, th *material.Theme) D {
	children := []layout.FlexChild{}
	switch c.kind {
	case model.LineSeries:
		children = append(children,
			layout.Rigid(material.CheckBox(th, &c.newest, "Highlight newest").Layout),
		)
	case model.Matrix:
		children = append(children,
			layout.Rigid(material.CheckBox(th, &c.grid, "Grid").Layout),
			layout.Rigid(material.IconButton(th, &c.zoomOutBtn, zoomOutIcon, "Zoom out").Layout),
			layout.Rigid(material.IconButton(th, &c.zoomInBtn, zoomInIcon, "Zoom in").Layout),
			layout.Rigid(func(gtx C) D {
				return material.Button(th, &c.modeBtn, c.set.Overlay(0).TriangularMode.String()).Layout(gtx)
			}),
		)
	}
	children = append(children, layout.Flexed(1, func(gtx C) D {
		l := material.Body2(th, c.hit)
		l.MaxLines = 1
		l.Alignment = text.End
		return l.Layout(gtx)
	}))
	return layout.UniformInset(4).Layout(gtx, func(gtx C) D {
		return layout.Flex{Alignment: layout.Middle, Spacing: layout.SpaceBetween}.Layout(gtx, children...)
	})
}

func (c *ChartView) layoutControls(gtx C, th *material.Theme) D {
	table := component.Table(th, &c.keyTable)
	table.HScrollbarStyle.Indicator.MinorWidth = 0
	table.HScrollbarStyle.Track.MinorPadding = 0
	table.VScrollbarStyle.Indicator.MinorWidth = 0
	table.VScrollbarStyle.Track.MinorPadding = 0
	enabledColWidth := gtx.Dp(70)
	sideColWidth := gtx.Dp(70)
	sourceColWidth := gtx.Constraints.Max.X - enabledColWidth - sideColWidth - gtx.Dp(table.VScrollbarStyle.Width())
	rowHeight := gtx.Sp(20)
	const (
		enabledCol = iota
		sourceCol
		sideCol
		numCols
	)
	return table.Layout(gtx, len(c.rows), numCols,
		func(axis layout.Axis, index, constraint int) int {
			if axis == layout.Vertical {
				return min(constraint, rowHeight)
			}
			var size int
			switch index {
			case enabledCol:
				size = enabledColWidth
			case sourceCol:
				size = sourceColWidth
			case sideCol:
				size = sideColWidth
			}
			return min(size, constraint)
		},
		func(gtx layout.Context, index int) layout.Dimensions {
			var l material.LabelStyle
			switch index {
			case enabledCol:
				l = material.Body1(th, "Layer")
			case sourceCol:
				l = material.Body1(th, "Source (click to change)")
				l.Alignment = text.Middle
			case sideCol:
				l = material.Body1(th, "Axis")
				l.Alignment = text.End
			default:
				l = material.Body1(th, "???")
			}
			l.Color = th.ContrastFg
			return layout.Background{}.Layout(gtx,
				func(gtx layout.Context) layout.Dimensions {
					paint.FillShape(gtx.Ops, th.ContrastBg, clip.Rect{Max: gtx.Constraints.Max}.Op())
					return D{Size: gtx.Constraints.Min}
				}, func(gtx layout.Context) layout.Dimensions {
					return l.Layout(gtx)
				},
			)
		},
		func(gtx layout.Context, row, col int) (dims layout.Dimensions) {
			defer func() {
				dims.Size = gtx.Constraints.Constrain(dims.Size)
			}()
			o := c.set.Overlay(row)
			enabled := o.Enabled
			disabledAlpha := uint8(100)
			dims = layout.UniformInset(2).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				switch col {
				case enabledCol:
					return c.rows[row].enabled.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
							sideLen := gtx.Dp(10)
							sz := image.Pt(sideLen, sideLen)
							fill := th.ContrastBg
							if !enabled {
								fill.A = disabledAlpha
							}
							paint.FillShape(gtx.Ops, fill, clip.Rect{Max: sz}.Op())
							return D{Size: sz}
						})
					})
				case sourceCol:
					name := o.SourceName
					if name == "" {
						name = "(none)"
					}
					return c.rows[row].source.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						l := material.Body2(th, name)
						l.MaxLines = 1
						if !enabled {
							l.Color.A = disabledAlpha
						}
						return l.Layout(gtx)
					})
				case sideCol:
					if c.kind == model.Matrix {
						return D{Size: gtx.Constraints.Min}
					}
					return c.rows[row].side.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						l := material.Body2(th, o.VerticalAxis().String())
						l.Alignment = text.End
						if !enabled {
							l.Color.A = disabledAlpha
						}
						return l.Layout(gtx)
					})
				default:
					return D{Size: gtx.Constraints.Max}
				}
			})
			if row&1 != 0 {
				stripe := th.ContrastBg
				stripe.A = 30
				paint.FillShape(gtx.Ops, stripe, clip.Rect{Max: gtx.Constraints.Max}.Op())
			}
			return dims
		})
}
