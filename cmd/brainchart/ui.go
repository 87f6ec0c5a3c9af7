package main

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"strings"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"git.sr.ht/~whereswaldon/brainchart/backend"
	"git.sr.ht/~whereswaldon/brainchart/config"
	"git.sr.ht/~whereswaldon/brainchart/model"
	"golang.org/x/exp/shiny/materialdesign/icons"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

var openIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.FileFolderOpen)
	return icon
}()

var errorColor = color.NRGBA{R: 150, A: 255}

var chartKinds = []model.ChartKind{model.Histogram, model.LineSeries, model.Matrix}

// UI is responsible for holding the state of and drawing the top-level UI.
type UI struct {
	ws   backend.WindowState
	expl *explorer.Explorer
	th   *material.Theme

	views    map[model.ChartKind]*ChartView
	tab      widget.Enum
	openBtn  widget.Clickable
	startBtn widget.Clickable

	snapshots  *stream.Stream[backend.Snapshot]
	snapshot   backend.Snapshot
	generation uint64
}

func NewUI(ws backend.WindowState, expl *explorer.Explorer, cfg config.Config, th *material.Theme) *UI {
	ui := &UI{
		ws:        ws,
		th:        th,
		expl:      expl,
		views:     make(map[model.ChartKind]*ChartView, len(chartKinds)),
		tab:       widget.Enum{Value: model.LineSeries.String()},
		snapshots: stream.New(ws.Controller, ws.Bundle.Library.Snapshots),
	}
	for _, kind := range chartKinds {
		ui.views[kind] = NewChartView(kind, cfg, th.Shaper)
	}
	return ui
}

func (ui *UI) kind() model.ChartKind {
	kind, _ := model.ParseChartKind(ui.tab.Value)
	return kind
}

// Update the state of the UI from the backend and from input.
func (ui *UI) Update(gtx C) {
	ui.snapshots.ReadInto(gtx, &ui.snapshot, backend.Snapshot{})
	if ui.snapshot.Generation != ui.generation {
		ui.generation = ui.snapshot.Generation
		for kind, view := range ui.views {
			view.SetSources(ui.snapshot.Sources(kind))
		}
	}
	ui.tab.Update(gtx)
	if ui.openBtn.Clicked(gtx) || ui.startBtn.Clicked(gtx) {
		go ui.open(ui.kind())
	}
}

// open asks the user for a data file and loads it as a source of kind.
func (ui *UI) open(kind model.ChartKind) {
	f, err := ui.expl.ChooseFile()
	if err != nil {
		log.Printf("failed choosing file: %v", err)
		return
	}
	defer f.Close()
	osFile, ok := f.(*os.File)
	if !ok {
		log.Printf("chosen file is not on the local filesystem")
		return
	}
	if err := ui.ws.Bundle.Library.Load(kind, osFile.Name()); err != nil {
		log.Printf("failed loading %s: %v", osFile.Name(), err)
	}
}

type TabStyle struct {
	state  *widget.Enum
	label  material.LabelStyle
	border widget.Border
	inset  layout.Inset
	value  string
	fill   color.NRGBA
}

func Tab(th *material.Theme, state *widget.Enum, value, display string) TabStyle {
	selected := state.Value == value
	ts := TabStyle{
		state: state,
		label: material.Body1(th, display),
		inset: layout.UniformInset(2),
		border: widget.Border{
			Width: 2,
			Color: th.ContrastBg,
		},
		value: value,
	}
	ts.label.Alignment = text.Middle
	if selected {
		ts.label.Color = th.ContrastFg
		ts.fill = th.ContrastBg
	}
	return ts
}

func (t TabStyle) Layout(gtx C) D {
	return t.inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return t.border.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return t.inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return t.state.Layout(gtx, t.value, func(gtx layout.Context) layout.Dimensions {
					return layout.Background{}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						paint.FillShape(gtx.Ops, t.fill, clip.Rect{Max: gtx.Constraints.Min}.Op())
						return D{Size: gtx.Constraints.Min}
					}, t.label.Layout)
				})
			})
		})
	})
}

func (ui *UI) layoutTabs(gtx C) D {
	children := make([]layout.FlexChild, 0, len(chartKinds)+1)
	for _, kind := range chartKinds {
		n := len(ui.snapshot.Sources(kind))
		display := fmt.Sprintf("%s (%d)", kind, n)
		children = append(children, layout.Flexed(1, Tab(ui.th, &ui.tab, kind.String(), display).Layout))
	}
	children = append(children, layout.Rigid(material.IconButton(ui.th, &ui.openBtn, openIcon, "Open data file").Layout))
	return layout.Flex{Alignment: layout.Middle}.Layout(gtx, children...)
}

func (ui *UI) layoutErrors(gtx C) D {
	errs := ui.snapshot.Errors()
	if len(errs) == 0 {
		return D{}
	}
	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		lines = append(lines, fmt.Sprintf("%s: %v", e.Path, e.Err))
	}
	l := material.Body2(ui.th, strings.Join(lines, "\n"))
	l.Color = errorColor
	return l.Layout(gtx)
}

func (ui *UI) layoutStartScreen(gtx C) D {
	l := material.Body1(ui.th, "No data yet. Open a CSV file for the selected chart kind.")
	return layout.Flex{
		Axis:      layout.Vertical,
		Alignment: layout.Middle,
		Spacing:   layout.SpaceAround,
	}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min = image.Point{}
			return l.Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Button(ui.th, &ui.startBtn, "Open Data File").Layout(gtx)
		}),
	)
}

// Layout the UI into the provided context.
func (ui *UI) Layout(gtx C) D {
	ui.Update(gtx)
	return layout.Flex{
		Axis: layout.Vertical,
	}.Layout(gtx,
		layout.Rigid(ui.layoutTabs),
		layout.Rigid(ui.layoutErrors),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			kind := ui.kind()
			if len(ui.snapshot.Sources(kind)) == 0 {
				return ui.layoutStartScreen(gtx)
			}
			return ui.views[kind].Layout(gtx, ui.th)
		}),
	)
}
