package ui

import (
	"fmt"
	"image/color"
	"strconv"

	"InfiniteBoard/internal/board"
	"InfiniteBoard/internal/export"
	"InfiniteBoard/internal/logx"
	"InfiniteBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

var palette = []color.NRGBA{
	{A: 0xff},                            // black
	{R: 0xff, A: 0xff},                   // red
	{G: 0xff, A: 0xff},                   // green
	{B: 0xff, A: 0xff},                   // blue
	{R: 0xff, G: 0xff, A: 0xff},          // yellow
	{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, // white
}

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    color.NRGBA
	OnTapped func(color.NRGBA)
}

func newColorSwatch(c color.NRGBA, tapped func(color.NRGBA)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// NewToolbar returns the tool, color and size controls for b.
func NewToolbar(b *board.Board, win fyne.Window) fyne.CanvasObject {
	settings := b.Settings()
	store := b.Store()

	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), func() { settings.SetTool(state.ToolDraw) }),
		widget.NewToolbarAction(theme.ContentClearIcon(), func() { settings.SetTool(state.ToolErase) }),
		widget.NewToolbarAction(theme.ViewFullScreenIcon(), func() { settings.SetTool(state.ToolShape) }),
		widget.NewToolbarAction(theme.DocumentIcon(), func() { settings.SetTool(state.ToolText) }),
		widget.NewToolbarAction(theme.FileImageIcon(), func() { settings.SetTool(state.ToolImage) }),
		widget.NewToolbarAction(theme.NavigateNextIcon(), func() { settings.SetTool(state.ToolSelect) }),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ZoomFitIcon(), b.ResetView),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() { exportDialog(b, win) }),
		widget.NewToolbarAction(theme.DeleteIcon(), func() {
			dialog.ShowConfirm("Clear board", "Remove every object from the board?", func(ok bool) {
				if ok {
					store.Clear()
				}
			}, win)
		}),
	)

	// --- Color Palette ---
	colorBox := container.NewHBox()
	for _, c := range palette {
		colorBox.Add(newColorSwatch(c, settings.SetStrokeColor))
	}

	// --- Stroke Width Slider ---
	brush := widget.NewSlider(1.0, 50.0)
	brush.SetValue(settings.BrushSize())
	brush.OnChanged = settings.SetBrushSize
	brushBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), brush)

	opacity := widget.NewSlider(0, 1)
	opacity.Step = 0.05
	opacity.SetValue(settings.Opacity())
	opacity.OnChanged = settings.SetOpacity
	opacityBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(100, 35)), opacity)

	shapes := widget.NewSelect([]string{
		string(state.ShapeRectangle), string(state.ShapeCircle),
		string(state.ShapeEllipse), string(state.ShapePolygon),
	}, func(s string) { settings.SetShapeType(state.ShapeType(s)) })
	shapes.SetSelected(string(settings.ShapeType()))

	fontSize := widget.NewEntry()
	fontSize.SetText(strconv.FormatFloat(settings.FontSize(), 'f', -1, 64))
	fontSize.OnChanged = func(s string) {
		if v, err := strconv.ParseFloat(s, 64); err == nil && v > 0 {
			settings.SetFontSize(v)
		}
	}

	count := widget.NewLabel("")
	updateCount := func() { count.SetText(fmt.Sprintf("Objects: %d", store.Len())) }
	updateCount()
	store.Subscribe(updateCount)

	// --- Assemble everything ---
	return container.NewHBox(
		widget.NewLabel("Tool:"),
		tb,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		brushBox,
		widget.NewLabel("Opacity:"),
		opacityBox,
		widget.NewSeparator(),
		shapes,
		widget.NewLabel("Font:"),
		fontSize,
		layout.NewSpacer(),
		count,
	)
}

func exportDialog(b *board.Board, win fyne.Window) {
	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		opts := export.DefaultOptions()
		opts.Render = b.RenderOptions()
		opts.Session = b.ID
		if err := export.PDF(writer, b.Store().List(), opts); err != nil {
			logx.Logger().Error("[EXPORT] failed", "uri", writer.URI().String(), "err", err)
			dialog.ShowError(err, win)
		}
	}, win)
	save.SetFileName("board.pdf")
	save.Show()
}
