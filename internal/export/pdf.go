// Package export writes the board to PDF.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"

	"InfiniteBoard/internal/geom"
	"InfiniteBoard/internal/logx"
	"InfiniteBoard/internal/render"
	"InfiniteBoard/internal/state"
	"InfiniteBoard/internal/viewport"

	"github.com/jung-kurt/gofpdf"
)

// Options configures a PDF export.
type Options struct {
	Render render.Options

	// Resolution is the number of raster pixels per world unit.
	Resolution float64
	// Margin is the world-space padding around the content.
	Margin float64
	// MaxPixels bounds the longer side of the embedded raster.
	MaxPixels int

	Title   string
	Session string
}

// DefaultOptions returns the export settings used by the toolbar.
func DefaultOptions() Options {
	return Options{
		Render:     render.DefaultOptions(),
		Resolution: 2,
		Margin:     20,
		MaxPixels:  4096,
		Title:      "InfiniteBoard",
	}
}

// emptyArea is exported when the board holds nothing.
var emptyArea = geom.Area{Width: 800, Height: 600}

// ContentArea returns the world-space area covering all objects, padded by
// margin. An empty board yields a fixed page-sized area.
func ContentArea(objects []state.Object, margin float64) geom.Area {
	var area geom.Area
	found := false
	for _, obj := range objects {
		if !state.ValidBody(obj.Body) {
			continue
		}
		b := obj.Body.Bounds().Expand(obj.Style.StrokeWidth)
		if !found {
			area, found = b, true
		} else {
			area = area.Union(b)
		}
	}
	if !found {
		return emptyArea
	}
	return area.Expand(margin)
}

// Raster renders objects into an image framing area at the given resolution.
func Raster(objects []state.Object, area geom.Area, opts Options) *image.RGBA {
	res := opts.Resolution
	if !(res > 0) {
		res = 1
	}
	if longest := math.Max(area.Width, area.Height) * res; opts.MaxPixels > 0 && longest > float64(opts.MaxPixels) {
		res *= float64(opts.MaxPixels) / longest
	}
	w := max(1, int(math.Ceil(area.Width*res-1e-9)))
	h := max(1, int(math.Ceil(area.Height*res-1e-9)))

	view := viewport.Viewport{Scale: res, TranslateX: -area.X * res, TranslateY: -area.Y * res}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	render.New(opts.Render).Render(img, render.Scene{View: view, Objects: objects})
	return img
}

// PDF writes a one-page document showing all objects to w.
func PDF(w io.Writer, objects []state.Object, opts Options) error {
	area := ContentArea(objects, opts.Margin)
	img := Raster(objects, area, opts)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode page image: %w", err)
	}

	orientation := "P"
	if area.Width > area.Height {
		orientation = "L"
	}
	pdf := gofpdf.New(orientation, "mm", "A4", "")
	pdf.SetTitle(opts.Title, true)
	pdf.SetCreator("InfiniteBoard", true)
	if opts.Session != "" {
		pdf.SetSubject("session "+opts.Session, true)
	}
	pdf.AddPage()

	imgOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("board", imgOpts, &buf)

	pageW, pageH := pdf.GetPageSize()
	left, top, right, bottom := pdf.GetMargins()
	boxW, boxH := pageW-left-right, pageH-top-bottom
	fit := math.Min(boxW/area.Width, boxH/area.Height)
	iw, ih := area.Width*fit, area.Height*fit
	pdf.ImageOptions("board", left+(boxW-iw)/2, top+(boxH-ih)/2, iw, ih, false, imgOpts, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	logx.Logger().Info("[EXPORT] pdf written", "objects", len(objects), "width", img.Rect.Dx(), "height", img.Rect.Dy())
	return nil
}

// PDFFile writes the document to path.
func PDFFile(path string, objects []state.Object, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := PDF(f, objects, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	logx.Logger().Info("[EXPORT] saved", "path", path)
	return nil
}
