package domain

import (
	"image"
	"math"
	"strings"
)

// LinkRegion is a clickable rectangle in the coordinate space of the image
// it belongs to.
type LinkRegion struct {
	Rect image.Rectangle `json:"rect"`
	URL  string          `json:"url"`
}

// Surface is a rendered document: a raster at a fixed width, the link
// regions found while rendering and, when the renderer knows it, the height
// of the actual content in source pixels.
type Surface struct {
	Image         image.Image
	Links         []LinkRegion
	ContentHeight int
}

// PageFormat describes an output page in millimetres.
type PageFormat struct {
	Name     string  `yaml:"name" json:"name"`
	WidthMM  float64 `yaml:"width_mm" json:"widthMm"`
	HeightMM float64 `yaml:"height_mm" json:"heightMm"`
	MarginMM float64 `yaml:"margin_mm" json:"marginMm"`
}

var (
	A4     = PageFormat{Name: "a4", WidthMM: 210, HeightMM: 297, MarginMM: 10}
	Letter = PageFormat{Name: "letter", WidthMM: 215.9, HeightMM: 279.4, MarginMM: 10}
)

// PageFormatByName resolves "a4" or "letter" (case-insensitive).
func PageFormatByName(name string) (PageFormat, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "a4":
		return A4, true
	case "letter":
		return Letter, true
	}
	return PageFormat{}, false
}

// WithMargin returns a copy of f with a different uniform margin.
func (f PageFormat) WithMargin(mm float64) PageFormat {
	f.MarginMM = mm
	return f
}

func (f PageFormat) PrintableWidth() float64  { return f.WidthMM - 2*f.MarginMM }
func (f PageFormat) PrintableHeight() float64 { return f.HeightMM - 2*f.MarginMM }

// WidthPixels is the printable width in CSS pixels (96 dpi).
func (f PageFormat) WidthPixels() int {
	return int(math.Round(f.PrintableWidth() / 25.4 * 96))
}

// BandHeight is the printable page height expressed in source pixels of a
// surface that is sourceWidth pixels wide.
func (f PageFormat) BandHeight(sourceWidth int) int {
	if sourceWidth <= 0 || f.PrintableWidth() <= 0 {
		return 0
	}
	h := int(math.Floor(f.PrintableHeight() * float64(sourceWidth) / f.PrintableWidth()))
	if h < 1 {
		h = 1
	}
	return h
}

// Band is a horizontal slice [Top, Top+Height) of a surface.
type Band struct {
	Top    int `json:"top"`
	Height int `json:"height"`
}

func (b Band) Bottom() int { return b.Top + b.Height }

// Contains reports whether source row y falls inside the band.
func (b Band) Contains(y int) bool { return y >= b.Top && y < b.Bottom() }

// Page is one output page. Image is nil for the blank page emitted for a
// surface without content; Links are relative to the band origin.
type Page struct {
	Band  Band
	Image image.Image
	Links []LinkRegion
}

type ExportArtifact struct {
	Format        PageFormat
	SourceWidth   int
	ContentHeight int
	Pages         []Page
}

// Scale is the number of millimetres per source pixel.
func (a ExportArtifact) Scale() float64 {
	if a.SourceWidth <= 0 {
		return 0
	}
	return a.Format.PrintableWidth() / float64(a.SourceWidth)
}

// Place maps a rectangle in page-local source pixels to page millimetres.
func (a ExportArtifact) Place(r image.Rectangle) (x, y, w, h float64) {
	s := a.Scale()
	return a.Format.MarginMM + float64(r.Min.X)*s,
		a.Format.MarginMM + float64(r.Min.Y)*s,
		float64(r.Dx()) * s,
		float64(r.Dy()) * s
}

// Export is the file handed to the user.
type Export struct {
	FileName    string
	ContentType string
	Data        []byte
	Pages       int
}
