package usecase

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/IdiotCoffee/jobforge/internal/domain"
	"github.com/pkg/errors"
)

// Paginate slices a rendered surface into page-sized bands and re-projects
// its link regions onto the pages. Bands are consecutive and cover
// [0, contentHeight) exactly; a surface without content yields one blank
// page.
func Paginate(s domain.Surface, f domain.PageFormat) (domain.ExportArtifact, error) {
	if s.Image == nil {
		return domain.ExportArtifact{}, ErrRenderTargetMissing
	}
	b := s.Image.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return domain.ExportArtifact{}, ErrEmptySurface
	}
	bandHeight := f.BandHeight(b.Dx())
	if bandHeight <= 0 {
		return domain.ExportArtifact{}, errors.Errorf("page format %q has no printable area", f.Name)
	}

	height := EffectiveContentHeight(s)
	art := domain.ExportArtifact{Format: f, SourceWidth: b.Dx(), ContentHeight: height}
	if height == 0 {
		art.Pages = []domain.Page{{Band: domain.Band{}}}
		return art, nil
	}

	for top := 0; top < height; top += bandHeight {
		h := bandHeight
		if rest := height - top; rest < h {
			h = rest
		}
		band := domain.Band{Top: top, Height: h}
		art.Pages = append(art.Pages, domain.Page{Band: band, Image: cropBand(s.Image, band)})
	}

	for _, l := range s.Links {
		top := l.Rect.Min.Y - b.Min.Y
		if top < 0 || top >= height {
			continue
		}
		n := top / bandHeight
		p := &art.Pages[n]
		r := l.Rect.Sub(image.Pt(b.Min.X, b.Min.Y+p.Band.Top))
		p.Links = append(p.Links, domain.LinkRegion{Rect: r, URL: l.URL})
	}
	return art, nil
}

// EffectiveContentHeight prefers the height reported by the renderer and
// otherwise scans upwards for the last row holding a non-transparent pixel.
// Opaque images therefore keep their full height.
func EffectiveContentHeight(s domain.Surface) int {
	b := s.Image.Bounds()
	if s.ContentHeight > 0 {
		if s.ContentHeight > b.Dy() {
			return b.Dy()
		}
		return s.ContentHeight
	}
	for y := b.Max.Y - 1; y >= b.Min.Y; y-- {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := s.Image.At(x, y).RGBA(); a > 0 {
				return y - b.Min.Y + 1
			}
		}
	}
	return 0
}

// cropBand copies a band onto an opaque white canvas so transparent pixels
// do not turn black once encoded as JPEG.
func cropBand(src image.Image, band domain.Band) image.Image {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), band.Height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, image.Pt(b.Min.X, b.Min.Y+band.Top), draw.Over)
	return dst
}
