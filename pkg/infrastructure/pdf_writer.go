package infrastructure

import (
	"bytes"
	"strconv"
	"time"

	"github.com/IdiotCoffee/jobforge/internal/domain"
	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

// PDFWriter lays encoded page images out on PDF pages and restores the
// clickable link regions on top of them.
type PDFWriter struct {
	title   string
	creator string
	now     func() time.Time
}

func NewPDFWriter(title string) *PDFWriter {
	return &PDFWriter{title: title, creator: "jobforge", now: time.Now}
}

// WriteDocument expects one JPEG per page; a nil entry is a blank page.
func (w *PDFWriter) WriteDocument(a domain.ExportArtifact, pages [][]byte) ([]byte, error) {
	if len(pages) != len(a.Pages) {
		return nil, errors.Errorf("got %d encoded pages for %d pages", len(pages), len(a.Pages))
	}
	f := a.Format
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: f.WidthMM, Ht: f.HeightMM},
	})
	pdf.SetMargins(f.MarginMM, f.MarginMM, f.MarginMM)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(w.title, true)
	pdf.SetCreator(w.creator, true)
	pdf.SetCreationDate(w.now())

	scale := a.Scale()
	opts := fpdf.ImageOptions{ImageType: "JPG", ReadDpi: false}
	for i, p := range a.Pages {
		pdf.AddPage()
		if pages[i] == nil {
			continue
		}
		name := "page-" + strconv.Itoa(i+1)
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(pages[i]))
		pdf.ImageOptions(name, f.MarginMM, f.MarginMM, f.PrintableWidth(), float64(p.Band.Height)*scale, false, opts, 0, "")
		for _, l := range p.Links {
			x, y, lw, lh := a.Place(l.Rect)
			pdf.LinkString(x, y, lw, lh, l.URL)
		}
		if pdf.Err() {
			return nil, errors.Wrapf(pdf.Error(), "page %d", i+1)
		}
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, errors.Wrap(err, "write pdf")
	}
	return out.Bytes(), nil
}
