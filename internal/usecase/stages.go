package usecase

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"io"
	"time"

	"github.com/IdiotCoffee/jobforge/internal/domain"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Stage names one step of an export. A failure in any stage aborts the
// whole export.
type Stage string

const (
	StageRender    Stage = "render"
	StageSettle    Stage = "settle"
	StageRasterize Stage = "rasterize"
	StageSlice     Stage = "slice"
	StageEncode    Stage = "encode"
	StageAssemble  Stage = "assemble"
)

// HTMLRenderer turns the markdown document into a standalone HTML page.
type HTMLRenderer interface {
	RenderHTML(markdown string) (string, error)
}

// SurfaceRenderer rasterises an HTML page at a fixed CSS width once its
// layout has settled.
type SurfaceRenderer interface {
	RenderSurface(ctx context.Context, html string, widthPx int) (domain.Surface, error)
}

// DocumentWriter assembles encoded page images into the downloadable file.
type DocumentWriter interface {
	WriteDocument(a domain.ExportArtifact, pages [][]byte) ([]byte, error)
}

const DefaultExportFileName = "resume.pdf"

type Exporter struct {
	html     HTMLRenderer
	surfaces SurfaceRenderer
	writer   DocumentWriter
	format   domain.PageFormat
	fileName string
	encode   func(w io.Writer, img image.Image) error
}

func NewExporter(h HTMLRenderer, s SurfaceRenderer, w DocumentWriter, format domain.PageFormat, fileName string) *Exporter {
	if fileName == "" {
		fileName = DefaultExportFileName
	}
	return &Exporter{
		html:     h,
		surfaces: s,
		writer:   w,
		format:   format,
		fileName: fileName,
		encode: func(w io.Writer, img image.Image) error {
			return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
		},
	}
}

func (e *Exporter) FileName() string { return e.fileName }

// Export runs render → settle → rasterize → slice → encode → assemble for text.
func (e *Exporter) Export(ctx context.Context, text string) (*domain.Export, error) {
	started := time.Now()

	page, err := e.html.RenderHTML(text)
	if err != nil {
		return nil, &ExportError{Stage: StageRender, Err: err}
	}

	surface, err := e.surfaces.RenderSurface(ctx, page, e.format.WidthPixels())
	if err != nil {
		stage := StageRasterize
		if errors.Is(err, ErrLayoutNotSettled) {
			stage = StageSettle
		}
		return nil, &ExportError{Stage: stage, Err: err}
	}

	art, err := Paginate(surface, e.format)
	if err != nil {
		return nil, &ExportError{Stage: StageSlice, Err: err}
	}

	encoded, err := e.encodePages(ctx, art)
	if err != nil {
		return nil, &ExportError{Stage: StageEncode, Err: err}
	}

	data, err := e.writer.WriteDocument(art, encoded)
	if err != nil {
		return nil, &ExportError{Stage: StageAssemble, Err: err}
	}

	log.Info().
		Str("component", "exporter").
		Int("pages", len(art.Pages)).
		Int("content_height", art.ContentHeight).
		Int("bytes", len(data)).
		Dur("took", time.Since(started)).
		Msg("export completed")

	return &domain.Export{
		FileName:    e.fileName,
		ContentType: "application/pdf",
		Data:        data,
		Pages:       len(art.Pages),
	}, nil
}

// encodePages JPEG-encodes every page concurrently; the first failure wins
// and the result is discarded.
func (e *Exporter) encodePages(ctx context.Context, art domain.ExportArtifact) ([][]byte, error) {
	out := make([][]byte, len(art.Pages))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range art.Pages {
		if p.Image == nil {
			continue
		}
		i, img := i, p.Image
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := e.encode(&buf, img); err != nil {
				return errors.Wrapf(err, "encode page %d", i+1)
			}
			out[i] = buf.Bytes()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
