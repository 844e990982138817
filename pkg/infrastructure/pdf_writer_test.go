package infrastructure

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"testing"
	"time"

	"github.com/IdiotCoffee/jobforge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jpegPage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 100}))
	return buf.Bytes()
}

func TestWriteDocument(t *testing.T) {
	w := NewPDFWriter("Resume")
	w.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
	a := domain.ExportArtifact{
		Format:        domain.A4,
		SourceWidth:   200,
		ContentHeight: 400,
		Pages: []domain.Page{
			{Band: domain.Band{Top: 0, Height: 271}},
			{Band: domain.Band{Top: 271, Height: 129}, Links: []domain.LinkRegion{
				{Rect: image.Rect(10, 10, 90, 20), URL: "https://example.com/ada"},
			}},
		},
	}

	out, err := w.WriteDocument(a, [][]byte{jpegPage(t, 200, 271), jpegPage(t, 200, 129)})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Contains(t, string(out), "https://example.com/ada")
}

func TestWriteDocumentBlankPage(t *testing.T) {
	a := domain.ExportArtifact{Format: domain.A4, SourceWidth: 100, Pages: []domain.Page{{}}}
	out, err := NewPDFWriter("Resume").WriteDocument(a, [][]byte{nil})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestWriteDocumentPageMismatch(t *testing.T) {
	a := domain.ExportArtifact{Format: domain.A4, SourceWidth: 100, Pages: []domain.Page{{}, {}}}
	_, err := NewPDFWriter("Resume").WriteDocument(a, [][]byte{nil})
	assert.Error(t, err)
}

func TestWriteDocumentBadImage(t *testing.T) {
	a := domain.ExportArtifact{Format: domain.A4, SourceWidth: 100, Pages: []domain.Page{{Band: domain.Band{Height: 10}}}}
	_, err := NewPDFWriter("Resume").WriteDocument(a, [][]byte{[]byte("not a jpeg")})
	assert.Error(t, err)
}

func TestSurfaceFromProbeScalesToDevicePixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1440, 3000))
	probe := probeResult{
		Found:  true,
		Height: 1200.2,
		Links: []probeRect{
			{X: 10, Y: 100, W: 50, H: 10, URL: "https://a"},
			{X: 0, Y: 0, W: 0, H: 10, URL: "https://hidden"},
		},
	}

	s := surfaceFromProbe(img, probe, 720)

	assert.Equal(t, 2401, s.ContentHeight)
	require.Len(t, s.Links, 1)
	assert.Equal(t, image.Rect(20, 200, 120, 220), s.Links[0].Rect)
}
