package infrastructure

import (
	"bytes"
	"context"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/IdiotCoffee/jobforge/internal/domain"
	"github.com/IdiotCoffee/jobforge/internal/usecase"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type ChromeOptions struct {
	ExecPath      string
	Scale         float64
	Timeout       time.Duration
	SettleTimeout time.Duration
	Format        domain.PageFormat
}

// ChromedpRenderer drives a headless Chrome per call: rasterising the
// resume for the paginator and printing cover letters to PDF.
type ChromedpRenderer struct {
	opts ChromeOptions
}

func NewChromedpRenderer(opts ChromeOptions) *ChromedpRenderer {
	if opts.Scale <= 0 {
		opts.Scale = 2
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.SettleTimeout <= 0 {
		opts.SettleTimeout = 10 * time.Second
	}
	if opts.Format.WidthMM == 0 {
		opts.Format = domain.A4
	}
	return &ChromedpRenderer{opts: opts}
}

// browser starts Chrome and returns a tab context bounded by the render
// timeout.
func (r *ChromedpRenderer) browser(ctx context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.opts.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.opts.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	timeoutCtx, cancelTimeout := context.WithTimeout(tabCtx, r.opts.Timeout)
	return timeoutCtx, func() {
		cancelTimeout()
		cancelTab()
		cancelAlloc()
	}
}

// writePage stores html in a temporary directory so Chrome can load it from
// a file URL. The returned func removes it.
func writePage(html string) (string, func(), error) {
	dir, err := os.MkdirTemp("", "jobforge-")
	if err != nil {
		return "", nil, err
	}
	path := filepath.Join(dir, "index.html")
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		os.RemoveAll(dir)
		return "", nil, err
	}
	return "file://" + path, func() { os.RemoveAll(dir) }, nil
}

type probeRect struct {
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	W   float64 `json:"w"`
	H   float64 `json:"h"`
	URL string  `json:"url"`
}

type probeResult struct {
	Found  bool        `json:"found"`
	Height float64     `json:"height"`
	Links  []probeRect `json:"links"`
}

// probeJS measures the render target and its anchors in CSS pixels relative
// to the document origin.
const probeJS = `(function () {
  var el = document.getElementById("` + RenderTargetID + `");
  if (!el) { return {found: false, height: 0, links: []}; }
  var sx = window.scrollX, sy = window.scrollY;
  var box = el.getBoundingClientRect();
  var links = [];
  el.querySelectorAll("a[href]").forEach(function (a) {
    var rects = a.getClientRects();
    if (!rects.length) { return; }
    var r = rects[0];
    links.push({x: r.left + sx, y: r.top + sy, w: r.width, h: r.height, url: a.href});
  });
  return {found: true, height: box.bottom + sy, links: links};
})()`

const settledJS = `window.__layoutSettled === true`

func (r *ChromedpRenderer) RenderSurface(ctx context.Context, html string, widthPx int) (domain.Surface, error) {
	url, cleanup, err := writePage(html)
	if err != nil {
		return domain.Surface{}, err
	}
	defer cleanup()

	cctx, cancel := r.browser(ctx)
	defer cancel()

	started := time.Now()
	err = chromedp.Run(cctx,
		emulation.SetDeviceMetricsOverride(int64(widthPx), 1123, r.opts.Scale, false),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return domain.Surface{}, errors.Wrap(err, "load page")
	}

	var settled bool
	if err := chromedp.Run(cctx, chromedp.Poll(settledJS, &settled, chromedp.WithPollingTimeout(r.opts.SettleTimeout))); err != nil {
		return domain.Surface{}, errors.Wrap(usecase.ErrLayoutNotSettled, err.Error())
	}

	var probe probeResult
	var shot []byte
	err = chromedp.Run(cctx,
		chromedp.Evaluate(probeJS, &probe),
		chromedp.FullScreenshot(&shot, 100),
	)
	if err != nil {
		return domain.Surface{}, errors.Wrap(err, "capture page")
	}
	if !probe.Found {
		return domain.Surface{}, usecase.ErrRenderTargetMissing
	}

	img, _, err := image.Decode(bytes.NewReader(shot))
	if err != nil {
		return domain.Surface{}, errors.Wrap(err, "decode screenshot")
	}
	s := surfaceFromProbe(img, probe, widthPx)

	log.Debug().
		Str("component", "chromedp").
		Int("width", img.Bounds().Dx()).
		Int("height", img.Bounds().Dy()).
		Int("content_height", s.ContentHeight).
		Int("links", len(s.Links)).
		Dur("took", time.Since(started)).
		Msg("surface rendered")
	return s, nil
}

// surfaceFromProbe scales CSS-pixel measurements to the screenshot's device
// pixels. The scale comes from the image itself, not the requested factor.
func surfaceFromProbe(img image.Image, probe probeResult, widthPx int) domain.Surface {
	b := img.Bounds()
	scale := 1.0
	if widthPx > 0 {
		scale = float64(b.Dx()) / float64(widthPx)
	}
	s := domain.Surface{
		Image:         img,
		ContentHeight: int(math.Ceil(probe.Height * scale)),
	}
	for _, l := range probe.Links {
		if l.URL == "" || l.W <= 0 || l.H <= 0 {
			continue
		}
		rect := image.Rect(
			int(math.Floor(l.X*scale)),
			int(math.Floor(l.Y*scale)),
			int(math.Ceil((l.X+l.W)*scale)),
			int(math.Ceil((l.Y+l.H)*scale)),
		).Add(b.Min)
		s.Links = append(s.Links, domain.LinkRegion{Rect: rect, URL: l.URL})
	}
	return s
}

const mmPerInch = 25.4

// PrintPDF prints html with the browser's own paginator on the configured
// page format.
func (r *ChromedpRenderer) PrintPDF(ctx context.Context, html string) ([]byte, error) {
	url, cleanup, err := writePage(html)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	cctx, cancel := r.browser(ctx)
	defer cancel()

	f := r.opts.Format
	margin := f.MarginMM / mmPerInch
	var pdfBuf []byte
	err = chromedp.Run(cctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().WithPrintBackground(true).
				WithPaperWidth(f.WidthMM / mmPerInch).
				WithPaperHeight(f.HeightMM / mmPerInch).
				WithMarginTop(margin).
				WithMarginBottom(margin).
				WithMarginLeft(margin).
				WithMarginRight(margin).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, errors.Wrap(err, "print pdf")
	}
	return pdfBuf, nil
}
