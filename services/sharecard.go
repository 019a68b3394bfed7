package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"jjreviews/config"
	"jjreviews/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

const shareCardTimeout = 30 * time.Second

// shareCardHTML is the fixed-layout card: poster, rating box, verdict badge
// and a review quote.
const shareCardHTML = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<style>
  body { margin: 0; font-family: Helvetica, Arial, sans-serif; background: #f8f9fa; }
  #card { width: 540px; padding: 30px; background: #fff; }
  #card .poster { width: 100%; height: 640px; object-fit: cover; border-radius: 12px; background: #222; }
  #card h1 { font-size: 28px; margin: 18px 0 4px; }
  #card .meta { color: #6c757d; font-size: 15px; margin-bottom: 14px; }
  #card .rating { display: inline-block; background: #ffc107; color: #000; font-weight: bold;
    font-size: 26px; padding: 10px 18px; border-radius: 12px; border: 2px solid #e0a800; }
  #card .badge { display: inline-block; margin-left: 12px; padding: 10px 18px; border-radius: 999px;
    font-weight: 500; background: {{.Badge.Background}}; color: {{.Badge.Color}}; }
  #card .quote { margin-top: 18px; font-size: 17px; line-height: 1.6; color: #212529; }
  #card .brand { margin-top: 22px; color: #adb5bd; font-weight: bold; font-size: 14px; }
</style>
</head>
<body>
<div id="card">
  {{if .Movie.PosterPath}}<img class="poster" src="https://image.tmdb.org/t/p/w500{{.Movie.PosterPath}}">{{end}}
  <h1>{{if .Movie.Title}}{{.Movie.Title}}{{else}}Filme #{{.Movie.TMDBID}}{{end}}</h1>
  <div class="meta">{{.Movie.Director}}{{if .Movie.ReleaseDate}} &bull; {{.Year}}{{end}}</div>
  <div>
    <span class="rating">&#11088; {{if .Movie.Rating}}{{.Movie.RatingOrZero}}{{else}}-{{end}}</span>
    {{if .Movie.Recommended}}<span class="badge">{{.Movie.Recommended}}</span>{{end}}
  </div>
  {{if .Movie.Review.Review}}<p class="quote">&ldquo;{{.Movie.Review.Review}}&rdquo;</p>{{end}}
  <div class="brand">JJ Reviews</div>
</div>
</body>
</html>`

var shareCardTmpl = template.Must(template.New("sharecard").Parse(shareCardHTML))

// ShareCardRenderer rasterizes the share card with headless Chrome, either a
// locally launched one or a remote instance (CHROME_REMOTE_URL).
type ShareCardRenderer struct {
	remoteURL string
}

func NewShareCardRenderer(cfg *config.Config) *ShareCardRenderer {
	return &ShareCardRenderer{remoteURL: cfg.ChromeRemoteURL}
}

// Render produces the PNG share card for one movie.
func (r *ShareCardRenderer) Render(ctx context.Context, movie models.Movie) ([]byte, error) {
	year := ""
	if len(movie.ReleaseDate) >= 4 {
		year = movie.ReleaseDate[:4]
	}

	var html bytes.Buffer
	err := shareCardTmpl.Execute(&html, struct {
		Movie models.Movie
		Badge BadgeStyle
		Year  string
	}{movie, BadgeStyleFor(movie.Recommended), year})
	if err != nil {
		return nil, fmt.Errorf("failed to render share card template: %w", err)
	}

	allocCtx, allocCancel := r.newAllocator(ctx)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	taskCtx, timeoutCancel := context.WithTimeout(taskCtx, shareCardTimeout)
	defer timeoutCancel()

	var png []byte
	err = chromedp.Run(taskCtx,
		chromedp.EmulateViewport(600, 1100),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html.String()).Do(ctx)
		}),
		chromedp.WaitVisible("#card", chromedp.ByID),
		chromedp.Screenshot("#card", &png, chromedp.NodeVisible, chromedp.ByID),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to capture share card: %w", err)
	}

	return png, nil
}

func (r *ShareCardRenderer) newAllocator(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.remoteURL != "" {
		return chromedp.NewRemoteAllocator(ctx, r.remoteURL)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true), // containers mount a tiny /dev/shm
		chromedp.Flag("font-render-hinting", "none"),
	)
	return chromedp.NewExecAllocator(ctx, opts...)
}
