package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/kapu/terrascope/internal/constants"
	"github.com/kapu/terrascope/internal/domain"
	"github.com/kapu/terrascope/internal/util"
)

// LinkTitleResolver replaces domain-only source titles with the page title.
type LinkTitleResolver struct {
	httpClient  *http.Client
	concurrency int
	timeout     time.Duration
	logger      *zap.Logger
}

func NewLinkTitleResolver(httpClient *http.Client, logger *zap.Logger) *LinkTitleResolver {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &LinkTitleResolver{
		httpClient:  httpClient,
		concurrency: constants.NewsConfig.TitleConcurrency,
		timeout:     constants.ProviderTimeouts.LinkGet,
		logger:      util.OrNop(logger),
	}
}

// Resolve returns a copy of sources with better titles where a page could be
// read. Failures keep the original title.
func (r *LinkTitleResolver) Resolve(ctx context.Context, sources []domain.NewsSource) []domain.NewsSource {
	out := append([]domain.NewsSource(nil), sources...)

	p := pool.New().WithMaxGoroutines(r.concurrency)
	for i := range out {
		if !looksLikeDomain(out[i].Title) {
			continue
		}
		p.Go(func() {
			title, err := r.fetchTitle(ctx, out[i].URI)
			if err != nil {
				r.logger.Debug("Source title lookup failed", zap.String("uri", out[i].URI), zap.Error(err))
				return
			}
			if title != "" {
				out[i].Title = title
			}
		})
	}
	p.Wait()

	return out
}

func (r *LinkTitleResolver) fetchTitle(ctx context.Context, uri string) (string, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", constants.APIConfig.UserAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, constants.NewsConfig.MaxTitleBodyBytes))
	if err != nil {
		return "", err
	}

	if og := strings.TrimSpace(doc.Find(`meta[property="og:title"]`).AttrOr("content", "")); og != "" {
		return og, nil
	}
	return strings.TrimSpace(doc.Find("title").First().Text()), nil
}

// looksLikeDomain matches titles such as "reuters.com" that grounding returns
// in place of an article headline.
func looksLikeDomain(title string) bool {
	title = strings.TrimSpace(title)
	return title != "" && !strings.ContainsAny(title, " \t") && strings.Contains(title, ".")
}
