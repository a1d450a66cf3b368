/**
 * @description
 * HTTP client for the Yahoo Finance daily-gainers page.
 * Fetches the public gainers table and normalizes rows into snapshots.
 *
 * @dependencies
 * - net/http
 * - github.com/PuerkitoBio/goquery: CSS-selector HTML parsing
 * - backend/internal/config
 *
 * @notes
 * - Yahoo serves the page to browser user agents only, hence the UA header.
 * - Volume and market cap are kept as display strings; only price and the
 *   change columns are parsed numerically.
 */

package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gainerwatch/backend/internal/config"
	"github.com/gainerwatch/backend/internal/models"
)

const (
	DefaultTimeout = 15 * time.Second
	DefaultTopN    = 50
)

var (
	priceClean  = regexp.MustCompile(`[^0-9.]`)
	changeClean = regexp.MustCompile(`[^0-9.\-]`)
)

type Client struct {
	BaseURL    string
	UserAgent  string
	TopN       int
	HTTPClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	timeout := cfg.Source.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	topN := cfg.Harvest.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &Client{
		BaseURL:   cfg.Source.GainersURL,
		UserAgent: cfg.Source.UserAgent,
		TopN:      topN,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// TopGainers fetches the gainers page and returns the normalized rows,
// stamped with the capture time. Rows without a symbol or a positive
// price are skipped.
func (c *Client) TopGainers(ctx context.Context) ([]models.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gainers page error: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse gainers page: %w", err)
	}

	return c.parseTable(doc, time.Now()), nil
}

// parseTable walks the gainers table rows. Column positions mirror the
// Yahoo layout: symbol, name, then price / change / change% / volume
// with market cap two columns later.
func (c *Client) parseTable(doc *goquery.Document, capturedAt time.Time) []models.Snapshot {
	snapshots := make([]models.Snapshot, 0, c.TopN)

	doc.Find("table tbody tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		if i >= c.TopN {
			return false
		}

		snap := models.Snapshot{
			Symbol:        strings.TrimSpace(row.Find("td:nth-child(1)").Text()),
			Name:          strings.TrimSpace(row.Find("td:nth-child(2)").Text()),
			Price:         parsePrice(row.Find("td:nth-child(4)").Text()),
			Change:        parseChange(row.Find("td:nth-child(5)").Text()),
			ChangePercent: parseChange(row.Find("td:nth-child(6)").Text()),
			Volume:        strings.TrimSpace(row.Find("td:nth-child(7)").Text()),
			MarketCap:     strings.TrimSpace(row.Find("td:nth-child(9)").Text()),
			Timestamp:     capturedAt,
		}

		if snap.Valid() {
			snapshots = append(snapshots, snap)
		}
		return true
	})

	return snapshots
}

// parsePrice strips currency symbols and thousands separators; returns 0
// (an invalid price) when nothing numeric remains.
func parsePrice(raw string) float64 {
	cleaned := priceClean.ReplaceAllString(raw, "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseChange is like parsePrice but keeps the sign.
func parseChange(raw string) float64 {
	cleaned := changeClean.ReplaceAllString(raw, "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}
