// Package coop implements the catalog search collaborator against the
// coop.ch product search pages.
package coop

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/ehautefa/mealbot/internal/catalog"
)

const defaultBaseURL = "https://www.coop.ch"

// Client scrapes product search results into catalog candidates.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a search client. baseURL overrides the production
// endpoint, mainly for tests; pass "" for the default.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Search implements catalog.Searcher. It returns zero candidates for
// an empty result page; HTTP and parse failures are returned as errors
// and degraded to no-match by the caller.
func (c *Client) Search(ctx context.Context, ingredientName string) ([]catalog.Candidate, error) {
	searchURL := fmt.Sprintf("%s/fr/search/?text=%s", c.baseURL, url.QueryEscape(ingredientName))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("User-Agent", "mealbot/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse search page: %w", err)
	}

	var candidates []catalog.Candidate
	doc.Find(".productTile").Each(func(_ int, s *goquery.Selection) {
		name := strings.TrimSpace(s.Find(".productTile__name").Text())
		price := parsePrice(s.Find(".productTile__price").Text())

		id, _ := s.Find("a").First().Attr("href")
		id = strings.TrimSpace(id)
		if id != "" && strings.HasPrefix(id, "/") {
			id = c.baseURL + id
		}

		candidates = append(candidates, catalog.Candidate{
			Name:  name,
			Price: price,
			ID:    id,
		})
	})

	return candidates, nil
}

var priceRe = regexp.MustCompile(`\d+[.,]\d+|\d+`)

// parsePrice extracts the first numeric amount from price text like
// "CHF 2.95" or "2,95". Unparseable text yields 0.
func parsePrice(text string) float64 {
	m := priceRe.FindString(text)
	if m == "" {
		return 0
	}
	m = strings.ReplaceAll(m, ",", ".")
	price, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return price
}
