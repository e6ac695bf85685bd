// internal/services/scrape_service.go
package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/krowne/catalog-backend/internal/config"
	"github.com/krowne/catalog-backend/internal/models"
)

// ScrapeService implements the vendor-page extraction flow: deterministic
// structural parsing of the vendor's product page by DOM landmark. It never
// writes to storage; output only pre-fills the new-product form.
type ScrapeService struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// VendorPageResult is the structured data lifted off a vendor product page.
// Name is required; the flow fails without it.
type VendorPageResult struct {
	Name           string                   `json:"name"`
	Description    string                   `json:"description,omitempty"`
	Series         models.Series            `json:"series,omitempty"`
	Specifications models.SpecificationList `json:"specifications"`
}

func NewScrapeService(cfg config.VendorConfig) *ScrapeService {
	return &ScrapeService{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.FetchTimeout) * time.Second,
		},
	}
}

// ScrapeProductPage fetches the vendor page for a SKU and parses name,
// description, series, and the specification table. A 404 response or a page
// without the title landmark yields ErrPageNotFound; network trouble and
// unexpected upstream statuses yield ErrUpstream.
func (s *ScrapeService) ScrapeProductPage(ctx context.Context, sku string) (*VendorPageResult, error) {
	url := fmt.Sprintf("%s/product/%s/", s.baseURL, sku)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrPageNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: vendor page returned HTTP %d", ErrUpstream, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractFailed, err)
	}

	result := parseVendorPage(doc)
	if result.Name == "" {
		// The title landmark is the page's fingerprint. Without it we are
		// looking at a search page, a redirect target, or a changed layout.
		return nil, ErrPageNotFound
	}

	return result, nil
}

func parseVendorPage(doc *goquery.Document) *VendorPageResult {
	result := &VendorPageResult{
		Specifications: models.SpecificationList{},
	}

	result.Name = strings.TrimSpace(doc.Find("h1.product_title.entry-title").First().Text())
	result.Description = strings.TrimSpace(doc.Find(".woocommerce-product-details__short-description").First().Text())

	doc.Find("#tab-specifications table tr").Each(func(_ int, row *goquery.Selection) {
		key := strings.TrimSpace(row.Find("th").Text())
		value := strings.TrimSpace(row.Find("td").Text())

		if key == "" || value == "" {
			return
		}

		// A "Series" row with a recognized value is lifted out of the spec
		// table into the dedicated field.
		if strings.EqualFold(key, "series") && models.ValidSeries(models.Series(value)) {
			result.Series = models.Series(value)
			return
		}

		result.Specifications = append(result.Specifications, models.Specification{
			Key:   key,
			Value: value,
		})
	})

	return result
}
