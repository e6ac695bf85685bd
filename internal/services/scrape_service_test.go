// internal/services/scrape_service_test.go
package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krowne/catalog-backend/internal/config"
	"github.com/krowne/catalog-backend/internal/models"
)

const productPageHTML = `<!DOCTYPE html>
<html>
<body>
  <h1 class="product_title entry-title">Royal Series Faucet KR-18</h1>
  <div class="woocommerce-product-details__short-description">
    <p>A heavy-duty dispensing faucet for underbar use.</p>
  </div>
  <div id="tab-specifications">
    <table>
      <tr><th>Series</th><td>Royal</td></tr>
      <tr><th>Width</th><td>36 inches</td></tr>
      <tr><th>Voltage</th><td>120V</td></tr>
      <tr><th>Empty Value</th><td></td></tr>
    </table>
  </div>
</body>
</html>`

const noTitlePageHTML = `<!DOCTYPE html>
<html><body><h1>Search results</h1><p>Nothing here.</p></body></html>`

func newTestScrapeService(baseURL string) *ScrapeService {
	return NewScrapeService(config.VendorConfig{
		BaseURL:      baseURL,
		FetchTimeout: 5,
		UserAgent:    "test-agent",
	})
}

func TestScrapeProductPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/product/KR-18/", r.URL.Path)
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Write([]byte(productPageHTML))
	}))
	defer server.Close()

	service := newTestScrapeService(server.URL)

	result, err := service.ScrapeProductPage(context.Background(), "KR-18")
	require.NoError(t, err)

	assert.Equal(t, "Royal Series Faucet KR-18", result.Name)
	assert.Equal(t, "A heavy-duty dispensing faucet for underbar use.", result.Description)
	assert.Equal(t, models.SeriesRoyal, result.Series)

	// The Series row is lifted out of the spec table; rows with empty values
	// are dropped.
	require.Len(t, result.Specifications, 2)
	assert.Equal(t, models.Specification{Key: "Width", Value: "36 inches"}, result.Specifications[0])
	assert.Equal(t, models.Specification{Key: "Voltage", Value: "120V"}, result.Specifications[1])
}

func TestScrapeProductPageNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	service := newTestScrapeService(server.URL)

	_, err := service.ScrapeProductPage(context.Background(), "MISSING")
	assert.ErrorIs(t, err, ErrPageNotFound)
}

func TestScrapeProductPageMissingTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(noTitlePageHTML))
	}))
	defer server.Close()

	service := newTestScrapeService(server.URL)

	// A 200 page without the title landmark means a changed layout or a
	// redirect to somewhere unhelpful; treated like a missing product.
	_, err := service.ScrapeProductPage(context.Background(), "KR-18")
	assert.ErrorIs(t, err, ErrPageNotFound)
}

func TestScrapeProductPageNetworkErrorIsUpstream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	service := newTestScrapeService(server.URL)

	_, err := service.ScrapeProductPage(context.Background(), "KR-18")
	assert.ErrorIs(t, err, ErrUpstream)
	assert.NotErrorIs(t, err, ErrPageNotFound)
}

func TestScrapeProductPageServerErrorIsUpstream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	service := newTestScrapeService(server.URL)

	_, err := service.ScrapeProductPage(context.Background(), "KR-18")
	assert.ErrorIs(t, err, ErrUpstream)
	assert.NotErrorIs(t, err, ErrPageNotFound)
}

func TestScrapeProductPageSeriesOutsideClosedSetStaysInSpecs(t *testing.T) {
	page := `<html><body>
      <h1 class="product_title entry-title">Odd Product</h1>
      <div id="tab-specifications"><table>
        <tr><th>Series</th><td>Platinum</td></tr>
      </table></div>
    </body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer server.Close()

	service := newTestScrapeService(server.URL)

	result, err := service.ScrapeProductPage(context.Background(), "ODD-1")
	require.NoError(t, err)

	assert.Empty(t, result.Series)
	require.Len(t, result.Specifications, 1)
	assert.Equal(t, models.Specification{Key: "Series", Value: "Platinum"}, result.Specifications[0])
}
