// internal/handlers/product_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/krowne/catalog-backend/internal/config"
	"github.com/krowne/catalog-backend/internal/models"
	"github.com/krowne/catalog-backend/internal/router"
)

type ProductAPITestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

func (suite *ProductAPITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(suite.T(), err)

	sqlDB, err := db.DB()
	require.NoError(suite.T(), err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(suite.T(), db.AutoMigrate(&models.Product{}))

	cfg := &config.Config{
		Environment: "test",
		Admin:       config.AdminConfig{DeletePassword: "secret123"},
		Vendor:      config.VendorConfig{BaseURL: "http://127.0.0.1:0", FetchTimeout: 1, UserAgent: "test"},
		Gemini:      config.GeminiConfig{Model: "gemini-2.0-flash"},
	}

	r, err := router.Initialize(db, cfg)
	require.NoError(suite.T(), err)

	suite.db = db
	suite.router = r
}

func (suite *ProductAPITestSuite) request(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(suite.T(), json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, path, &buf)
	require.NoError(suite.T(), err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

type apiEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		Message  string           `json:"message"`
		Product  *models.Product  `json:"product"`
		Products []models.Product `json:"products"`
	} `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (suite *ProductAPITestSuite) decode(w *httptest.ResponseRecorder) apiEnvelope {
	var envelope apiEnvelope
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func (suite *ProductAPITestSuite) TestCreateAndGetRoundTrip() {
	w := suite.request(http.MethodPost, "/v1/products", map[string]interface{}{
		"name":           "Test Unit",
		"sku":            "TU-100",
		"series":         "Royal",
		"specifications": []interface{}{},
		"documentation":  []interface{}{},
		"compliance":     []interface{}{},
		"tags":           []interface{}{},
	})
	require.Equal(suite.T(), http.StatusCreated, w.Code)

	created := suite.decode(w)
	require.True(suite.T(), created.Success)
	require.NotNil(suite.T(), created.Data.Product)
	assert.NotEmpty(suite.T(), created.Data.Product.ID)

	w = suite.request(http.MethodGet, fmt.Sprintf("/v1/products/%s", created.Data.Product.ID), nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)

	fetched := suite.decode(w)
	require.NotNil(suite.T(), fetched.Data.Product)
	assert.Equal(suite.T(), created.Data.Product.ID, fetched.Data.Product.ID)
	assert.Equal(suite.T(), "Test Unit", fetched.Data.Product.Name)
	assert.Equal(suite.T(), "TU-100", fetched.Data.Product.SKU)
	assert.Equal(suite.T(), models.SeriesRoyal, fetched.Data.Product.Series)

	// Fields omitted at creation come back as empty arrays, never null.
	assert.NotNil(suite.T(), fetched.Data.Product.Images)
	assert.NotNil(suite.T(), fetched.Data.Product.RelatedProducts)
	assert.NotNil(suite.T(), fetched.Data.Product.Specifications)
}

func (suite *ProductAPITestSuite) TestCreateMissingRequiredFields() {
	w := suite.request(http.MethodPost, "/v1/products", map[string]interface{}{
		"description": "no name, no sku",
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *ProductAPITestSuite) TestMalformedJSONBody() {
	req, err := http.NewRequest(http.MethodPost, "/v1/products", bytes.NewBufferString("{not json"))
	require.NoError(suite.T(), err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	envelope := suite.decode(w)
	require.NotNil(suite.T(), envelope.Error)
	assert.Equal(suite.T(), "BAD_REQUEST", envelope.Error.Code)
}

func (suite *ProductAPITestSuite) TestListWithSearch() {
	suite.request(http.MethodPost, "/v1/products", map[string]interface{}{"name": "Royal Faucet", "sku": "KR-1"})
	suite.request(http.MethodPost, "/v1/products", map[string]interface{}{"name": "Silver Sink", "sku": "KR-2"})

	w := suite.request(http.MethodGet, "/v1/products?q=royal", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	envelope := suite.decode(w)
	require.Len(suite.T(), envelope.Data.Products, 1)
	assert.Equal(suite.T(), "Royal Faucet", envelope.Data.Products[0].Name)

	w = suite.request(http.MethodGet, "/v1/products?q=kr-", nil)
	assert.Len(suite.T(), suite.decode(w).Data.Products, 2)

	w = suite.request(http.MethodGet, "/v1/products", nil)
	assert.Len(suite.T(), suite.decode(w).Data.Products, 2)
}

func (suite *ProductAPITestSuite) TestPartialUpdate() {
	w := suite.request(http.MethodPost, "/v1/products", map[string]interface{}{
		"name": "Royal Faucet", "sku": "KR-1", "series": "Royal",
	})
	created := suite.decode(w)
	require.NotNil(suite.T(), created.Data.Product)

	w = suite.request(http.MethodPut, fmt.Sprintf("/v1/products/%s", created.Data.Product.ID), map[string]interface{}{
		"description": "new text",
	})
	require.Equal(suite.T(), http.StatusOK, w.Code)

	updated := suite.decode(w)
	require.NotNil(suite.T(), updated.Data.Product)
	assert.Equal(suite.T(), "new text", updated.Data.Product.Description)
	assert.Equal(suite.T(), "Royal Faucet", updated.Data.Product.Name)
	assert.Equal(suite.T(), "KR-1", updated.Data.Product.SKU)
}

func (suite *ProductAPITestSuite) TestNotFoundResponses() {
	missing := "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d"

	w := suite.request(http.MethodGet, "/v1/products/"+missing, nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	w = suite.request(http.MethodPut, "/v1/products/"+missing, map[string]interface{}{"description": "x"})
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	w = suite.request(http.MethodDelete, "/v1/products/"+missing, nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *ProductAPITestSuite) TestInvalidIDIsBadRequest() {
	w := suite.request(http.MethodGet, "/v1/products/not-a-uuid", nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *ProductAPITestSuite) TestDeleteProduct() {
	w := suite.request(http.MethodPost, "/v1/products", map[string]interface{}{
		"name": "Doomed", "sku": "D-1",
	})
	created := suite.decode(w)
	require.NotNil(suite.T(), created.Data.Product)

	w = suite.request(http.MethodDelete, fmt.Sprintf("/v1/products/%s", created.Data.Product.ID), nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w = suite.request(http.MethodGet, fmt.Sprintf("/v1/products/%s", created.Data.Product.ID), nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *ProductAPITestSuite) TestBulkDeleteGating() {
	suite.request(http.MethodPost, "/v1/products", map[string]interface{}{"name": "Keep Me", "sku": "K-1"})

	w := suite.request(http.MethodDelete, "/v1/products", map[string]interface{}{"password": "wrong"})
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w = suite.request(http.MethodGet, "/v1/products", nil)
	assert.Len(suite.T(), suite.decode(w).Data.Products, 1)

	w = suite.request(http.MethodDelete, "/v1/products", map[string]interface{}{"password": "secret123"})
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w = suite.request(http.MethodGet, "/v1/products", nil)
	assert.Len(suite.T(), suite.decode(w).Data.Products, 0)
}

func (suite *ProductAPITestSuite) TestProductOptions() {
	w := suite.request(http.MethodGet, "/v1/products/options", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)

	var envelope struct {
		Data struct {
			Series   []string            `json:"series"`
			DocTypes []string            `json:"doc_types"`
			Tags     []string            `json:"tags"`
			Groups   map[string][]string `json:"compliance_groups"`
		} `json:"data"`
	}
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &envelope))

	assert.Contains(suite.T(), envelope.Data.Series, "Royal")
	assert.Contains(suite.T(), envelope.Data.DocTypes, "Spec Sheet")
	assert.Contains(suite.T(), envelope.Data.Tags, "Faucets")
	assert.Contains(suite.T(), envelope.Data.Groups, "NSF")
}

func (suite *ProductAPITestSuite) TestHealth() {
	w := suite.request(http.MethodGet, "/health", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func TestProductAPITestSuite(t *testing.T) {
	suite.Run(t, new(ProductAPITestSuite))
}
