// internal/services/product_service.go
package services

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/krowne/catalog-backend/internal/models"
	"github.com/krowne/catalog-backend/internal/utils"
)

type ProductService struct {
	db             *gorm.DB
	deletePassword string
}

type CreateProductRequest struct {
	Name             string                   `json:"name" validate:"required,max=255"`
	SKU              string                   `json:"sku" validate:"required,max=100"`
	Series           models.Series            `json:"series,omitempty"`
	Description      string                   `json:"description,omitempty"`
	StandardFeatures string                   `json:"standard_features,omitempty"`
	Images           models.StringList        `json:"images,omitempty"`
	Specifications   models.SpecificationList `json:"specifications,omitempty"`
	Documentation    models.DocumentationList `json:"documentation,omitempty"`
	Compliance       models.ComplianceList    `json:"compliance,omitempty"`
	RelatedProducts  models.StringList        `json:"related_products,omitempty"`
	Tags             models.StringList        `json:"tags,omitempty"`
}

// UpdateProductRequest carries a partial update. Only non-nil fields are
// written; the field set doubles as the allow-list of updatable columns, so a
// caller can never bind its own column names into the statement.
type UpdateProductRequest struct {
	Name             *string                   `json:"name,omitempty" validate:"omitempty,max=255"`
	SKU              *string                   `json:"sku,omitempty" validate:"omitempty,max=100"`
	Series           *models.Series            `json:"series,omitempty"`
	Description      *string                   `json:"description,omitempty"`
	StandardFeatures *string                   `json:"standard_features,omitempty"`
	Images           *models.StringList        `json:"images,omitempty"`
	Specifications   *models.SpecificationList `json:"specifications,omitempty"`
	Documentation    *models.DocumentationList `json:"documentation,omitempty"`
	Compliance       *models.ComplianceList    `json:"compliance,omitempty"`
	RelatedProducts  *models.StringList        `json:"related_products,omitempty"`
	Tags             *models.StringList        `json:"tags,omitempty"`
}

func NewProductService(db *gorm.DB, deletePassword string) *ProductService {
	return &ProductService{
		db:             db,
		deletePassword: deletePassword,
	}
}

// ListProducts returns all products ordered by name, optionally filtered by a
// case-insensitive substring match over name, sku, and description.
func (s *ProductService) ListProducts(search string) ([]models.Product, error) {
	query := s.db.Model(&models.Product{})

	if search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(sku) LIKE ? OR LOWER(description) LIKE ?",
			term, term, term,
		)
	}

	var products []models.Product
	if err := query.Order("name").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	return models.SanitizeProducts(products), nil
}

func (s *ProductService) GetProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	sanitized := models.SanitizeProduct(&product)
	return &sanitized, nil
}

// CreateProduct inserts a new product. Field validation happens at the
// handler boundary, where the error shape carries per-field details.
func (s *ProductService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	series := req.Series
	if !models.ValidSeries(series) {
		series = models.DefaultSeries
	}

	product := &models.Product{
		Name:             req.Name,
		SKU:              req.SKU,
		Series:           series,
		Description:      req.Description,
		StandardFeatures: req.StandardFeatures,
		Images:           req.Images,
		Specifications:   req.Specifications,
		Documentation:    req.Documentation,
		Compliance:       req.Compliance,
		RelatedProducts:  req.RelatedProducts,
		Tags:             req.Tags,
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	sanitized := models.SanitizeProduct(product)
	return &sanitized, nil
}

// UpdateProduct applies a partial update to one product. An empty request is a
// plain read-back. Concurrent updates to the same row race last-write-wins per
// field; this is a known limitation of the single-statement design.
func (s *ProductService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.SKU != nil {
		updates["sku"] = *req.SKU
	}
	if req.Series != nil {
		series := *req.Series
		if !models.ValidSeries(series) {
			series = models.DefaultSeries
		}
		updates["series"] = series
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.StandardFeatures != nil {
		updates["standard_features"] = *req.StandardFeatures
	}
	if req.Images != nil {
		updates["images"] = *req.Images
	}
	if req.Specifications != nil {
		updates["specifications"] = *req.Specifications
	}
	if req.Documentation != nil {
		updates["documentation"] = *req.Documentation
	}
	if req.Compliance != nil {
		updates["compliance"] = *req.Compliance
	}
	if req.RelatedProducts != nil {
		updates["related_products"] = *req.RelatedProducts
	}
	if req.Tags != nil {
		updates["tags"] = *req.Tags
	}

	if len(updates) > 0 {
		if err := s.db.Model(&product).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload product: %w", err)
	}

	sanitized := models.SanitizeProduct(&product)
	return &sanitized, nil
}

func (s *ProductService) DeleteProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Delete(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}

	sanitized := models.SanitizeProduct(&product)
	return &sanitized, nil
}

// DeleteAllProducts empties the table. It is gated by the shared operational
// secret, not a per-user credential.
func (s *ProductService) DeleteAllProducts(password string) error {
	if !s.checkDeletePassword(password) {
		return ErrForbidden
	}

	if err := s.db.Exec("DELETE FROM products").Error; err != nil {
		return fmt.Errorf("failed to delete all products: %w", err)
	}

	return nil
}

func (s *ProductService) checkDeletePassword(password string) bool {
	if s.deletePassword == "" || password == "" {
		return false
	}

	if strings.HasPrefix(s.deletePassword, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(s.deletePassword), []byte(password)) == nil
	}

	return subtle.ConstantTimeCompare([]byte(s.deletePassword), []byte(password)) == 1
}
