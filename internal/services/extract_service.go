// internal/services/extract_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/krowne/catalog-backend/internal/config"
	"github.com/krowne/catalog-backend/internal/models"
)

// ExtractService implements the spec-sheet extraction flow: a single-shot
// schema-constrained generation call over uploaded PDF bytes. All output
// fields are optional; the flow fails only when the call fails or returns
// nothing usable. Nothing is persisted.
type ExtractService struct {
	client *genai.Client
	model  string
}

// SpecSheetResult is the structured data extracted from a PDF spec sheet.
type SpecSheetResult struct {
	Name             string                   `json:"name,omitempty"`
	SKU              string                   `json:"sku,omitempty"`
	Series           models.Series            `json:"series,omitempty"`
	Description      string                   `json:"description,omitempty"`
	StandardFeatures string                   `json:"standard_features,omitempty"`
	Specifications   models.SpecificationList `json:"specifications,omitempty"`
	Tags             models.StringList        `json:"tags,omitempty"`
}

func NewExtractService(ctx context.Context, cfg config.GeminiConfig) (*ExtractService, error) {
	if cfg.APIKey == "" {
		// Extraction stays disabled without a credential; the rest of the
		// application is unaffected.
		return &ExtractService{model: cfg.Model}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &ExtractService{
		client: client,
		model:  cfg.Model,
	}, nil
}

func (s *ExtractService) Enabled() bool {
	return s.client != nil
}

// ExtractSpecSheet submits the PDF plus the extraction instructions and a
// strict response schema, then decodes and vets the structured output.
func (s *ExtractService) ExtractSpecSheet(ctx context.Context, pdf []byte) (*SpecSheetResult, error) {
	if s.client == nil {
		return nil, errors.New("spec sheet extraction is not configured (missing GEMINI_API_KEY)")
	}
	if len(pdf) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrExtractFailed)
	}

	parts := []*genai.Part{
		genai.NewPartFromText(specSheetPrompt()),
		genai.NewPartFromBytes(pdf, "application/pdf"),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   specSheetSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractFailed, err)
	}

	return parseSpecSheetOutput([]byte(resp.Text()))
}

// parseSpecSheetOutput decodes the generation output and drops values outside
// the closed sets. An output with no usable field at all fails the flow.
func parseSpecSheetOutput(raw []byte) (*SpecSheetResult, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: model returned no output", ErrExtractFailed)
	}

	var result SpecSheetResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractFailed, err)
	}

	if result.Series != "" && !models.ValidSeries(result.Series) {
		result.Series = ""
	}

	if len(result.Tags) > 0 {
		tags := models.StringList{}
		for _, tag := range result.Tags {
			if models.ValidTag(tag) {
				tags = append(tags, tag)
			}
		}
		result.Tags = tags
	}

	if result.IsEmpty() {
		return nil, fmt.Errorf("%w: no product data found in the document", ErrExtractFailed)
	}

	return &result, nil
}

func (r *SpecSheetResult) IsEmpty() bool {
	return r.Name == "" && r.SKU == "" && r.Series == "" && r.Description == "" &&
		r.StandardFeatures == "" && len(r.Specifications) == 0 && len(r.Tags) == 0
}

func specSheetPrompt() string {
	seriesNames := make([]string, 0, len(models.SeriesOptions))
	for _, s := range models.SeriesOptions {
		seriesNames = append(seriesNames, string(s))
	}

	return fmt.Sprintf(`You are an expert data entry specialist for a kitchen and bar equipment manufacturer. Your task is to extract detailed information from the provided product specification sheet (PDF) and return it in a structured JSON format.

Analyze the document carefully to identify the following details:

- name: The primary product name or title, including any series or model numbers.
- sku: The specific model number or SKU for the product.
- series: Identify if the product belongs to one of the following series: %s.
- description: A concise summary or marketing overview of the product.
- standard_features: A list of the product's main features. If the document has a bulleted list, preserve it.
- specifications: This is the most important field. Meticulously extract all technical specifications. Pay very close attention to any tables, lists, or two-column layouts. For each row or item, extract the label as the 'key' and the corresponding data as the 'value'. Extract every single key-value pair you can find.
- tags: From the list of available tags below, select any that are relevant to the product described in the document.
  Available Tags: %s

If you cannot find information for a specific field, omit it from the output. Do not guess or invent data.`,
		strings.Join(seriesNames, ", "),
		strings.Join(models.AllTags, ", "))
}

func specSheetSchema() *genai.Schema {
	seriesNames := make([]string, 0, len(models.SeriesOptions))
	for _, s := range models.SeriesOptions {
		seriesNames = append(seriesNames, string(s))
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name": {
				Type:        genai.TypeString,
				Description: "The full product name, including any series or model numbers.",
			},
			"sku": {
				Type:        genai.TypeString,
				Description: "The product SKU or model number.",
			},
			"series": {
				Type:        genai.TypeString,
				Enum:        seriesNames,
				Description: "The product series, if identifiable.",
			},
			"description": {
				Type:        genai.TypeString,
				Description: "A brief, one or two sentence marketing description of the product.",
			},
			"standard_features": {
				Type:        genai.TypeString,
				Description: "A bulleted or paragraph list of the product's standard features. Preserve formatting like bullet points.",
			},
			"specifications": {
				Type:        genai.TypeArray,
				Description: "Key-value pairs representing the product's technical specifications.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"key": {
							Type:        genai.TypeString,
							Description: "The name of the specification (e.g., \"Width\", \"Voltage\").",
						},
						"value": {
							Type:        genai.TypeString,
							Description: "The value of the specification (e.g., \"36 inches\", \"120V\").",
						},
					},
					Required: []string{"key", "value"},
				},
			},
			"tags": {
				Type:        genai.TypeArray,
				Description: "Relevant tags for the product based on its content.",
				Items:       &genai.Schema{Type: genai.TypeString},
			},
		},
	}
}
