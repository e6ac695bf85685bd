// internal/models/sanitize.go
package models

// SanitizeProduct coerces a raw database row into the canonical Product shape:
// every list field is non-nil and series is a member of the closed set. It is
// pure and idempotent, and is applied on every read path so no caller ever
// observes a null array or an out-of-set series value.
func SanitizeProduct(row *Product) Product {
	if row == nil {
		return Product{
			Series:          DefaultSeries,
			Images:          StringList{},
			Specifications:  SpecificationList{},
			Documentation:   DocumentationList{},
			Compliance:      ComplianceList{},
			RelatedProducts: StringList{},
			Tags:            StringList{},
		}
	}

	out := *row

	if !ValidSeries(out.Series) {
		out.Series = DefaultSeries
	}
	if out.Images == nil {
		out.Images = StringList{}
	}
	if out.Specifications == nil {
		out.Specifications = SpecificationList{}
	}
	if out.Documentation == nil {
		out.Documentation = DocumentationList{}
	}
	if out.Compliance == nil {
		out.Compliance = ComplianceList{}
	}
	if out.RelatedProducts == nil {
		out.RelatedProducts = StringList{}
	}
	if out.Tags == nil {
		out.Tags = StringList{}
	}

	return out
}

// SanitizeProducts sanitizes a result set in place-order, returning a non-nil
// slice even for empty input.
func SanitizeProducts(rows []Product) []Product {
	out := make([]Product, 0, len(rows))
	for i := range rows {
		out = append(out, SanitizeProduct(&rows[i]))
	}
	return out
}
