// internal/models/product.go
package models

// Series is the fixed product-line classification.
type Series string

const (
	SeriesNone      Series = "-"
	SeriesSilver    Series = "Silver"
	SeriesRoyal     Series = "Royal"
	SeriesDiamond   Series = "Diamond"
	SeriesMasterTap Series = "MasterTap"
)

// DefaultSeries is the coercion target for unrecognized or missing values.
const DefaultSeries = SeriesSilver

var SeriesOptions = []Series{
	SeriesNone,
	SeriesSilver,
	SeriesRoyal,
	SeriesDiamond,
	SeriesMasterTap,
}

func ValidSeries(s Series) bool {
	for _, opt := range SeriesOptions {
		if s == opt {
			return true
		}
	}
	return false
}

// DocType classifies a documentation entry.
type DocType string

const (
	DocTypeSpecSheet DocType = "Spec Sheet"
	DocType3DDrawing DocType = "3D Drawing"
	DocType2DDrawing DocType = "2D Drawing"
	DocTypeOther     DocType = "Other"
)

var DocTypeOptions = []DocType{
	DocTypeSpecSheet,
	DocType3DDrawing,
	DocType2DDrawing,
	DocTypeOther,
}

// AllTags is the controlled tag vocabulary. Not enforced at the data layer;
// the extraction flows filter against it.
var AllTags = []string{
	"Air Switches", "Alchemy", "Bar Sinks", "Beer Systems", "Beverage Dispensing",
	"Bottle Coolers", "Casters", "Direct Draw Coolers", "Dispensing Faucets", "Drainboards",
	"Drainers & Rinsers", "Drains", "Dry Storage Cabinets", "Dump Sinks", "Electric",
	"Electric Sensor Faucets", "Faucets", "Foodservice", "Freezers", "Gas Connectors", "Gas Systems",
	"Glass Chiller", "Glass Washer", "Hand Sinks", "Home", "Hose Reels", "HydroSift",
	"Ice Bin", "Kits", "Liquor Displays", "Locking Covers", "Mixology",
	"Mop Floor Sinks", "MoveWell", "Mug Froster", "Parts & Accessories", "Pass Thru Units",
	"Perforated Inserts", "Pet Grooming", "Plumbing", "Pot Fillers", "Power Packs",
	"Pre-Rinse Units", "Refrigeration", "Regulator Panels", "Remote", "Robotic Bartenders",
	"Sinks", "Soap Dispensers", "Soda Gun Holders", "Specialized Stations",
	"Speed Units", "Spouts", "Stations", "Storage Cabinets", "Towers", "Trash Chute",
	"Trunk Lines", "Underbar", "Utility", "Vinyl Wrap", "Water Filters", "Workstations",
}

func ValidTag(tag string) bool {
	for _, t := range AllTags {
		if tag == t {
			return true
		}
	}
	return false
}

// ComplianceGroups maps certifying bodies to the standards they cover.
var ComplianceGroups = map[string][]string{
	"NSF": {
		"NSF St. 61",
		"NSF/ANSI 372",
		"NSF/ANSI/CAN 61: Q < 1",
		"NSF/ANSI 169",
	},
	"CSA": {
		"ASME A112.18.1/CSA B125.1",
		"ASME A112.18.2/CSA B125.2",
		"NSF/ANSI 372",
		"ANSI Z21.69/CSA 6.16",
		"ANSI Z21.24/ CSA 6.10",
		"CSA B64.1.1-2011",
	},
	"Intertek AKA ETL": {
		"NSF St. 7",
		"UL 471",
		"CSA C22.2#120",
	},
	"ASSE": {
		"1001",
	},
	"UL": {
		"UL1951",
	},
	"IAPMO": {
		"NSF/ANSI 61",
	},
}

// Product is a single catalog entry for one piece of equipment.
type Product struct {
	BaseModel
	Name             string            `json:"name" gorm:"size:255;not null"`
	SKU              string            `json:"sku" gorm:"size:100;not null;index"`
	Series           Series            `json:"series" gorm:"type:varchar(20);default:'Silver'"`
	Description      string            `json:"description" gorm:"type:text"`
	StandardFeatures string            `json:"standard_features" gorm:"type:text"`
	Images           StringList        `json:"images" gorm:"type:jsonb"`
	Specifications   SpecificationList `json:"specifications" gorm:"type:jsonb"`
	Documentation    DocumentationList `json:"documentation" gorm:"type:jsonb"`
	Compliance       ComplianceList    `json:"compliance" gorm:"type:jsonb"`
	RelatedProducts  StringList        `json:"related_products" gorm:"type:jsonb"`
	Tags             StringList        `json:"tags" gorm:"type:jsonb"`
}
