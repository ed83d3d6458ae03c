package printing

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/isletme/backend/internal/domain/shared"
)

// PaperSize represents the paper size for printing
type PaperSize string

const (
	PaperSizeA4     PaperSize = "A4"     // 210mm x 297mm
	PaperSizeA5     PaperSize = "A5"     // 148mm x 210mm
	PaperSizeLetter PaperSize = "LETTER" // 216mm x 279mm
)

// IsValid checks if the PaperSize is a valid value
func (p PaperSize) IsValid() bool {
	switch p {
	case PaperSizeA4, PaperSizeA5, PaperSizeLetter:
		return true
	}
	return false
}

// Dimensions returns the portrait paper dimensions in millimeters
func (p PaperSize) Dimensions() (width, height int) {
	switch p {
	case PaperSizeA5:
		return 148, 210
	case PaperSizeLetter:
		return 216, 279
	default:
		return 210, 297
	}
}

// Orientation represents the page orientation for printing
type Orientation string

const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
)

// IsValid checks if the Orientation is a valid value
func (o Orientation) IsValid() bool {
	return o == OrientationPortrait || o == OrientationLandscape
}

// Margins represents the page padding in millimeters
type Margins struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// DefaultMargins returns the default page padding
func DefaultMargins() Margins {
	return Margins{Top: 15, Right: 15, Bottom: 15, Left: 15}
}

func (m Margins) validate() error {
	for _, v := range []int{m.Top, m.Right, m.Bottom, m.Left} {
		if v < 0 || v > 60 {
			return shared.NewFieldError("padding", "Kenar boşlukları 0 ile 60 mm arasında olmalıdır")
		}
	}
	return nil
}

// LogoPosition selects the header layout variant
type LogoPosition string

const (
	LogoNone   LogoPosition = "none"
	LogoLeft   LogoPosition = "left"
	LogoCenter LogoPosition = "center"
	LogoRight  LogoPosition = "right"
)

// IsValid checks if the LogoPosition is a valid value
func (p LogoPosition) IsValid() bool {
	switch p {
	case LogoNone, LogoLeft, LogoCenter, LogoRight:
		return true
	}
	return false
}

// FieldPosition is the document zone a custom field is rendered in
type FieldPosition string

const (
	FieldPositionHeader      FieldPosition = "header"
	FieldPositionCustomer    FieldPosition = "customer"
	FieldPositionBeforeItems FieldPosition = "before_items"
	FieldPositionAfterItems  FieldPosition = "after_items"
	FieldPositionFooter      FieldPosition = "footer"
)

// IsValid checks if the FieldPosition is a valid value
func (p FieldPosition) IsValid() bool {
	switch p {
	case FieldPositionHeader, FieldPositionCustomer, FieldPositionBeforeItems,
		FieldPositionAfterItems, FieldPositionFooter:
		return true
	}
	return false
}

// HeaderLayout configures the top of the page
type HeaderLayout struct {
	LogoPosition    LogoPosition `json:"logo_position"`
	ShowCompanyInfo bool         `json:"show_company_info"`
}

// ColumnVisibility toggles the line item table columns. The row number
// column is always rendered.
type ColumnVisibility struct {
	Description bool `json:"description"`
	Quantity    bool `json:"quantity"`
	Unit        bool `json:"unit"`
	UnitPrice   bool `json:"unit_price"`
	TaxRate     bool `json:"tax_rate"`
	LineTotal   bool `json:"line_total"`
}

// UnmarshalJSON turns the description column on when the key is absent,
// which is the case for schemas saved before the flag existed.
func (c *ColumnVisibility) UnmarshalJSON(data []byte) error {
	type plain ColumnVisibility
	p := plain{Description: true}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = ColumnVisibility(p)
	return nil
}

// TotalsVisibility toggles the rows of the totals block
type TotalsVisibility struct {
	Subtotal bool `json:"subtotal"`
	Discount bool `json:"discount"`
	Tax      bool `json:"tax"`
	Total    bool `json:"total"`
}

// CustomField is a free-form label/value pair placed in a document zone
type CustomField struct {
	Label    string        `json:"label"`
	Value    string        `json:"value"`
	Position FieldPosition `json:"position"`
}

// Style holds colours and base font size
type Style struct {
	PrimaryColor string `json:"primary_color"`
	TextColor    string `json:"text_color"`
	FontSize     int    `json:"font_size"`
}

// PageSchema is the declarative description of a printed document. Company
// is the letterhead printed in the header.
type PageSchema struct {
	PaperSize    PaperSize        `json:"paper_size"`
	Orientation  Orientation      `json:"orientation"`
	Padding      Margins          `json:"padding"`
	Header       HeaderLayout     `json:"header"`
	Company      Party            `json:"company"`
	Columns      ColumnVisibility `json:"columns"`
	Totals       TotalsVisibility `json:"totals"`
	CustomFields []CustomField    `json:"custom_fields"`
	ShowNotes    bool             `json:"show_notes"`
	ShowTerms    bool             `json:"show_terms"`
	FooterText   string           `json:"footer_text"`
	Style        Style            `json:"style"`
}

// DefaultSchema is used when a tenant has not saved its own
func DefaultSchema() PageSchema {
	return PageSchema{
		PaperSize:   PaperSizeA4,
		Orientation: OrientationPortrait,
		Padding:     DefaultMargins(),
		Header:      HeaderLayout{LogoPosition: LogoLeft, ShowCompanyInfo: true},
		Columns: ColumnVisibility{
			Description: true, Quantity: true, Unit: true, UnitPrice: true, TaxRate: false, LineTotal: true,
		},
		Totals:     TotalsVisibility{Subtotal: true, Discount: true, Tax: true, Total: true},
		ShowNotes:  true,
		ShowTerms:  true,
		FooterText: "Bu teklif belirtilen geçerlilik tarihine kadar geçerlidir.",
		Style:      Style{PrimaryColor: "#1f4e79", TextColor: "#222222", FontSize: 10},
	}
}

// Validate checks the schema and fills blank values with defaults.
func (s *PageSchema) Validate() error {
	def := DefaultSchema()
	if s.PaperSize == "" {
		s.PaperSize = def.PaperSize
	}
	if !s.PaperSize.IsValid() {
		return shared.NewFieldError("paper_size", "Geçersiz kağıt boyutu")
	}
	if s.Orientation == "" {
		s.Orientation = def.Orientation
	}
	if !s.Orientation.IsValid() {
		return shared.NewFieldError("orientation", "Geçersiz sayfa yönü")
	}
	if err := s.Padding.validate(); err != nil {
		return err
	}
	if s.Header.LogoPosition == "" {
		s.Header.LogoPosition = LogoNone
	}
	if !s.Header.LogoPosition.IsValid() {
		return shared.NewFieldError("header.logo_position", "Logo konumu left, center, right veya none olmalıdır")
	}
	for i := range s.CustomFields {
		f := &s.CustomFields[i]
		f.Label = strings.TrimSpace(f.Label)
		if f.Label == "" {
			return shared.RequiredField("custom_fields.label")
		}
		if !f.Position.IsValid() {
			return shared.NewFieldError("custom_fields.position", "Geçersiz alan konumu: "+string(f.Position))
		}
	}
	if s.Style.FontSize == 0 {
		s.Style.FontSize = def.Style.FontSize
	}
	if s.Style.FontSize < 6 || s.Style.FontSize > 24 {
		return shared.NewFieldError("style.font_size", "Yazı boyutu 6 ile 24 arasında olmalıdır")
	}
	if s.Style.PrimaryColor == "" {
		s.Style.PrimaryColor = def.Style.PrimaryColor
	}
	if s.Style.TextColor == "" {
		s.Style.TextColor = def.Style.TextColor
	}
	return nil
}

// FieldsAt returns the custom fields placed at pos, in declaration order.
func (s PageSchema) FieldsAt(pos FieldPosition) []CustomField {
	var out []CustomField
	for _, f := range s.CustomFields {
		if f.Position == pos {
			out = append(out, f)
		}
	}
	return out
}

// DocumentTypeProposal is the only printable document type
const DocumentTypeProposal = "proposal"

// SchemaRecord is a tenant's saved schema for one document type
type SchemaRecord struct {
	shared.TenantEntity
	DocumentType string
	Schema       PageSchema
}

// SchemaRepository persists page schemas
type SchemaRepository interface {
	// FindByDocumentType returns shared.ErrNotFound when nothing is saved.
	FindByDocumentType(ctx context.Context, tenantID uuid.UUID, documentType string) (*SchemaRecord, error)
	Save(ctx context.Context, record *SchemaRecord) error
}
