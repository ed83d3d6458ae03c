package printing

import (
	"strconv"
	"strings"
)

// Zone is a vertical band of the page
type Zone string

const (
	ZoneHeader      Zone = "header"
	ZoneCustomer    Zone = "customer"
	ZoneBeforeItems Zone = "before_items"
	ZoneItems       Zone = "items"
	ZoneTotals      Zone = "totals"
	ZoneAfterItems  Zone = "after_items"
	ZoneNotes       Zone = "notes"
	ZoneFooter      Zone = "footer"
)

// Zones lists the bands from top to bottom
var Zones = []Zone{
	ZoneHeader, ZoneCustomer, ZoneBeforeItems, ZoneItems,
	ZoneTotals, ZoneAfterItems, ZoneNotes, ZoneFooter,
}

var fieldZones = map[FieldPosition]Zone{
	FieldPositionHeader:      ZoneHeader,
	FieldPositionCustomer:    ZoneCustomer,
	FieldPositionBeforeItems: ZoneBeforeItems,
	FieldPositionAfterItems:  ZoneAfterItems,
	FieldPositionFooter:      ZoneFooter,
}

// NodeKind is the draw call a node maps to
type NodeKind string

const (
	NodeText   NodeKind = "text"
	NodeImage  NodeKind = "image"
	NodeTable  NodeKind = "table"
	NodeSpacer NodeKind = "spacer"
)

// Align is the horizontal placement of a node within its zone
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// TextStyle modifies how a text node is drawn
type TextStyle struct {
	Bold      bool `json:"bold,omitempty"`
	Uppercase bool `json:"uppercase,omitempty"`
	Scale     int  `json:"scale,omitempty"` // percent of the base font size, 0 means 100
	Muted     bool `json:"muted,omitempty"`
}

// Column is a table column
type Column struct {
	Key    string `json:"key"`
	Header string `json:"header"`
	Align  Align  `json:"align"`
}

// Table is a header row plus body rows of preformatted cells
type Table struct {
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Node is one positioned element of the page
type Node struct {
	Kind     NodeKind  `json:"kind"`
	Zone     Zone      `json:"zone"`
	Align    Align     `json:"align"`
	Label    string    `json:"label,omitempty"`
	Text     string    `json:"text,omitempty"`
	ImageURL string    `json:"image_url,omitempty"`
	Table    *Table    `json:"table,omitempty"`
	Style    TextStyle `json:"style"`
}

// Page is the physical page the layout targets
type Page struct {
	PaperSize   PaperSize   `json:"paper_size"`
	Orientation Orientation `json:"orientation"`
	WidthMM     int         `json:"width_mm"`
	HeightMM    int         `json:"height_mm"`
	Padding     Margins     `json:"padding"`
}

// Layout is the single-page node list produced from a schema
type Layout struct {
	Page  Page   `json:"page"`
	Style Style  `json:"style"`
	Nodes []Node `json:"nodes"`
}

// InZone returns the nodes of z in emission order
func (l Layout) InZone(z Zone) []Node {
	var out []Node
	for _, n := range l.Nodes {
		if n.Zone == z {
			out = append(out, n)
		}
	}
	return out
}

// BuildLayout switches on the schema flags and emits fixed-position nodes
// for doc. Content is assumed to fit on one page; nothing is measured.
func BuildLayout(schema PageSchema, doc DocumentData) Layout {
	w, h := schema.PaperSize.Dimensions()
	if schema.Orientation == OrientationLandscape {
		w, h = h, w
	}
	b := &layoutBuilder{
		schema: schema,
		doc:    doc,
		layout: Layout{
			Page: Page{
				PaperSize:   schema.PaperSize,
				Orientation: schema.Orientation,
				WidthMM:     w,
				HeightMM:    h,
				Padding:     schema.Padding,
			},
			Style: schema.Style,
		},
	}
	b.header()
	b.customer()
	b.customFields(FieldPositionBeforeItems)
	b.items()
	b.totals()
	b.customFields(FieldPositionAfterItems)
	b.notes()
	b.footer()
	return b.layout
}

type layoutBuilder struct {
	schema PageSchema
	doc    DocumentData
	layout Layout
}

func (b *layoutBuilder) add(n Node) {
	b.layout.Nodes = append(b.layout.Nodes, n)
}

func (b *layoutBuilder) text(z Zone, a Align, label, text string, st TextStyle) {
	if strings.TrimSpace(text) == "" {
		return
	}
	b.add(Node{Kind: NodeText, Zone: z, Align: a, Label: label, Text: text, Style: st})
}

func (b *layoutBuilder) header() {
	pos := b.schema.Header.LogoPosition
	logo := b.doc.Company.LogoURL
	hasLogo := pos != LogoNone && logo != ""

	// Company details sit opposite the logo; a centred logo stacks them below it.
	companyAlign := AlignLeft
	switch {
	case hasLogo && pos == LogoLeft:
		companyAlign = AlignRight
	case hasLogo && pos == LogoCenter:
		companyAlign = AlignCenter
	}
	titleAlign := AlignRight
	if companyAlign == AlignRight {
		titleAlign = AlignLeft
	}
	if companyAlign == AlignCenter {
		titleAlign = AlignCenter
	}

	if hasLogo {
		b.add(Node{Kind: NodeImage, Zone: ZoneHeader, Align: Align(pos), ImageURL: logo})
	}
	if b.schema.Header.ShowCompanyInfo {
		c := b.doc.Company
		b.text(ZoneHeader, companyAlign, "", c.Name, TextStyle{Bold: true, Scale: 130})
		b.text(ZoneHeader, companyAlign, "", joinNonEmpty(", ", c.Address, c.City), TextStyle{Muted: true})
		b.text(ZoneHeader, companyAlign, "", taxLine(c), TextStyle{Muted: true})
		b.text(ZoneHeader, companyAlign, "", joinNonEmpty(" · ", c.Phone, c.Email), TextStyle{Muted: true})
	}

	b.text(ZoneHeader, titleAlign, "", b.doc.Title, TextStyle{Bold: true, Uppercase: true, Scale: 180})
	b.text(ZoneHeader, titleAlign, "Belge No", b.doc.DocumentNumber, TextStyle{})
	b.text(ZoneHeader, titleAlign, "Tarih", FormatDate(b.doc.IssueDate), TextStyle{})
	if b.doc.ValidUntil != nil {
		b.text(ZoneHeader, titleAlign, "Geçerlilik", FormatDate(*b.doc.ValidUntil), TextStyle{})
	}
	b.customFields(FieldPositionHeader)
	b.add(Node{Kind: NodeSpacer, Zone: ZoneHeader})
}

func (b *layoutBuilder) customer() {
	c := b.doc.Customer
	b.text(ZoneCustomer, AlignLeft, "", "Sayın", TextStyle{Muted: true})
	b.text(ZoneCustomer, AlignLeft, "", c.Name, TextStyle{Bold: true})
	b.text(ZoneCustomer, AlignLeft, "", joinNonEmpty(", ", c.Address, c.City), TextStyle{})
	b.text(ZoneCustomer, AlignLeft, "", taxLine(c), TextStyle{})
	b.text(ZoneCustomer, AlignLeft, "", joinNonEmpty(" · ", c.Phone, c.Email), TextStyle{})
	b.text(ZoneCustomer, AlignLeft, "Konu", b.doc.Subject, TextStyle{Bold: true})
	b.customFields(FieldPositionCustomer)
}

func (b *layoutBuilder) customFields(pos FieldPosition) {
	zone := fieldZones[pos]
	align := AlignLeft
	if pos == FieldPositionFooter {
		align = AlignCenter
	}
	for _, f := range b.schema.FieldsAt(pos) {
		b.add(Node{Kind: NodeText, Zone: zone, Align: align, Label: f.Label, Text: f.Value})
	}
}

func (b *layoutBuilder) items() {
	cols := b.schema.Columns
	columns := []Column{{Key: "no", Header: "#", Align: AlignCenter}}
	if cols.Description {
		columns = append(columns, Column{Key: "description", Header: "Açıklama", Align: AlignLeft})
	}
	if cols.Quantity {
		columns = append(columns, Column{Key: "quantity", Header: "Miktar", Align: AlignRight})
	}
	if cols.Unit {
		columns = append(columns, Column{Key: "unit", Header: "Birim", Align: AlignLeft})
	}
	if cols.UnitPrice {
		columns = append(columns, Column{Key: "unit_price", Header: "Birim Fiyat", Align: AlignRight})
	}
	if cols.TaxRate {
		columns = append(columns, Column{Key: "tax_rate", Header: "KDV", Align: AlignRight})
	}
	if cols.LineTotal {
		columns = append(columns, Column{Key: "line_total", Header: "Tutar", Align: AlignRight})
	}

	sym := b.doc.CurrencySymbol
	rows := make([][]string, 0, len(b.doc.Items))
	for i, it := range b.doc.Items {
		row := make([]string, 0, len(columns))
		for _, c := range columns {
			switch c.Key {
			case "no":
				row = append(row, strconv.Itoa(i+1))
			case "description":
				row = append(row, it.Description)
			case "quantity":
				row = append(row, FormatQuantity(it.Quantity))
			case "unit":
				row = append(row, it.Unit)
			case "unit_price":
				row = append(row, FormatMoney(it.UnitPrice, sym))
			case "tax_rate":
				row = append(row, FormatPercent(it.TaxRate))
			case "line_total":
				row = append(row, FormatMoney(it.LineTotal, sym))
			}
		}
		rows = append(rows, row)
	}
	b.add(Node{Kind: NodeTable, Zone: ZoneItems, Align: AlignLeft, Table: &Table{Columns: columns, Rows: rows}})
}

func (b *layoutBuilder) totals() {
	show := b.schema.Totals
	t := b.doc.Totals
	sym := b.doc.CurrencySymbol
	if show.Subtotal {
		b.add(Node{Kind: NodeText, Zone: ZoneTotals, Align: AlignRight, Label: "Ara Toplam", Text: FormatMoney(t.Subtotal, sym)})
	}
	if show.Discount {
		b.add(Node{Kind: NodeText, Zone: ZoneTotals, Align: AlignRight, Label: "İndirim (" + FormatPercent(t.DiscountRate) + ")", Text: FormatMoney(t.Discount.Neg(), sym)})
	}
	if show.Tax {
		b.add(Node{Kind: NodeText, Zone: ZoneTotals, Align: AlignRight, Label: "KDV (" + FormatPercent(t.TaxRate) + ")", Text: FormatMoney(t.Tax, sym)})
	}
	if show.Total {
		b.add(Node{Kind: NodeText, Zone: ZoneTotals, Align: AlignRight, Label: "Genel Toplam", Text: FormatMoney(t.Total, sym), Style: TextStyle{Bold: true, Scale: 120}})
	}
}

func (b *layoutBuilder) notes() {
	if b.schema.ShowNotes {
		b.text(ZoneNotes, AlignLeft, "Notlar", b.doc.Notes, TextStyle{})
	}
	if b.schema.ShowTerms {
		b.text(ZoneNotes, AlignLeft, "Şartlar ve Koşullar", b.doc.Terms, TextStyle{})
	}
}

func (b *layoutBuilder) footer() {
	b.customFields(FieldPositionFooter)
	b.text(ZoneFooter, AlignCenter, "", b.schema.FooterText, TextStyle{Muted: true, Scale: 85})
}

func taxLine(p Party) string {
	switch {
	case p.TaxOffice != "" && p.TaxNumber != "":
		return p.TaxOffice + " V.D. · " + p.TaxNumber
	case p.TaxNumber != "":
		return "VKN/TCKN: " + p.TaxNumber
	}
	return ""
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
