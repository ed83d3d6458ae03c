package opex

import "github.com/isletme/backend/internal/domain/hr"

// Subcategory is one row of the matrix. Rows of an auto-populated category
// carry the payroll column they are derived from.
type Subcategory struct {
	Name         string          `json:"name"`
	PayrollField hr.PayrollField `json:"payroll_field,omitempty"`
}

// Category groups subcategories. Auto categories are computed from payroll
// and cannot be edited by hand.
type Category struct {
	Name          string        `json:"name"`
	Auto          bool          `json:"auto"`
	Subcategories []Subcategory `json:"subcategories"`
}

// Category names
const (
	CategoryPersonnel   = "Personel Giderleri"
	CategoryOperational = "Operasyonel Giderler"
	CategoryMarketing   = "Pazarlama Giderleri"
	CategoryVehicle     = "Araç Giderleri"
	CategoryFinancial   = "Finansal Giderler"
	CategoryGeneral     = "Genel Yönetim Giderleri"
)

// Taxonomy is the fixed category tree in display order
type Taxonomy []Category

// DefaultTaxonomy is the category tree every tenant uses
var DefaultTaxonomy = Taxonomy{
	{
		Name: CategoryPersonnel,
		Auto: true,
		Subcategories: []Subcategory{
			{Name: "Brüt Maaşlar", PayrollField: hr.PayrollGrossSalary},
			{Name: "Net Maaşlar", PayrollField: hr.PayrollNetSalary},
			{Name: "SGK İşveren Payı", PayrollField: hr.PayrollSGKEmployerShare},
			{Name: "İşsizlik Sigortası İşveren Payı", PayrollField: hr.PayrollUnemploymentEmployerShare},
			{Name: "Yemek Yardımı", PayrollField: hr.PayrollMealAllowance},
			{Name: "Yol Yardımı", PayrollField: hr.PayrollTransportAllowance},
		},
	},
	{
		Name:          CategoryOperational,
		Subcategories: subs("Kira", "Elektrik", "Su", "Doğalgaz", "İnternet ve Telefon", "Temizlik", "Kırtasiye"),
	},
	{
		Name:          CategoryMarketing,
		Subcategories: subs("Dijital Reklam", "Sosyal Medya", "Fuar ve Etkinlik", "Basılı Materyal", "Promosyon"),
	},
	{
		Name:          CategoryVehicle,
		Subcategories: subs("Yakıt", "Bakım ve Onarım", "Kasko", "Trafik Sigortası", "Otopark ve HGS"),
	},
	{
		Name:          CategoryFinancial,
		Subcategories: subs("Banka Masrafları", "Kredi Faizleri", "POS Komisyonları", "Kur Farkı"),
	},
	{
		Name:          CategoryGeneral,
		Subcategories: subs("Muhasebe", "Hukuk ve Danışmanlık", "Yazılım Lisansları", "Sigorta", "Vergi ve Harçlar", "Diğer"),
	},
}

func subs(names ...string) []Subcategory {
	out := make([]Subcategory, len(names))
	for i, n := range names {
		out[i] = Subcategory{Name: n}
	}
	return out
}

// Category looks a category up by name
func (t Taxonomy) Category(name string) (Category, bool) {
	for _, c := range t {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// HasSubcategory reports whether sub belongs to the category
func (c Category) HasSubcategory(sub string) bool {
	for _, s := range c.Subcategories {
		if s.Name == sub {
			return true
		}
	}
	return false
}

// ValidateEditable checks that (category, subcategory) exists and accepts
// manual amounts.
func (t Taxonomy) ValidateEditable(category, subcategory string) error {
	c, ok := t.Category(category)
	if !ok {
		return ErrUnknownCategory
	}
	if !c.HasSubcategory(subcategory) {
		return ErrUnknownSubcategory
	}
	if c.Auto {
		return ErrAutoCategory
	}
	return nil
}
