package opex

import "github.com/shopspring/decimal"

// RowView is one subcategory line of the rendered grid
type RowView struct {
	Subcategory string            `json:"subcategory"`
	Months      []decimal.Decimal `json:"months"`
	Total       decimal.Decimal   `json:"total"`
}

// CategoryView is a category block with its rows and month totals
type CategoryView struct {
	Category    string            `json:"category"`
	Auto        bool              `json:"auto"`
	Rows        []RowView         `json:"rows"`
	MonthTotals []decimal.Decimal `json:"month_totals"`
	YearTotal   decimal.Decimal   `json:"year_total"`
}

// View is the fully computed grid served to clients and exporters
type View struct {
	Year         int               `json:"year"`
	Categories   []CategoryView    `json:"categories"`
	ColumnTotals []decimal.Decimal `json:"column_totals"`
	GrandTotal   decimal.Decimal   `json:"grand_total"`
}

// View computes every cell and total of the grid.
func (m *Matrix) View() View {
	v := View{
		Year:         m.year,
		Categories:   make([]CategoryView, 0, len(m.taxonomy)),
		ColumnTotals: make([]decimal.Decimal, Months),
		GrandTotal:   m.GrandTotal(),
	}
	for month := 1; month <= Months; month++ {
		v.ColumnTotals[month-1] = m.ColumnTotal(month)
	}
	for _, c := range m.taxonomy {
		cv := CategoryView{
			Category:    c.Name,
			Auto:        c.Auto,
			Rows:        make([]RowView, 0, len(c.Subcategories)),
			MonthTotals: make([]decimal.Decimal, Months),
			YearTotal:   m.CategoryYearTotal(c.Name),
		}
		for month := 1; month <= Months; month++ {
			cv.MonthTotals[month-1] = m.CategoryTotal(c.Name, month)
		}
		for _, s := range c.Subcategories {
			row := RowView{
				Subcategory: s.Name,
				Months:      make([]decimal.Decimal, Months),
				Total:       m.RowTotal(c.Name, s.Name),
			}
			for month := 1; month <= Months; month++ {
				row.Months[month-1] = m.Cell(c.Name, s.Name, month)
			}
			cv.Rows = append(cv.Rows, row)
		}
		v.Categories = append(v.Categories, cv)
	}
	return v
}

// MonthNames are the Turkish month names used as column headers
var MonthNames = [Months]string{
	"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
	"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
}
