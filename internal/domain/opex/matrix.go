package opex

import (
	"github.com/isletme/backend/internal/domain/hr"
	"github.com/shopspring/decimal"
)

type cellKey struct {
	category    string
	subcategory string
	month       int
}

type rowKey struct {
	category    string
	subcategory string
}

// Matrix is the category × subcategory × month grid of one year. Manual
// cells come from persisted entries and edits; cells of auto categories are
// the payroll sum of active employees for the mapped field.
//
// Auto cells are the same for every month of the year: the payroll sum is
// not filtered by month or hire date.
//
// A Matrix is not safe for concurrent use.
type Matrix struct {
	year     int
	taxonomy Taxonomy
	manual   map[cellKey]decimal.Decimal
	auto     map[rowKey]decimal.Decimal
}

// NewMatrix folds entries and payroll into a grid for year. Entries for
// other years, unknown taxonomy keys or auto categories are ignored.
func NewMatrix(year int, taxonomy Taxonomy, entries []Entry, employees []hr.Employee) *Matrix {
	m := &Matrix{
		year:     year,
		taxonomy: taxonomy,
		manual:   make(map[cellKey]decimal.Decimal),
	}
	for _, e := range entries {
		if e.Year != year || e.Month < 1 || e.Month > Months {
			continue
		}
		if taxonomy.ValidateEditable(e.Category, e.Subcategory) != nil {
			continue
		}
		m.manual[cellKey{e.Category, e.Subcategory, e.Month}] = e.Amount
	}
	m.SetPayroll(employees)
	return m
}

// Year is the matrix year
func (m *Matrix) Year() int { return m.year }

// Taxonomy is the category tree the matrix is laid out on
func (m *Matrix) Taxonomy() Taxonomy { return m.taxonomy }

// SetPayroll recomputes every auto cell from employees.
func (m *Matrix) SetPayroll(employees []hr.Employee) {
	m.auto = make(map[rowKey]decimal.Decimal)
	for _, c := range m.taxonomy {
		if !c.Auto {
			continue
		}
		for _, s := range c.Subcategories {
			m.auto[rowKey{c.Name, s.Name}] = hr.SumPayrollField(employees, s.PayrollField)
		}
	}
}

// Cell returns the amount of one cell; zero for unknown keys or months.
func (m *Matrix) Cell(category, subcategory string, month int) decimal.Decimal {
	if month < 1 || month > Months {
		return decimal.Zero
	}
	if v, ok := m.auto[rowKey{category, subcategory}]; ok {
		return v
	}
	if v, ok := m.manual[cellKey{category, subcategory, month}]; ok {
		return v
	}
	return decimal.Zero
}

// Set writes a manual cell in the working grid.
func (m *Matrix) Set(category, subcategory string, month int, amount decimal.Decimal) error {
	if month < 1 || month > Months {
		return ErrInvalidMonth
	}
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	if err := m.taxonomy.ValidateEditable(category, subcategory); err != nil {
		return err
	}
	m.manual[cellKey{category, subcategory, month}] = amount
	return nil
}

// CategoryTotal sums a category's subcategories for one month.
func (m *Matrix) CategoryTotal(category string, month int) decimal.Decimal {
	c, ok := m.taxonomy.Category(category)
	if !ok {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, s := range c.Subcategories {
		sum = sum.Add(m.Cell(c.Name, s.Name, month))
	}
	return sum
}

// RowTotal sums one subcategory over the twelve months.
func (m *Matrix) RowTotal(category, subcategory string) decimal.Decimal {
	sum := decimal.Zero
	for month := 1; month <= Months; month++ {
		sum = sum.Add(m.Cell(category, subcategory, month))
	}
	return sum
}

// CategoryYearTotal sums the row totals of a category.
func (m *Matrix) CategoryYearTotal(category string) decimal.Decimal {
	c, ok := m.taxonomy.Category(category)
	if !ok {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, s := range c.Subcategories {
		sum = sum.Add(m.RowTotal(c.Name, s.Name))
	}
	return sum
}

// ColumnTotal sums every category for one month.
func (m *Matrix) ColumnTotal(month int) decimal.Decimal {
	sum := decimal.Zero
	for _, c := range m.taxonomy {
		sum = sum.Add(m.CategoryTotal(c.Name, month))
	}
	return sum
}

// GrandTotal sums the column totals.
func (m *Matrix) GrandTotal() decimal.Decimal {
	sum := decimal.Zero
	for month := 1; month <= Months; month++ {
		sum = sum.Add(m.ColumnTotal(month))
	}
	return sum
}

// GrandTotalByRows sums the row totals. It always equals GrandTotal.
func (m *Matrix) GrandTotalByRows() decimal.Decimal {
	sum := decimal.Zero
	for _, c := range m.taxonomy {
		for _, s := range c.Subcategories {
			sum = sum.Add(m.RowTotal(c.Name, s.Name))
		}
	}
	return sum
}

// Cell is one addressable amount of the grid
type Cell struct {
	Key
	Amount decimal.Decimal
}

// ManualCells lists the non-zero editable cells in taxonomy and month order.
func (m *Matrix) ManualCells() []Cell {
	var out []Cell
	for _, c := range m.taxonomy {
		if c.Auto {
			continue
		}
		for _, s := range c.Subcategories {
			for month := 1; month <= Months; month++ {
				v, ok := m.manual[cellKey{c.Name, s.Name, month}]
				if !ok || v.IsZero() {
					continue
				}
				out = append(out, Cell{
					Key:    Key{Year: m.year, Month: month, Category: c.Name, Subcategory: s.Name},
					Amount: v,
				})
			}
		}
	}
	return out
}
