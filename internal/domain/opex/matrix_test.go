package opex

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/isletme/backend/internal/domain/hr"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func employee(active bool, gross, net, sgk, unemp, meal, transport int64) hr.Employee {
	return hr.Employee{
		IsActive: active,
		Payroll: hr.Payroll{
			GrossSalary:               dec(gross),
			NetSalary:                 dec(net),
			SGKEmployerShare:          dec(sgk),
			UnemploymentEmployerShare: dec(unemp),
			MealAllowance:             dec(meal),
			TransportAllowance:        dec(transport),
		},
	}
}

func testEmployees() []hr.Employee {
	return []hr.Employee{
		employee(true, 40000, 30000, 6200, 800, 1500, 800),
		employee(true, 25000, 19000, 3875, 500, 1500, 0),
		employee(false, 90000, 60000, 13950, 1800, 1500, 800),
	}
}

func entry(year, month int, cat, sub string, amount int64) Entry {
	return Entry{Key: Key{Year: year, Month: month, Category: cat, Subcategory: sub}, Amount: dec(amount)}
}

func TestMatrix_AutoCategoryIsMonthInvariant(t *testing.T) {
	m := NewMatrix(2025, DefaultTaxonomy, nil, testEmployees())
	personnel, ok := DefaultTaxonomy.Category(CategoryPersonnel)
	require.True(t, ok)

	// Sum of every mapped payroll field over the two active employees.
	want := dec(40000 + 30000 + 6200 + 800 + 1500 + 800 + 25000 + 19000 + 3875 + 500 + 1500 + 0)

	for month := 1; month <= Months; month++ {
		assert.True(t, m.CategoryTotal(CategoryPersonnel, month).Equal(want), "month %d", month)
		for _, s := range personnel.Subcategories {
			assert.True(t, m.Cell(CategoryPersonnel, s.Name, month).Equal(m.Cell(CategoryPersonnel, s.Name, 1)))
		}
	}
	assert.True(t, m.Cell(CategoryPersonnel, "Net Maaşlar", 7).Equal(dec(49000)))
	assert.True(t, m.RowTotal(CategoryPersonnel, "Net Maaşlar").Equal(dec(49000*12)))
}

func TestMatrix_AutoCategoryIgnoresPersistedEntries(t *testing.T) {
	entries := []Entry{entry(2025, 1, CategoryPersonnel, "Net Maaşlar", 1)}
	m := NewMatrix(2025, DefaultTaxonomy, entries, testEmployees())
	assert.True(t, m.Cell(CategoryPersonnel, "Net Maaşlar", 1).Equal(dec(49000)))
}

func TestMatrix_RowTotalOfManualCells(t *testing.T) {
	entries := []Entry{
		entry(2025, 1, CategoryOperational, "Elektrik", 1200),
		entry(2025, 2, CategoryOperational, "Elektrik", 1100),
		entry(2025, 12, CategoryOperational, "Elektrik", 1700),
		entry(2024, 3, CategoryOperational, "Elektrik", 999999),
	}
	m := NewMatrix(2025, DefaultTaxonomy, entries, nil)

	assert.True(t, m.RowTotal(CategoryOperational, "Elektrik").Equal(dec(4000)))
	assert.True(t, m.RowTotal(CategoryOperational, "Su").IsZero())
	assert.True(t, m.Cell(CategoryOperational, "Elektrik", 3).IsZero())
	assert.True(t, m.Cell(CategoryOperational, "Elektrik", 13).IsZero())
}

func TestMatrix_RentScenario(t *testing.T) {
	var entries []Entry
	for month := 1; month <= Months; month++ {
		entries = append(entries, entry(2025, month, CategoryOperational, "Kira", 1000))
	}
	m := NewMatrix(2025, DefaultTaxonomy, entries, nil)

	assert.True(t, m.RowTotal(CategoryOperational, "Kira").Equal(dec(12000)))
	for month := 1; month <= Months; month++ {
		assert.True(t, m.CategoryTotal(CategoryOperational, month).GreaterThanOrEqual(dec(1000)))
		assert.True(t, m.ColumnTotal(month).GreaterThanOrEqual(dec(1000)))
	}
}

func TestMatrix_GrandTotalPaths(t *testing.T) {
	entries := []Entry{
		entry(2025, 1, CategoryOperational, "Kira", 15000),
		entry(2025, 4, CategoryMarketing, "Dijital Reklam", 3250),
		entry(2025, 4, CategoryVehicle, "Yakıt", 4100),
		entry(2025, 9, CategoryFinancial, "Kredi Faizleri", 8000),
		entry(2025, 11, CategoryGeneral, "Muhasebe", 2500),
	}
	m := NewMatrix(2025, DefaultTaxonomy, entries, testEmployees())

	byCategoryMonth := decimal.Zero
	for _, c := range DefaultTaxonomy {
		for month := 1; month <= Months; month++ {
			byCategoryMonth = byCategoryMonth.Add(m.CategoryTotal(c.Name, month))
		}
	}
	byCategoryYear := decimal.Zero
	for _, c := range DefaultTaxonomy {
		byCategoryYear = byCategoryYear.Add(m.CategoryYearTotal(c.Name))
	}

	assert.True(t, m.GrandTotal().Equal(byCategoryMonth))
	assert.True(t, m.GrandTotal().Equal(m.GrandTotalByRows()))
	assert.True(t, m.GrandTotal().Equal(byCategoryYear))

	manual := dec(15000 + 3250 + 4100 + 8000 + 2500)
	personnel := dec(129175 * 12)
	assert.True(t, m.GrandTotal().Equal(manual.Add(personnel)), m.GrandTotal().String())
}

func TestMatrix_Set(t *testing.T) {
	m := NewMatrix(2025, DefaultTaxonomy, nil, nil)

	require.NoError(t, m.Set(CategoryOperational, "Kira", 3, dec(500)))
	assert.True(t, m.Cell(CategoryOperational, "Kira", 3).Equal(dec(500)))

	tests := []struct {
		name  string
		cat   string
		sub   string
		month int
		amt   decimal.Decimal
		want  error
	}{
		{"auto category", CategoryPersonnel, "Net Maaşlar", 1, dec(1), ErrAutoCategory},
		{"unknown category", "Seyahat", "Otel", 1, dec(1), ErrUnknownCategory},
		{"unknown subcategory", CategoryOperational, "Otel", 1, dec(1), ErrUnknownSubcategory},
		{"month zero", CategoryOperational, "Kira", 0, dec(1), ErrInvalidMonth},
		{"month thirteen", CategoryOperational, "Kira", 13, dec(1), ErrInvalidMonth},
		{"negative", CategoryOperational, "Kira", 1, dec(-1), ErrNegativeAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.Set(tt.cat, tt.sub, tt.month, tt.amt)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestMatrix_ManualCells(t *testing.T) {
	entries := []Entry{
		entry(2025, 2, CategoryMarketing, "Sosyal Medya", 700),
		entry(2025, 1, CategoryOperational, "Kira", 1000),
		entry(2025, 5, CategoryOperational, "Su", 0),
	}
	m := NewMatrix(2025, DefaultTaxonomy, entries, testEmployees())

	cells := m.ManualCells()
	require.Len(t, cells, 2)
	assert.Equal(t, Key{Year: 2025, Month: 1, Category: CategoryOperational, Subcategory: "Kira"}, cells[0].Key)
	assert.Equal(t, Key{Year: 2025, Month: 2, Category: CategoryMarketing, Subcategory: "Sosyal Medya"}, cells[1].Key)
}

func TestMatrix_View(t *testing.T) {
	entries := []Entry{entry(2025, 6, CategoryOperational, "Kira", 1000)}
	m := NewMatrix(2025, DefaultTaxonomy, entries, nil)
	v := m.View()

	require.Len(t, v.Categories, len(DefaultTaxonomy))
	require.Len(t, v.ColumnTotals, Months)
	op := v.Categories[1]
	assert.Equal(t, CategoryOperational, op.Category)
	assert.False(t, op.Auto)
	assert.True(t, op.Rows[0].Months[5].Equal(dec(1000)))
	assert.True(t, op.MonthTotals[5].Equal(dec(1000)))
	assert.True(t, v.ColumnTotals[5].Equal(dec(1000)))
	assert.True(t, v.GrandTotal.Equal(dec(1000)))
	assert.True(t, v.Categories[0].Auto)
}

func TestNewEntry(t *testing.T) {
	tenantID := uuid.New()
	e, err := NewEntry(tenantID, Key{Year: 2025, Month: 1, Category: CategoryOperational, Subcategory: "Kira"}, dec(10))
	require.NoError(t, err)
	assert.Equal(t, tenantID, e.TenantID)

	_, err = NewEntry(tenantID, Key{Year: 1999, Month: 1}, dec(10))
	assert.ErrorIs(t, err, ErrInvalidYear)
	_, err = NewEntry(tenantID, Key{Year: 2025, Month: 1}, dec(-10))
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestTaxonomy_Shape(t *testing.T) {
	require.Len(t, DefaultTaxonomy, 6)
	autos := 0
	for _, c := range DefaultTaxonomy {
		assert.LessOrEqual(t, len(c.Subcategories), 7, c.Name)
		if c.Auto {
			autos++
			for _, s := range c.Subcategories {
				assert.NotEmpty(t, s.PayrollField, s.Name)
			}
		}
	}
	assert.Equal(t, 1, autos)
}
