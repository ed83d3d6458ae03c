package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isletme/backend/internal/domain/crm"
	"github.com/isletme/backend/internal/domain/shared"
)

func newCustomer(t *testing.T, tenantID uuid.UUID, name, city string) *crm.Customer {
	t.Helper()
	c, err := crm.NewCustomer(tenantID, crm.CustomerInput{Name: name, City: city, Email: "info@" + city + ".example"})
	require.NoError(t, err)
	return c
}

func TestGormRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewGormCustomerRepository(newTestDB(t))
	tenantID := uuid.New()

	c := newCustomer(t, tenantID, "Anadolu Makine", "ankara")
	require.NoError(t, repo.Create(ctx, c))

	got, err := repo.FindByID(ctx, tenantID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anadolu Makine", got.Name)
	assert.Equal(t, crm.CustomerStatusActive, got.Status)

	require.NoError(t, got.Update(crm.CustomerInput{Name: "Anadolu Makine A.Ş.", City: "izmir", Status: "potential"}))
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.FindByID(ctx, tenantID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anadolu Makine A.Ş.", got.Name)
	assert.Equal(t, crm.CustomerStatusPotential, got.Status)
	assert.Empty(t, got.Email, "update writes blank columns too")

	require.NoError(t, repo.Delete(ctx, tenantID, c.ID))
	_, err = repo.FindByID(ctx, tenantID, c.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, tenantID, c.ID), shared.ErrNotFound)
}

func TestGormRepository_TenantIsolation(t *testing.T) {
	ctx := context.Background()
	repo := NewGormCustomerRepository(newTestDB(t))
	owner, other := uuid.New(), uuid.New()

	c := newCustomer(t, owner, "Ege Tekstil", "izmir")
	require.NoError(t, repo.Create(ctx, c))

	_, err := repo.FindByID(ctx, other, c.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, other, c.ID), shared.ErrNotFound)

	c.TenantID = other
	c.Name = "hijacked"
	assert.ErrorIs(t, repo.Update(ctx, c), shared.ErrNotFound)

	n, err := repo.Count(ctx, other, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestGormRepository_FindAllFilterSortPage(t *testing.T) {
	ctx := context.Background()
	repo := NewGormCustomerRepository(newTestDB(t))
	tenantID := uuid.New()

	for _, n := range []struct{ name, city string }{
		{"Cem Ltd", "ankara"},
		{"Ahmet Tic", "ankara"},
		{"Berk 100% Gıda", "izmir"},
	} {
		require.NoError(t, repo.Create(ctx, newCustomer(t, tenantID, n.name, n.city)))
	}

	f := shared.DefaultFilter()
	f.OrderBy = "name"
	f.OrderDir = "asc"
	all, err := repo.FindAll(ctx, tenantID, f)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Ahmet Tic", all[0].Name)

	byCity := f.With("city", "ankara")
	list, err := repo.FindAll(ctx, tenantID, byCity)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	n, err := repo.Count(ctx, tenantID, byCity)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	paged := f
	paged.PageSize = 2
	paged.Page = 2
	list, err = repo.FindAll(ctx, tenantID, paged)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Cem Ltd", list[0].Name)

	search := f
	search.Search = "100%"
	list, err = repo.FindAll(ctx, tenantID, search)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Berk 100% Gıda", list[0].Name)

	_, err = repo.FindAll(ctx, tenantID, f.With("password_hash", "x"))
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "password_hash", de.Field)

	f.OrderBy = "name; DROP TABLE customers"
	_, err = repo.FindAll(ctx, tenantID, f)
	assert.NoError(t, err, "unknown sort columns fall back to the default")
}

func TestGormCustomerRepository_Search(t *testing.T) {
	ctx := context.Background()
	repo := NewGormCustomerRepository(newTestDB(t))
	tenantID := uuid.New()
	require.NoError(t, repo.Create(ctx, newCustomer(t, tenantID, "Marmara Lojistik", "istanbul")))
	require.NoError(t, repo.Create(ctx, newCustomer(t, tenantID, "Karadeniz Gida", "trabzon")))

	got, err := repo.Search(ctx, tenantID, "LOJIST", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Marmara Lojistik", got[0].Name)

	got, err = repo.Search(ctx, tenantID, "trabzon.example", 10)
	require.NoError(t, err)
	assert.Len(t, got, 1, "email matches")

	got, err = repo.Search(ctx, tenantID, "", 0)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
