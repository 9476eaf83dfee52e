package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"leadgen-engine/internal/domain"
)

func testProduct() domain.Product {
	now := time.Now().UTC().Truncate(time.Second)
	return domain.Product{
		ID:          uuid.NewString(),
		Name:        "Monitor Pro",
		Description: "Cloud monitoring platform for DevOps teams",
		Metadata: domain.ProductMetadata{
			TargetPersonas: []string{"C-Level", "VP/Director"},
			Industries:     []string{"SaaS"},
			Regions:        []string{"Europe"},
			CompanySize:    "SMB",
			BudgetRange:    "$100-500/mo",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestProductCRUD(t *testing.T) {
	db := testDB(t)
	p := testProduct()

	require.NoError(t, InsertProduct(db, p))

	got, err := GetProduct(db, p.ID)
	require.NoError(t, err)
	require.Equal(t, p.Name, got.Name)
	require.Equal(t, p.Metadata, got.Metadata)
	require.Equal(t, 0, got.LeadCount)

	got.Name = "Monitor Pro v2"
	got.Metadata.BudgetRange = "$500+/mo"
	require.NoError(t, UpdateProduct(db, got))

	updated, err := GetProduct(db, p.ID)
	require.NoError(t, err)
	require.Equal(t, "Monitor Pro v2", updated.Name)
	require.Equal(t, "$500+/mo", updated.Metadata.BudgetRange)

	list, err := ListProducts(db)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, DeleteProduct(db, p.ID))
	_, err = GetProduct(db, p.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestProductNotFound(t *testing.T) {
	db := testDB(t)

	_, err := GetProduct(db, "nope")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, UpdateProduct(db, domain.Product{ID: "nope"}), ErrNotFound)
	require.ErrorIs(t, DeleteProduct(db, "nope"), ErrNotFound)
}

func TestBumpProductLeadCount(t *testing.T) {
	db := testDB(t)
	p := testProduct()
	require.NoError(t, InsertProduct(db, p))

	require.NoError(t, BumpProductLeadCount(db, p.ID))
	require.NoError(t, BumpProductLeadCount(db, p.ID))

	got, err := GetProduct(db, p.ID)
	require.NoError(t, err)
	require.Equal(t, 2, got.LeadCount)

	// No product id: silently a no-op.
	require.NoError(t, BumpProductLeadCount(db, ""))
}
