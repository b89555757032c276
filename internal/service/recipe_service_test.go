package service

import (
	"testing"

	"github.com/Mervedgan/uretim-takip-sistemi/internal/apperr"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/entity"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/repository"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ppProducts() []entity.Product {
	inj := []int{200, 210, 220}
	mold := []int{40, 50, 60}
	cycle := []int{20, 20, 20}
	weight := 10
	cavities := 2

	products := make([]entity.Product, 3)
	for i := range products {
		material := "PP"
		products[i] = entity.Product{
			Material:       &material,
			InjectionTempC: &inj[i],
			MoldTempC:      &mold[i],
			CycleTimeSec:   &cycle[i],
			PartWeightG:    &weight,
			CavityCount:    &cavities,
		}
	}
	return products
}

func TestEstimateFromProductsNeutralFactors(t *testing.T) {
	// Requested weight and cavity count equal the fleet means, so both
	// factors are 1 and the estimate is the plain average.
	values := estimateFromProducts(ppProducts(), 10, 2)

	assert.Equal(t, 210.0, values.InjectionTempC)
	assert.Equal(t, 50.0, values.MoldTempC)
	assert.Equal(t, 20.0, values.CycleTimeSec)
}

func TestEstimateFromProductsWeightFactor(t *testing.T) {
	// Double the mean weight: factor = 0.7 + 0.3*2 = 1.3.
	values := estimateFromProducts(ppProducts(), 20, 2)
	assert.Equal(t, 26.0, values.CycleTimeSec)

	// Temperatures are never scaled.
	assert.Equal(t, 210.0, values.InjectionTempC)
	assert.Equal(t, 50.0, values.MoldTempC)
}

func TestEstimateFromProductsCavityFactor(t *testing.T) {
	// Double the mean cavities: factor = 0.8 + 0.2*2 = 1.2.
	values := estimateFromProducts(ppProducts(), 10, 4)
	assert.Equal(t, 24.0, values.CycleTimeSec)
}

func TestEstimateFromProductsBothFactors(t *testing.T) {
	// Weight then cavity: 20 * 1.3 * 1.2 = 31.2.
	values := estimateFromProducts(ppProducts(), 20, 4)
	assert.Equal(t, 31.2, values.CycleTimeSec)
}

func TestEstimateFromProductsMissingAuxData(t *testing.T) {
	// Without stored weights and cavities no scaling applies.
	products := ppProducts()
	for i := range products {
		products[i].PartWeightG = nil
		products[i].CavityCount = nil
	}
	values := estimateFromProducts(products, 500, 16)
	assert.Equal(t, 20.0, values.CycleTimeSec)
}

func TestSimilarNames(t *testing.T) {
	names := []string{"Kapak Beyaz", "Kapak Siyah", "Gövde Alt", "Gövde Üst", "Vida Kutusu"}

	// Substring containment.
	assert.Equal(t, []string{"Kapak Beyaz", "Kapak Siyah"}, SimilarNames("kapak", names, 5))

	// Query containing a known name.
	assert.Contains(t, SimilarNames("gövde alt parça", names, 5), "Gövde Alt")

	// Token match requires at least 3 runes.
	assert.Empty(t, SimilarNames("xy", names, 5))

	// Limit is honored.
	assert.Len(t, SimilarNames("kapak", names, 1), 1)
}

func TestResolveExactMatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SeedProduct(t, db, "P-001", "Kapak Beyaz", "PP", 210, 50, 20)
	svc := NewRecipeService(repository.NewProductRepository(db))

	// Lookup is case-insensitive.
	result, err := svc.Resolve("kapak beyaz")
	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.Equal(t, RecipeSourceDatabase, result.Source)
	require.NotNil(t, result.Values)
	assert.Equal(t, 210.0, result.Values.InjectionTempC)
	assert.Equal(t, 50.0, result.Values.MoldTempC)
	assert.Equal(t, 20.0, result.Values.CycleTimeSec)
}

func TestResolveIncompleteProduct(t *testing.T) {
	db := testutil.SetupTestDB(t)
	p := &entity.Product{Code: "P-002", Name: "Gövde Alt"}
	require.NoError(t, db.Create(p).Error)
	svc := NewRecipeService(repository.NewProductRepository(db))

	// An existing product with missing parameters does not fall through to
	// estimation; the caller is asked to complete the product.
	result, err := svc.Resolve("Gövde Alt")
	require.NoError(t, err)
	assert.False(t, result.Found)
	assert.Equal(t, RecipeSourceDatabase, result.Source)
	assert.Nil(t, result.Values)
	assert.Contains(t, result.Message, "incomplete")
}

func TestResolveNoMatchSuggests(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SeedProduct(t, db, "P-003", "Kapak Beyaz", "PP", 210, 50, 20)
	svc := NewRecipeService(repository.NewProductRepository(db))

	result, err := svc.Resolve("kapak kırmızı")
	require.NoError(t, err)
	assert.False(t, result.Found)
	assert.Empty(t, result.Source)
	assert.Contains(t, result.SimilarProducts, "Kapak Beyaz")
}

func TestResolveEmptyName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewRecipeService(repository.NewProductRepository(db))

	_, err := svc.Resolve("   ")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindInvalidArgument))
}

func TestEstimateByMaterial(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SeedProduct(t, db, "P-010", "A", "PP", 200, 40, 20)
	testutil.SeedProduct(t, db, "P-011", "B", "PP", 220, 60, 20)
	svc := NewRecipeService(repository.NewProductRepository(db))

	estimate, err := svc.EstimateByMaterial("PP", 10, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, estimate.SourceProducts)
	assert.Equal(t, 210.0, estimate.Values.InjectionTempC)
	assert.Equal(t, 50.0, estimate.Values.MoldTempC)

	_, err = svc.EstimateByMaterial("ABS", 10, 2)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNoData))

	_, err = svc.EstimateByMaterial("PP", -5, 2)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindInvalidArgument))

	_, err = svc.EstimateByMaterial("PP", 10, 0)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindInvalidArgument))
}
