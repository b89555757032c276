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

func setupProductService(t *testing.T) *ProductService {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewProductService(
		repository.NewProductRepository(db),
		repository.NewMoldRepository(db),
	)
}

func TestProductCreateDuplicateCode(t *testing.T) {
	svc := setupProductService(t)

	_, err := svc.Create(CreateProductRequest{Code: "P-100", Name: "Kapak"})
	require.NoError(t, err)

	_, err = svc.Create(CreateProductRequest{Code: "P-100", Name: "Başka"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindConflict))
}

func TestProductPatchSemantics(t *testing.T) {
	svc := setupProductService(t)

	material := "PP"
	created, err := svc.Create(CreateProductRequest{
		Code:     "P-101",
		Name:     "Kapak",
		Material: &material,
	})
	require.NoError(t, err)

	// Absent fields are untouched, values overwrite, explicit null clears.
	updated, err := svc.Update(created.ID, ProductPatch{
		Name:        entity.PatchValue("Kapak v2"),
		Material:    entity.PatchNull[string](),
		CavityCount: entity.PatchValue(4),
	})
	require.NoError(t, err)
	assert.Equal(t, "Kapak v2", updated.Name)
	assert.Nil(t, updated.Material)
	require.NotNil(t, updated.CavityCount)
	assert.Equal(t, 4, *updated.CavityCount)

	// An empty patch changes nothing.
	unchanged, err := svc.Update(created.ID, ProductPatch{})
	require.NoError(t, err)
	assert.Equal(t, "Kapak v2", unchanged.Name)
	assert.Equal(t, 4, *unchanged.CavityCount)
}

func TestProductSoftDeleteAndRestore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	productRepo := repository.NewProductRepository(db)
	moldRepo := repository.NewMoldRepository(db)
	svc := NewProductService(productRepo, moldRepo)

	created, err := svc.Create(CreateProductRequest{Code: "P-102", Name: "Gövde"})
	require.NoError(t, err)

	// A mold referencing the product shows up in the delete report.
	mold := &entity.Mold{Code: "M-102", Name: "Gövde Kalıbı", ProductID: &created.ID, Status: entity.ResourceStatusActive}
	require.NoError(t, moldRepo.Create(mold))

	result, err := svc.Delete(created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.RelatedActiveMolds)

	// Deleted products disappear from reads and repeat deletes.
	_, err = svc.GetByID(created.ID)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = svc.Delete(created.ID)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	restored, err := svc.Restore(created.ID)
	require.NoError(t, err)
	assert.Nil(t, restored.DeletedAt)

	// Restoring an active product is a precondition failure.
	_, err = svc.Restore(created.ID)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindPreconditionFailed))
}

func TestProductListSkipsDeleted(t *testing.T) {
	svc := setupProductService(t)

	a, err := svc.Create(CreateProductRequest{Code: "P-103", Name: "A"})
	require.NoError(t, err)
	_, err = svc.Create(CreateProductRequest{Code: "P-104", Name: "B"})
	require.NoError(t, err)

	_, err = svc.Delete(a.ID)
	require.NoError(t, err)

	products, err := svc.List()
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "B", products[0].Name)
}
