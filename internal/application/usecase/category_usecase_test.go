package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/expiry-monitor/internal/application/dto"
	"github.com/tu-usuario/expiry-monitor/internal/application/usecase"
	"github.com/tu-usuario/expiry-monitor/internal/domain"
)

func newCategoryUC() (*usecase.CategoryUseCase, *fakeCategoryRepo, *fakeItemRepo) {
	cats := newFakeCategoryRepo()
	items := newFakeItemRepo(cats)
	return usecase.NewCategoryUseCase(cats, &fakeTxRunner{repo: cats}), cats, items
}

// ──────────────────────────────────────────────────────────────────────────────
// Create / unicidad por usuario
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryCreate_NombreDuplicado(t *testing.T) {
	uc, _, _ := newCategoryUC()

	_, err := uc.Create(userA, dto.CreateCategoryRequest{Name: "Lácteos"})
	require.NoError(t, err)

	_, err = uc.Create(userA, dto.CreateCategoryRequest{Name: "Lácteos"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el nombre es único por usuario")
}

// El mismo nombre en usuarios distintos es válido: la unicidad es por usuario.
func TestCategoryCreate_MismoNombreOtroUsuario(t *testing.T) {
	uc, _, _ := newCategoryUC()

	_, err := uc.Create(userA, dto.CreateCategoryRequest{Name: "Lácteos"})
	require.NoError(t, err)
	_, err = uc.Create(userB, dto.CreateCategoryRequest{Name: "Lácteos"})
	assert.NoError(t, err)
}

func TestCategoryCreate_NombreObligatorio(t *testing.T) {
	uc, _, _ := newCategoryUC()

	_, err := uc.Create(userA, dto.CreateCategoryRequest{Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryUpdate_RenombrarAChocaConExistente(t *testing.T) {
	uc, _, _ := newCategoryUC()

	_, err := uc.Create(userA, dto.CreateCategoryRequest{Name: "Lácteos"})
	require.NoError(t, err)
	cb, err := uc.Create(userA, dto.CreateCategoryRequest{Name: "Bebidas"})
	require.NoError(t, err)

	nombre := "Lácteos"
	_, err = uc.Update(userA, cb.ID, dto.UpdateCategoryRequest{Name: &nombre})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// Renombrar al mismo nombre no choca consigo misma.
func TestCategoryUpdate_MismoNombreEsNoOp(t *testing.T) {
	uc, _, _ := newCategoryUC()

	c, err := uc.Create(userA, dto.CreateCategoryRequest{Name: "Lácteos", Description: "frío"})
	require.NoError(t, err)

	nombre := "Lácteos"
	resp, err := uc.Update(userA, c.ID, dto.UpdateCategoryRequest{Name: &nombre})
	require.NoError(t, err)
	assert.Equal(t, "Lácteos", resp.Name)
	assert.Equal(t, "frío", resp.Description, "la descripción no se toca si no viene")
}

func TestCategoryUpdate_InexistenteDevuelveNil(t *testing.T) {
	uc, _, _ := newCategoryUC()

	resp, err := uc.Update(userA, "no-existe", dto.UpdateCategoryRequest{})
	require.NoError(t, err)
	assert.Nil(t, resp)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete / detach
// ──────────────────────────────────────────────────────────────────────────────

// Al borrar la categoría sus items sobreviven sin categoría.
func TestCategoryDelete_DesasociaItems(t *testing.T) {
	uc, cats, items := newCategoryUC()
	itemUC := usecase.NewItemUseCase(items, cats)

	c, err := uc.Create(userA, dto.CreateCategoryRequest{Name: "Lácteos"})
	require.NoError(t, err)

	created, err := itemUC.Create(userA, dto.CreateItemRequest{
		SKU: "LECHE", Description: "d", Expiry: "2026-12-01", Quantity: 1, Category: &c.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, created.Category)

	require.NoError(t, uc.Delete(userA, c.ID))

	it, err := itemUC.GetByID(userA, created.ID)
	require.NoError(t, err)
	assert.Nil(t, it.Category, "el item queda sin categoría, no se borra")

	list, err := uc.List(userA)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCategoryDelete_AjenaDevuelveNotFound(t *testing.T) {
	uc, _, _ := newCategoryUC()

	c, err := uc.Create(userA, dto.CreateCategoryRequest{Name: "Lácteos"})
	require.NoError(t, err)

	err = uc.Delete(userB, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
