package usecase_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/expiry-monitor/internal/application/dto"
	"github.com/tu-usuario/expiry-monitor/internal/application/usecase"
	"github.com/tu-usuario/expiry-monitor/internal/domain"
	"github.com/tu-usuario/expiry-monitor/internal/domain/entity"
)

const (
	userA = "00000000-0000-0000-0000-00000000000a"
	userB = "00000000-0000-0000-0000-00000000000b"
)

func newItemUC() (*usecase.ItemUseCase, *fakeItemRepo, *fakeCategoryRepo) {
	cats := newFakeCategoryRepo()
	items := newFakeItemRepo(cats)
	return usecase.NewItemUseCase(items, cats), items, cats
}

func dateStr(t time.Time) string { return t.Format("2006-01-02") }

func seedCategory(cats *fakeCategoryRepo, id, userID, name string) {
	cats.byID[id] = &entity.Category{ID: id, UserID: userID, Name: name}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_ProductoValido(t *testing.T) {
	uc, _, _ := newItemUC()

	resp, err := uc.Create(userA, dto.CreateItemRequest{
		SKU: "LECHE-1L", Description: "Leche entera", Expiry: "2026-10-15", Quantity: 12,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID, "el id se asigna en el servidor")
	assert.Equal(t, "LECHE-1L", resp.SKU)
	assert.Equal(t, 12, resp.Quantity)
	assert.Nil(t, resp.Category, "sin categoría el campo viaja en null")
}

// La respuesta del create trae la categoría poblada, igual que list/get.
func TestCreate_RespuestaConCategoriaPoblada(t *testing.T) {
	uc, _, cats := newItemUC()
	seedCategory(cats, "cat-a", userA, "Lácteos")

	catID := "cat-a"
	resp, err := uc.Create(userA, dto.CreateItemRequest{
		SKU: "LECHE-1L", Description: "Leche entera", Expiry: "2026-10-15", Quantity: 12, Category: &catID,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Category)
	assert.Equal(t, "cat-a", resp.Category.ID)
	assert.Equal(t, "Lácteos", resp.Category.Name)
}

func TestCreate_CamposObligatorios(t *testing.T) {
	uc, _, _ := newItemUC()

	casos := []dto.CreateItemRequest{
		{Description: "sin sku", Expiry: "2026-10-15", Quantity: 1},
		{SKU: "X", Expiry: "2026-10-15", Quantity: 1},
		{SKU: "X", Description: "sin fecha", Quantity: 1},
		{SKU: "X", Description: "fecha rota", Expiry: "15/10/2026", Quantity: 1},
		{SKU: "X", Description: "negativo", Expiry: "2026-10-15", Quantity: -3},
	}
	for i, in := range casos {
		_, err := uc.Create(userA, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "caso %d debe rechazarse", i)
	}
}

// Dos lotes del mismo SKU con meses distintos conviven: el duplicado se
// detecta con el probe, no en la creación.
func TestCreate_MismoSKUOtroMesPermitido(t *testing.T) {
	uc, _, _ := newItemUC()

	_, err := uc.Create(userA, dto.CreateItemRequest{
		SKU: "YOGUR", Description: "Lote octubre", Expiry: "2026-10-01", Quantity: 5,
	})
	require.NoError(t, err)
	_, err = uc.Create(userA, dto.CreateItemRequest{
		SKU: "YOGUR", Description: "Lote noviembre", Expiry: "2026-11-01", Quantity: 5,
	})
	require.NoError(t, err)

	list, err := uc.List(userA)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestCreate_CategoriaAjenaRechazada(t *testing.T) {
	uc, _, cats := newItemUC()
	seedCategory(cats, "cat-b", userB, "Lácteos de B")

	catID := "cat-b"
	_, err := uc.Create(userA, dto.CreateItemRequest{
		SKU: "X", Description: "d", Expiry: "2026-10-15", Quantity: 1, Category: &catID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "una categoría de otro usuario no se puede asignar")
}

// ──────────────────────────────────────────────────────────────────────────────
// CheckDuplicate
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckDuplicate_MismoMes(t *testing.T) {
	uc, _, _ := newItemUC()

	created, err := uc.Create(userA, dto.CreateItemRequest{
		SKU: "PAN", Description: "Pan molde", Expiry: "2026-10-05", Quantity: 2,
	})
	require.NoError(t, err)

	// Otro día del mismo mes cuenta como duplicado.
	resp, err := uc.CheckDuplicate(userA, "PAN", "2026-10-28")
	require.NoError(t, err)
	assert.True(t, resp.Exists)
	require.NotNil(t, resp.Item)
	assert.Equal(t, created.ID, resp.Item.ID, "debe devolver el lote existente")
}

func TestCheckDuplicate_OtroMesNoEsDuplicado(t *testing.T) {
	uc, _, _ := newItemUC()

	_, err := uc.Create(userA, dto.CreateItemRequest{
		SKU: "PAN", Description: "Pan molde", Expiry: "2026-10-05", Quantity: 2,
	})
	require.NoError(t, err)

	resp, err := uc.CheckDuplicate(userA, "PAN", "2026-11-05")
	require.NoError(t, err)
	assert.False(t, resp.Exists)
	assert.Nil(t, resp.Item)
}

// El mismo mes de otro año no es duplicado: se compara (año, mes).
func TestCheckDuplicate_MismoMesOtroAno(t *testing.T) {
	uc, _, _ := newItemUC()

	_, err := uc.Create(userA, dto.CreateItemRequest{
		SKU: "PAN", Description: "Pan molde", Expiry: "2026-10-05", Quantity: 2,
	})
	require.NoError(t, err)

	resp, err := uc.CheckDuplicate(userA, "PAN", "2027-10-05")
	require.NoError(t, err)
	assert.False(t, resp.Exists)
}

// El probe está acotado al usuario: los lotes de otro no cuentan.
func TestCheckDuplicate_AisladoPorUsuario(t *testing.T) {
	uc, _, _ := newItemUC()

	_, err := uc.Create(userB, dto.CreateItemRequest{
		SKU: "PAN", Description: "Pan de B", Expiry: "2026-10-05", Quantity: 2,
	})
	require.NoError(t, err)

	resp, err := uc.CheckDuplicate(userA, "PAN", "2026-10-20")
	require.NoError(t, err)
	assert.False(t, resp.Exists)
}

func TestCheckDuplicate_ParametrosObligatorios(t *testing.T) {
	uc, _, _ := newItemUC()

	_, err := uc.CheckDuplicate(userA, "", "2026-10-05")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CheckDuplicate(userA, "PAN", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CheckDuplicate(userA, "PAN", "no-fecha")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Append
// ──────────────────────────────────────────────────────────────────────────────

func TestAppend_SumaSobreCantidadActual(t *testing.T) {
	uc, _, _ := newItemUC()

	created, err := uc.Create(userA, dto.CreateItemRequest{
		SKU: "ARROZ", Description: "Arroz 1kg", Expiry: "2026-12-01", Quantity: 10,
	})
	require.NoError(t, err)

	resp, err := uc.Append(userA, created.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 15, resp.Quantity, "append suma, no reemplaza")

	resp, err = uc.Append(userA, created.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 18, resp.Quantity)
}

func TestAppend_ProductoAjenoNoExiste(t *testing.T) {
	uc, _, _ := newItemUC()

	created, err := uc.Create(userA, dto.CreateItemRequest{
		SKU: "ARROZ", Description: "d", Expiry: "2026-12-01", Quantity: 10,
	})
	require.NoError(t, err)

	resp, err := uc.Append(userB, created.ID, 5)
	require.NoError(t, err)
	assert.Nil(t, resp, "para otro usuario el producto no existe")

	// La cantidad original no se tocó.
	it, err := uc.GetByID(userA, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, it.Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_ParcialYTriEstado(t *testing.T) {
	uc, _, cats := newItemUC()
	seedCategory(cats, "cat-1", userA, "Lácteos")

	catID := "cat-1"
	created, err := uc.Create(userA, dto.CreateItemRequest{
		SKU: "QUESO", Description: "Queso fresco", Expiry: "2026-09-10", Quantity: 4, Category: &catID,
	})
	require.NoError(t, err)

	// Solo cantidad: lo demás queda igual.
	qty := 7
	resp, err := uc.Update(userA, created.ID, dto.UpdateItemRequest{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, 7, resp.Quantity)
	assert.Equal(t, "QUESO", resp.SKU)
	require.NotNil(t, resp.Category, "category ausente en el patch no borra la categoría")
	assert.Equal(t, "cat-1", resp.Category.ID)

	// null explícito sí la borra.
	resp, err = uc.Update(userA, created.ID, dto.UpdateItemRequest{
		Category: dto.OptionalString{Set: true, Valid: false},
	})
	require.NoError(t, err)
	assert.Nil(t, resp.Category, "null explícito quita la categoría")
}

func TestUpdate_ProductoInexistente(t *testing.T) {
	uc, _, _ := newItemUC()

	resp, err := uc.Update(userA, "no-existe", dto.UpdateItemRequest{})
	require.NoError(t, err)
	assert.Nil(t, resp)
}

// ──────────────────────────────────────────────────────────────────────────────
// Expiring
// ──────────────────────────────────────────────────────────────────────────────

func TestExpiring_VentanaInclusiva(t *testing.T) {
	uc, _, _ := newItemUC()

	hoy := time.Now()
	seed := func(sku string, off int) {
		_, err := uc.Create(userA, dto.CreateItemRequest{
			SKU: sku, Description: sku, Expiry: dateStr(hoy.AddDate(0, 0, off)), Quantity: 1,
		})
		require.NoError(t, err)
	}
	seed("AYER", -1)
	seed("HOY", 0)
	seed("EN-7", 7)
	seed("EN-8", 8)

	list, err := uc.Expiring(userA, 7)
	require.NoError(t, err)
	require.Len(t, list, 2, "la ventana es [hoy, hoy+7] inclusive")
	assert.Equal(t, "HOY", list[0].SKU, "orden por vencimiento ascendente")
	assert.Equal(t, "EN-7", list[1].SKU)
}

// days=0 pregunta por lo que vence hoy, no es la ventana por defecto.
func TestExpiring_CeroDias(t *testing.T) {
	uc, _, _ := newItemUC()

	hoy := time.Now()
	for i, off := range []int{0, 1, 30} {
		_, err := uc.Create(userA, dto.CreateItemRequest{
			SKU: fmt.Sprintf("P-%d", i), Description: "x", Expiry: dateStr(hoy.AddDate(0, 0, off)), Quantity: 1,
		})
		require.NoError(t, err)
	}

	list, err := uc.Expiring(userA, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "P-0", list[0].SKU)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete / aislamiento
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_AjenoDevuelveNotFound(t *testing.T) {
	uc, _, _ := newItemUC()

	created, err := uc.Create(userA, dto.CreateItemRequest{
		SKU: "SAL", Description: "d", Expiry: "2026-12-01", Quantity: 1,
	})
	require.NoError(t, err)

	err = uc.Delete(userB, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "un recurso ajeno se comporta como inexistente")

	require.NoError(t, uc.Delete(userA, created.ID))
	err = uc.Delete(userA, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "borrar dos veces falla la segunda")
}

func TestList_AisladoPorUsuario(t *testing.T) {
	uc, _, _ := newItemUC()

	_, err := uc.Create(userA, dto.CreateItemRequest{SKU: "A", Description: "d", Expiry: "2026-12-01", Quantity: 1})
	require.NoError(t, err)
	_, err = uc.Create(userB, dto.CreateItemRequest{SKU: "B", Description: "d", Expiry: "2026-12-01", Quantity: 1})
	require.NoError(t, err)

	listA, err := uc.List(userA)
	require.NoError(t, err)
	require.Len(t, listA, 1)
	assert.Equal(t, "A", listA[0].SKU)
}
