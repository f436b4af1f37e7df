package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/expiry-monitor/internal/application/dto"
	"github.com/tu-usuario/expiry-monitor/internal/client/report"
	"github.com/tu-usuario/expiry-monitor/internal/client/state"
)

var ahora = time.Date(2026, time.October, 10, 12, 0, 0, 0, time.UTC)

func testState() *state.State {
	cat := &dto.CategoryRef{ID: "c1", Name: "Lácteos"}
	return state.New(
		[]dto.ItemResponse{
			{ID: "i-1", SKU: "LECHE", Description: "Leche entera", Expiry: ahora.AddDate(0, 0, -2), Quantity: 3, Category: cat},
			{ID: "i-2", SKU: "QUESO", Description: "Queso fresco", Expiry: ahora.AddDate(0, 0, 5), Quantity: 1, Category: cat},
			{ID: "i-3", SKU: "PAN", Description: "Pan molde", Expiry: ahora.AddDate(0, 0, 20), Quantity: 2},
		},
		[]dto.CategoryResponse{{ID: "c1", Name: "Lácteos"}},
	)
}

// El reporte produce un PDF real: bytes no vacíos con cabecera %PDF.
func TestGenerate_PDFNoVacio(t *testing.T) {
	gen := report.NewExpiryReportGenerator()

	pdf, err := gen.Generate(testState(), "ana", ahora)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]), "debe empezar con la firma PDF")
}

// Con filtros activos el reporte solo lista la vista filtrada, pero sigue
// generándose aunque quede vacía.
func TestGenerate_ConFiltros(t *testing.T) {
	st := testState()
	st.SetFilters(state.Filters{Month: time.February})

	gen := report.NewExpiryReportGenerator()
	pdf, err := gen.Generate(st, "ana", ahora)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}

// Una vista compuesta solo de productos vencidos también renderiza: la
// celda de días toma la rama "VENCIDO" en todas las filas.
func TestGenerate_SoloVencidos(t *testing.T) {
	st := state.New(
		[]dto.ItemResponse{
			{ID: "i-1", SKU: "YOGUR", Description: "Yogur natural", Expiry: ahora.AddDate(0, 0, -1), Quantity: 4},
			{ID: "i-2", SKU: "CREMA", Description: "Crema de leche", Expiry: ahora.AddDate(0, -1, 0), Quantity: 2},
		},
		nil,
	)

	gen := report.NewExpiryReportGenerator()
	pdf, err := gen.Generate(st, "ana", ahora)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

// Estado vacío tampoco rompe la generación.
func TestGenerate_SinProductos(t *testing.T) {
	gen := report.NewExpiryReportGenerator()

	pdf, err := gen.Generate(state.New(nil, nil), "ana", ahora)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}
