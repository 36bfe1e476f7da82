package ussd_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/obra-stock/internal/application/ussd"
	"github.com/jhoicas/obra-stock/internal/domain/entity"
)

const testPhone = "+255700000001"

func testMaterials() []entity.Material {
	// Mismo orden que devolvería el repositorio: name ASC, id ASC.
	return []entity.Material{
		{ID: 1, Name: "Cement", Unit: "bags", Quantity: 40},
		{ID: 4, Name: "Gravel", Unit: "tonnes", Quantity: 12},
		{ID: 2, Name: "Sand", Unit: "tonnes", Quantity: 7},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Niveles: k segmentos separados por * = nivel k; input vacío = nivel 0
// ──────────────────────────────────────────────────────────────────────────────

func TestDecode_InputVacioEsMenuRaiz(t *testing.T) {
	r := ussd.Decode("", testPhone, testMaterials())

	assert.False(t, r.Terminal, "el menú raíz espera un segmento más")
	assert.Nil(t, r.Effect)
	assert.Contains(t, r.Text, "1. Record Material Received")
	assert.Contains(t, r.Text, "2. Check Stock Level")
	assert.Contains(t, r.Text, "3. Record Material Used")
	assert.True(t, strings.HasPrefix(r.Response(), "CON "), "la continuación lleva el marcador CON")
}

func TestDecode_NivelPorConteoDeSegmentos(t *testing.T) {
	materials := testMaterials()

	cases := []struct {
		name     string
		input    string
		terminal bool
	}{
		{"un segmento lista materiales", "1", false},
		{"dos segmentos pide cantidad", "1*1", false},
		{"tres segmentos es terminal", "1*1*10", true},
		{"cuatro segmentos es demasiado", "1*1*10*1", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := ussd.Decode(tc.input, testPhone, materials)
			assert.Equal(t, tc.terminal, r.Terminal)
		})
	}
}

func TestDecode_DemasiadosPasos(t *testing.T) {
	r := ussd.Decode("1*1*10*1*2", testPhone, testMaterials())

	require.True(t, r.Terminal)
	assert.Nil(t, r.Effect, "un input desbordado no produce efecto")
	assert.Equal(t, "Too many steps or invalid input.", r.Text)
}

// ──────────────────────────────────────────────────────────────────────────────
// Nivel 1: selección de acción
// ──────────────────────────────────────────────────────────────────────────────

func TestDecode_ListaMaterialesNumeradaYOrdenada(t *testing.T) {
	r := ussd.Decode("1", testPhone, testMaterials())

	require.False(t, r.Terminal)
	assert.Equal(t, "Select Material Received:\n1. Cement\n2. Gravel\n3. Sand", r.Text,
		"la numeración sigue el orden del snapshot")
}

func TestDecode_AccionDesconocidaTermina(t *testing.T) {
	r := ussd.Decode("9", testPhone, testMaterials())

	require.True(t, r.Terminal)
	assert.Nil(t, r.Effect)
	assert.Equal(t, "Invalid choice.", r.Text)
}

func TestDecode_InventarioVacio(t *testing.T) {
	r := ussd.Decode("1", testPhone, nil)

	require.True(t, r.Terminal)
	assert.Equal(t, "No materials found.", r.Text)
}

// ──────────────────────────────────────────────────────────────────────────────
// Nivel 2: selección de material
// ──────────────────────────────────────────────────────────────────────────────

func TestDecode_ConsultaDeStockEsTerminalSinMutacion(t *testing.T) {
	r := ussd.Decode("2*1", testPhone, testMaterials())

	require.True(t, r.Terminal)
	assert.Equal(t, "Cement: 40 bags in stock", r.Text)
	require.NotNil(t, r.Effect)
	assert.Equal(t, ussd.EffectCheck, r.Effect.Kind)
	assert.Zero(t, r.Effect.Delta, "la consulta jamás muta el stock")
}

func TestDecode_RecibirPideCantidad(t *testing.T) {
	r := ussd.Decode("1*1", testPhone, testMaterials())

	require.False(t, r.Terminal)
	assert.Equal(t, "Enter quantity of Cement (bags) RECEIVED:", r.Text)
}

func TestDecode_UsarPideCantidad(t *testing.T) {
	r := ussd.Decode("3*3", testPhone, testMaterials())

	require.False(t, r.Terminal)
	assert.Equal(t, "Enter quantity of Sand (tonnes) USED:", r.Text)
}

func TestDecode_SeleccionDeMaterialInvalida(t *testing.T) {
	for _, input := range []string{"1*0", "1*4", "1*abc", "1*"} {
		t.Run(input, func(t *testing.T) {
			r := ussd.Decode(input, testPhone, testMaterials())
			require.True(t, r.Terminal)
			assert.Nil(t, r.Effect)
			assert.Equal(t, "Invalid material selection.", r.Text)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Nivel 3: cantidad y efecto
// ──────────────────────────────────────────────────────────────────────────────

func TestDecode_RecibidoProduceDeltaPositivo(t *testing.T) {
	r := ussd.Decode("1*1*10", testPhone, testMaterials())

	require.True(t, r.Terminal)
	require.NotNil(t, r.Effect)
	assert.Equal(t, ussd.EffectReceive, r.Effect.Kind)
	assert.Equal(t, int64(1), r.Effect.Material.ID)
	assert.Equal(t, int64(10), r.Effect.Quantity)
	assert.Equal(t, int64(10), r.Effect.Delta)
}

func TestDecode_UsadoProduceDeltaNegativo(t *testing.T) {
	r := ussd.Decode("3*1*10", testPhone, testMaterials())

	require.True(t, r.Terminal)
	require.NotNil(t, r.Effect)
	assert.Equal(t, ussd.EffectUse, r.Effect.Kind)
	assert.Equal(t, int64(10), r.Effect.Quantity)
	assert.Equal(t, int64(-10), r.Effect.Delta,
		"el chequeo de stock suficiente pertenece al commit, no al decode")
}

func TestDecode_CantidadInvalida(t *testing.T) {
	for _, input := range []string{"1*1*0", "1*1*-5", "1*1*abc", "1*1*1.5", "3*1*"} {
		t.Run(input, func(t *testing.T) {
			r := ussd.Decode(input, testPhone, testMaterials())
			require.True(t, r.Terminal)
			assert.Nil(t, r.Effect, "una cantidad inválida no produce efecto")
			assert.Equal(t, "Invalid quantity. Must be a positive number.", r.Text)
		})
	}
}

func TestDecode_CantidadParaAccionNoMutante(t *testing.T) {
	// "2*1*10": consultar stock no llega al nivel 3; secuencia inválida.
	r := ussd.Decode("2*1*10", testPhone, testMaterials())

	require.True(t, r.Terminal)
	assert.Nil(t, r.Effect)
	assert.Equal(t, "Invalid action sequence.", r.Text)
}
