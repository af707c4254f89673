package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRutasArchivosIdaYVuelta(t *testing.T) {
	rutas := RutasArchivos{
		"id_files":        {"uploads/id_files-1.pdf", "uploads/id_files-2.pdf"},
		"bank_statements": {"uploads/bank_statements-1.pdf"},
	}

	data, err := rutas.Serializar()
	require.NoError(t, err)

	recuperadas, err := DeserializarRutas(data)
	require.NoError(t, err)
	assert.Equal(t, rutas, recuperadas)
}

func TestRutasArchivosVaciasNuncaNull(t *testing.T) {
	data, err := RutasArchivos{}.Serializar()
	require.NoError(t, err)
	assert.Equal(t, "{}", data)

	data, err = RutasArchivos(nil).Serializar()
	require.NoError(t, err)
	assert.Equal(t, "{}", data)

	recuperadas, err := DeserializarRutas(data)
	require.NoError(t, err)
	assert.NotNil(t, recuperadas)
	assert.Empty(t, recuperadas)
}

func TestDeserializarRutasCadenaVacia(t *testing.T) {
	recuperadas, err := DeserializarRutas("")
	require.NoError(t, err)
	assert.NotNil(t, recuperadas)
	assert.Empty(t, recuperadas)
}

func TestMontoDesde(t *testing.T) {
	monto := MontoDesde("2500000.50")
	assert.True(t, monto.Valid)
	assert.Equal(t, 2500000.50, monto.Float64)

	assert.False(t, MontoDesde("").Valid)
	assert.False(t, MontoDesde("dos millones").Valid)
}

func TestPlazoDesde(t *testing.T) {
	plazo := PlazoDesde("48")
	assert.True(t, plazo.Valid)
	assert.Equal(t, int64(48), plazo.Int64)

	assert.False(t, PlazoDesde("").Valid)
	assert.False(t, PlazoDesde("4.5").Valid)
}
