package mailer

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okivo-cr/okivo-web/models"
)

func TestCuerpoInternoOrdenDeCampos(t *testing.T) {
	s := &models.Solicitud{
		Nombre:      "Juan Pérez",
		IDNumber:    "1-2345-6789",
		Nationality: "Costarricense",
		Birthdate:   "1990-04-12",
		Address:     "San José",
		Telefono:    "(+506) 8888-1234",
		Email:       "juan@example.com",
		LoanAmount:  sql.NullFloat64{Float64: 2500000, Valid: true},
		LoanTerm:    sql.NullInt64{Int64: 48, Valid: true},
		VehicleInfo: "Toyota Corolla 2021",
		Mensaje:     "Hola",
		FilePaths:   models.RutasArchivos{"id_files": {"uploads/id_files-1.pdf"}},
		Timestamp:   "2026-08-28T12:00:00Z",
	}

	cuerpo := CuerpoInterno(s)

	etiquetas := []string{
		"Nombre:",
		"Identificación:",
		"Nacionalidad:",
		"Fecha de nacimiento:",
		"Dirección:",
		"Teléfono:",
		"Correo:",
		"Monto solicitado:",
		"Plazo:",
		"Vehículo:",
		"Mensaje:",
		"Archivos:",
		"Fecha:",
	}

	anterior := -1
	for _, etiqueta := range etiquetas {
		posicion := strings.Index(cuerpo, etiqueta)
		require.GreaterOrEqual(t, posicion, 0, "falta la etiqueta %q", etiqueta)
		assert.Greater(t, posicion, anterior, "la etiqueta %q está fuera de orden", etiqueta)
		anterior = posicion
	}

	assert.Contains(t, cuerpo, "Nombre: Juan Pérez")
	assert.Contains(t, cuerpo, "Monto solicitado: 2500000")
	assert.Contains(t, cuerpo, "Plazo: 48")
	assert.Contains(t, cuerpo, "uploads/id_files-1.pdf")
	assert.Contains(t, cuerpo, "Fecha: 2026-08-28T12:00:00Z")
}

func TestCuerpoInternoOpcionalesAusentes(t *testing.T) {
	s := &models.Solicitud{
		Nombre:    "Ana",
		Telefono:  "(+506) 7000-2222",
		Email:     "ana@example.com",
		Timestamp: "2026-08-28T12:00:00Z",
	}

	cuerpo := CuerpoInterno(s)

	assert.Contains(t, cuerpo, "Identificación: N/D")
	assert.Contains(t, cuerpo, "Nacionalidad: N/D")
	assert.Contains(t, cuerpo, "Fecha de nacimiento: N/D")
	assert.Contains(t, cuerpo, "Dirección: N/D")
	assert.Contains(t, cuerpo, "Monto solicitado: N/D")
	assert.Contains(t, cuerpo, "Plazo: N/D")
	assert.Contains(t, cuerpo, "Vehículo: N/D")
	assert.Contains(t, cuerpo, "Mensaje: (sin mensaje)")
	assert.Contains(t, cuerpo, "Archivos: {}")
}

func TestCuerpoConfirmacionFijo(t *testing.T) {
	assert.NotEmpty(t, CuerpoConfirmacion)
	assert.Contains(t, CuerpoConfirmacion, "Hemos recibido tu solicitud")
}

func TestRutasOrdenadasDeterministas(t *testing.T) {
	rutas := models.RutasArchivos{
		"income_proofs":   {"uploads/c.pdf"},
		"bank_statements": {"uploads/a.pdf", "uploads/b.pdf"},
	}

	esperadas := []string{"uploads/a.pdf", "uploads/b.pdf", "uploads/c.pdf"}
	for i := 0; i < 10; i++ {
		assert.Equal(t, esperadas, rutasOrdenadas(rutas))
	}
}
