package models

import (
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"
)

// RutasArchivos asocia cada campo de carga con las rutas de los archivos
// almacenados, en el orden en que fueron recibidos.
type RutasArchivos map[string][]string

// Serializar produce la representación JSON guardada en la columna
// file_paths. Un mapa vacío o nil produce "{}", nunca null.
func (r RutasArchivos) Serializar() (string, error) {
	if r == nil {
		return "{}", nil
	}
	data, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DeserializarRutas reconstruye el mapa guardado por Serializar.
func DeserializarRutas(data string) (RutasArchivos, error) {
	rutas := RutasArchivos{}
	if strings.TrimSpace(data) == "" {
		return rutas, nil
	}
	if err := json.Unmarshal([]byte(data), &rutas); err != nil {
		return nil, err
	}
	if rutas == nil {
		rutas = RutasArchivos{}
	}
	return rutas, nil
}

type Solicitud struct {
	ID          int64           `json:"id"`
	Nombre      string          `json:"nombre"`
	IDNumber    string          `json:"id_number"`
	Nationality string          `json:"nationality"`
	Birthdate   string          `json:"birthdate"`
	Address     string          `json:"address"`
	Telefono    string          `json:"telefono"`
	Email       string          `json:"email"`
	LoanAmount  sql.NullFloat64 `json:"loan_amount"`
	LoanTerm    sql.NullInt64   `json:"loan_term"`
	VehicleInfo string          `json:"vehicle_info"`
	Mensaje     string          `json:"mensaje"`
	FilePaths   RutasArchivos   `json:"file_paths"`
	Timestamp   string          `json:"timestamp"`
}

// MontoDesde convierte el monto solicitado del formulario; entradas vacías
// o no numéricas se guardan como NULL.
func MontoDesde(valor string) sql.NullFloat64 {
	monto, err := strconv.ParseFloat(strings.TrimSpace(valor), 64)
	if err != nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: monto, Valid: true}
}

// PlazoDesde convierte el plazo del préstamo; entradas vacías o no
// numéricas se guardan como NULL.
func PlazoDesde(valor string) sql.NullInt64 {
	plazo, err := strconv.ParseInt(strings.TrimSpace(valor), 10, 64)
	if err != nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: plazo, Valid: true}
}
