package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/okivo-cr/okivo-web/models"
)

// ErrAlmacenamiento es el único error que sale del repositorio; el detalle
// del driver se registra pero nunca llega al cliente.
var ErrAlmacenamiento = errors.New("no se pudo guardar la solicitud")

// SolicitudRepository persiste las solicitudes recibidas. Las filas nunca
// se actualizan ni se eliminan.
type SolicitudRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewSolicitudRepository(db *sql.DB, log *logrus.Logger) *SolicitudRepository {
	return &SolicitudRepository{
		db:  db,
		log: log,
	}
}

// Insertar agrega una fila nueva y devuelve el id asignado. El timestamp
// se fija aquí, nunca se toma del cliente.
func (r *SolicitudRepository) Insertar(ctx context.Context, s *models.Solicitud) (int64, error) {
	s.Timestamp = time.Now().UTC().Format(time.RFC3339)

	rutas, err := s.FilePaths.Serializar()
	if err != nil {
		r.log.WithError(err).Error("Error al serializar las rutas de archivos")
		return 0, ErrAlmacenamiento
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO applications (nombre, id_number, nationality, birthdate, address, telefono, email, loan_amount, loan_term, vehicle_info, mensaje, file_paths, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.Nombre, s.IDNumber, s.Nationality, s.Birthdate, s.Address,
		s.Telefono, s.Email, s.LoanAmount, s.LoanTerm, s.VehicleInfo,
		s.Mensaje, rutas, s.Timestamp)
	if err != nil {
		r.log.WithError(err).Error("Error al insertar la solicitud")
		return 0, ErrAlmacenamiento
	}

	id, err := res.LastInsertId()
	if err != nil {
		r.log.WithError(err).Error("Error al obtener el id de la solicitud")
		return 0, ErrAlmacenamiento
	}

	s.ID = id
	return id, nil
}

// Obtener lee una solicitud por id.
func (r *SolicitudRepository) Obtener(ctx context.Context, id int64) (*models.Solicitud, error) {
	var s models.Solicitud
	var rutas string

	err := r.db.QueryRowContext(ctx, `
		SELECT id, nombre, id_number, nationality, birthdate, address, telefono, email, loan_amount, loan_term, vehicle_info, mensaje, file_paths, timestamp
		FROM applications
		WHERE id = ?`, id).
		Scan(&s.ID, &s.Nombre, &s.IDNumber, &s.Nationality, &s.Birthdate,
			&s.Address, &s.Telefono, &s.Email, &s.LoanAmount, &s.LoanTerm,
			&s.VehicleInfo, &s.Mensaje, &rutas, &s.Timestamp)
	if err != nil {
		return nil, err
	}

	s.FilePaths, err = models.DeserializarRutas(rutas)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// Contar devuelve el total de solicitudes guardadas.
func (r *SolicitudRepository) Contar(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM applications`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
