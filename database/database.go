package database

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

func InitDB(log *logrus.Logger) {
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "submissions.db"
	}

	var err error
	DB, err = sql.Open("sqlite", "file:"+path)
	if err != nil {
		log.Fatalf("Error al abrir la base de datos: %v", err)
	}

	// SQLite admite un solo escritor; una única conexión evita
	// SQLITE_BUSY entre solicitudes concurrentes.
	DB.SetMaxOpenConns(1)
	DB.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := DB.PingContext(ctx); err != nil {
		log.Fatalf("Error al conectar a SQLite: %v", err)
	}

	log.Infof("Conectado a la base de datos SQLite en %s", path)
}

func CloseDB(log *logrus.Logger) {
	if DB != nil {
		if err := DB.Close(); err != nil {
			log.Errorf("Error al cerrar la base de datos: %v", err)
		} else {
			log.Info("Base de datos cerrada con éxito")
		}
	}
}

// CreateTables garantiza el esquema; es idempotente y se ejecuta en cada
// arranque.
func CreateTables(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS applications (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		nombre TEXT,
		id_number TEXT,
		nationality TEXT,
		birthdate TEXT,
		address TEXT,
		telefono TEXT,
		email TEXT,
		loan_amount REAL,
		loan_term INTEGER,
		vehicle_info TEXT,
		mensaje TEXT,
		file_paths TEXT,
		timestamp TEXT
	)`)
	return err
}
