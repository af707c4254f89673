package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/okivo-cr/okivo-web/database"
	"github.com/okivo-cr/okivo-web/handlers"
	"github.com/okivo-cr/okivo-web/logger"
	"github.com/okivo-cr/okivo-web/mailer"
	"github.com/okivo-cr/okivo-web/repository"
)

func main() {
	log := logger.New("okivo-web")

	if err := godotenv.Load(); err != nil {
		log.Info("Archivo .env no encontrado - usando variables de entorno del sistema")
	}

	database.InitDB(log)
	defer database.CloseDB(log)

	if err := database.CreateTables(database.DB); err != nil {
		log.Fatalf("Error al crear las tablas: %v", err)
	}

	dirArchivos := entornoODefecto("UPLOAD_DIR", "uploads")
	if err := os.MkdirAll(dirArchivos, 0o755); err != nil {
		log.Fatalf("Error al crear el directorio de cargas: %v", err)
	}

	puertoSMTP, err := strconv.Atoi(entornoODefecto("SMTP_PORT", "587"))
	if err != nil {
		log.Fatalf("SMTP_PORT no válido: %v", err)
	}

	repo := repository.NewSolicitudRepository(database.DB, log)
	notifier := mailer.New(
		entornoODefecto("SMTP_HOST", "smtp.gmail.com"),
		puertoSMTP,
		os.Getenv("EMAIL_USER"),
		os.Getenv("EMAIL_PASS"),
		entornoODefecto("INTERNAL_EMAIL", "juank.mirand@gmail.com"),
		log,
	)

	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Set("repo", repo)
		c.Set("notifier", notifier)
		c.Next()
	})

	router.POST("/submit-form", handlers.CrearSolicitud(handlers.ConfigFormulario{
		DirArchivos: dirArchivos,
	}))

	router.NoRoute(gin.WrapH(http.FileServer(http.Dir(entornoODefecto("STATIC_DIR", ".")))))

	puerto := entornoODefecto("PORT", "3000")
	server := &http.Server{
		Addr:    ":" + puerto,
		Handler: router,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Infof("Servidor iniciado en el puerto %s", puerto)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error al iniciar el servidor: %v", err)
		}
	}()

	<-quit
	log.Info("Apagando servidor...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Error al apagar el servidor: %v", err)
	}

	log.Info("Servidor apagado con éxito")
}

func entornoODefecto(clave, defecto string) string {
	if valor := os.Getenv(clave); valor != "" {
		return valor
	}
	return defecto
}
