package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/okivo-cr/okivo-web/mailer"
	"github.com/okivo-cr/okivo-web/models"
	"github.com/okivo-cr/okivo-web/repository"
	"github.com/okivo-cr/okivo-web/validation"
)

// LimitesArchivos define cuántos archivos se aceptan por campo de carga;
// los excedentes se descartan.
var LimitesArchivos = map[string]int{
	"id_files":         4,
	"bank_statements":  12,
	"income_proofs":    10,
	"address_proof":    3,
	"driver_license":   2,
	"vehicle_proforma": 2,
}

// ConfigFormulario parametriza el handler. La variante simple de contacto
// y la extendida con documentos comparten la misma lógica.
type ConfigFormulario struct {
	DirArchivos     string
	LimitesArchivos map[string]int
}

type respuestaFormulario struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

const (
	mensajeExito        = "¡Gracias! Hemos recibido tu solicitud y tus documentos."
	mensajeErrorGuardar = "No se pudo procesar tu solicitud. Intenta más tarde."
)

func CrearSolicitud(cfg ConfigFormulario) gin.HandlerFunc {
	limites := cfg.LimitesArchivos
	if limites == nil {
		limites = LimitesArchivos
	}

	return func(c *gin.Context) {
		repo := c.MustGet("repo").(*repository.SolicitudRepository)
		notifier := c.MustGet("notifier").(mailer.Notifier)

		err := validation.Validar(
			c.PostForm("telefono"),
			c.PostForm("email"),
			c.PostForm("captcha_n1"),
			c.PostForm("captcha_n2"),
			c.PostForm("captcha_answer"),
		)
		if err != nil {
			c.JSON(http.StatusOK, respuestaFormulario{Success: false, Message: validation.Mensaje(err)})
			return
		}

		rutas, err := guardarArchivos(c, cfg.DirArchivos, limites)
		if err != nil {
			descartarArchivos(rutas)
			c.JSON(http.StatusOK, respuestaFormulario{Success: false, Message: mensajeErrorGuardar})
			return
		}

		solicitud := &models.Solicitud{
			Nombre:      c.PostForm("nombre"),
			IDNumber:    c.PostForm("id_number"),
			Nationality: c.PostForm("nationality"),
			Birthdate:   c.PostForm("birthdate"),
			Address:     c.PostForm("address"),
			Telefono:    c.PostForm("telefono"),
			Email:       c.PostForm("email"),
			LoanAmount:  models.MontoDesde(c.PostForm("loan_amount")),
			LoanTerm:    models.PlazoDesde(c.PostForm("loan_term")),
			VehicleInfo: c.PostForm("vehicle_info"),
			Mensaje:     c.PostForm("mensaje"),
			FilePaths:   rutas,
		}

		if _, err := repo.Insertar(c.Request.Context(), solicitud); err != nil {
			descartarArchivos(rutas)
			c.JSON(http.StatusOK, respuestaFormulario{Success: false, Message: mensajeErrorGuardar})
			return
		}

		notifier.NotificarSolicitud(solicitud)

		c.JSON(http.StatusOK, respuestaFormulario{Success: true, Message: mensajeExito})
	}
}

// guardarArchivos almacena las cargas de un envío multipart con nombres
// únicos. Devuelve las rutas ya escritas aun cuando falle a mitad, para
// que el caller pueda descartarlas.
func guardarArchivos(c *gin.Context, dir string, limites map[string]int) (models.RutasArchivos, error) {
	rutas := models.RutasArchivos{}

	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return rutas, nil
		}
		return rutas, err
	}

	for _, campo := range camposOrdenados(limites) {
		archivos := form.File[campo]
		if limite := limites[campo]; len(archivos) > limite {
			archivos = archivos[:limite]
		}
		for _, archivo := range archivos {
			nombre := fmt.Sprintf("%s-%d-%s%s", campo, time.Now().UnixMilli(), uuid.NewString(), filepath.Ext(archivo.Filename))
			ruta := filepath.Join(dir, nombre)
			if err := c.SaveUploadedFile(archivo, ruta); err != nil {
				return rutas, err
			}
			rutas[campo] = append(rutas[campo], ruta)
		}
	}

	return rutas, nil
}

// descartarArchivos elimina las cargas de una solicitud rechazada; una
// fila que no existe nunca debe dejar archivos referenciados.
func descartarArchivos(rutas models.RutasArchivos) {
	for _, lista := range rutas {
		for _, ruta := range lista {
			os.Remove(ruta)
		}
	}
}

func camposOrdenados(limites map[string]int) []string {
	campos := make([]string, 0, len(limites))
	for campo := range limites {
		campos = append(campos, campo)
	}
	sort.Strings(campos)
	return campos
}
