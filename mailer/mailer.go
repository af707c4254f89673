package mailer

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"github.com/okivo-cr/okivo-web/models"
)

// Notifier despacha los correos de una solicitud aceptada. Se invoca
// después de que la solicitud quedó guardada; su resultado nunca altera la
// respuesta al cliente.
type Notifier interface {
	NotificarSolicitud(s *models.Solicitud)
}

const (
	asuntoInterno      = "Nueva solicitud de Okivo - Documentos incluidos"
	asuntoConfirmacion = "Hemos recibido tu solicitud"

	// CuerpoConfirmacion es el texto fijo enviado al solicitante.
	CuerpoConfirmacion = "¡Gracias por solicitar un crédito con Okivo! Hemos recibido tu solicitud y tus documentos. Nuestro equipo revisará la información y se pondrá en contacto contigo pronto."

	sinDato = "N/D"
)

type Mailer struct {
	dialer  *gomail.Dialer
	remite  string
	interno string
	timeout time.Duration
	log     *logrus.Logger
}

// New construye el mailer SMTP. interno es la dirección del operador que
// recibe el resumen de cada solicitud.
func New(host string, puerto int, usuario, clave, interno string, log *logrus.Logger) *Mailer {
	return &Mailer{
		dialer:  gomail.NewDialer(host, puerto, usuario, clave),
		remite:  usuario,
		interno: interno,
		timeout: 30 * time.Second,
		log:     log,
	}
}

// NotificarSolicitud envía el resumen interno (con los documentos
// adjuntos) y la confirmación al solicitante. Los dos envíos son
// independientes y de mejor esfuerzo: los fallos solo se registran.
func (m *Mailer) NotificarSolicitud(s *models.Solicitud) {
	resumen := gomail.NewMessage()
	resumen.SetHeader("From", m.remite)
	resumen.SetHeader("To", m.interno)
	resumen.SetHeader("Subject", asuntoInterno)
	resumen.SetBody("text/plain", CuerpoInterno(s))
	for _, ruta := range rutasOrdenadas(s.FilePaths) {
		resumen.Attach(ruta)
	}

	confirmacion := gomail.NewMessage()
	confirmacion.SetHeader("From", m.remite)
	confirmacion.SetHeader("To", s.Email)
	confirmacion.SetHeader("Subject", asuntoConfirmacion)
	confirmacion.SetBody("text/plain", CuerpoConfirmacion)

	go m.enviar("interno", resumen)
	go m.enviar("de confirmación", confirmacion)
}

func (m *Mailer) enviar(destino string, msg *gomail.Message) {
	hecho := make(chan error, 1)
	go func() {
		hecho <- m.dialer.DialAndSend(msg)
	}()

	select {
	case err := <-hecho:
		if err != nil {
			m.log.WithError(err).Errorf("Error al enviar el correo %s", destino)
		}
	case <-time.After(m.timeout):
		m.log.Errorf("Tiempo de espera agotado al enviar el correo %s", destino)
	}
}

// CuerpoInterno arma el resumen enviado al operador. El orden de los
// campos es fijo; los opcionales ausentes se sustituyen por N/D.
func CuerpoInterno(s *models.Solicitud) string {
	var b strings.Builder
	b.WriteString("Se ha recibido una nueva solicitud:\n\n")
	fmt.Fprintf(&b, "Nombre: %s\n", s.Nombre)
	fmt.Fprintf(&b, "Identificación: %s\n", oSinDato(s.IDNumber))
	fmt.Fprintf(&b, "Nacionalidad: %s\n", oSinDato(s.Nationality))
	fmt.Fprintf(&b, "Fecha de nacimiento: %s\n", oSinDato(s.Birthdate))
	fmt.Fprintf(&b, "Dirección: %s\n", oSinDato(s.Address))
	fmt.Fprintf(&b, "Teléfono: %s\n", s.Telefono)
	fmt.Fprintf(&b, "Correo: %s\n", s.Email)
	if s.LoanAmount.Valid {
		fmt.Fprintf(&b, "Monto solicitado: %s\n", strconv.FormatFloat(s.LoanAmount.Float64, 'f', -1, 64))
	} else {
		fmt.Fprintf(&b, "Monto solicitado: %s\n", sinDato)
	}
	if s.LoanTerm.Valid {
		fmt.Fprintf(&b, "Plazo: %d\n", s.LoanTerm.Int64)
	} else {
		fmt.Fprintf(&b, "Plazo: %s\n", sinDato)
	}
	fmt.Fprintf(&b, "Vehículo: %s\n", oSinDato(s.VehicleInfo))
	if s.Mensaje != "" {
		fmt.Fprintf(&b, "Mensaje: %s\n", s.Mensaje)
	} else {
		b.WriteString("Mensaje: (sin mensaje)\n")
	}
	fmt.Fprintf(&b, "Archivos: %s\n", listadoArchivos(s.FilePaths))
	fmt.Fprintf(&b, "Fecha: %s", s.Timestamp)
	return b.String()
}

func oSinDato(valor string) string {
	if valor == "" {
		return sinDato
	}
	return valor
}

func listadoArchivos(rutas models.RutasArchivos) string {
	if rutas == nil {
		rutas = models.RutasArchivos{}
	}
	data, err := json.MarshalIndent(rutas, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

func rutasOrdenadas(rutas models.RutasArchivos) []string {
	campos := make([]string, 0, len(rutas))
	for campo := range rutas {
		campos = append(campos, campo)
	}
	sort.Strings(campos)

	var todas []string
	for _, campo := range campos {
		todas = append(todas, rutas[campo]...)
	}
	return todas
}
