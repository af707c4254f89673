package validation

import (
	"errors"
	"regexp"
	"strconv"
)

var (
	ErrTelefonoInvalido = errors.New("telefono invalido")
	ErrEmailInvalido    = errors.New("email invalido")
	ErrCaptchaInvalido  = errors.New("captcha invalido")
)

var (
	patronTelefono = regexp.MustCompile(`^\(\+506\) \d{4}-\d{4}$`)
	patronEmail    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// TelefonoValido acepta únicamente el formato canónico (+506) 9999-9999.
func TelefonoValido(telefono string) bool {
	return patronTelefono.MatchString(telefono)
}

// EmailValido acepta direcciones con la forma local@dominio.tld. El patrón
// es permisivo a propósito, no pretende cubrir el RFC completo.
func EmailValido(email string) bool {
	return patronEmail.MatchString(email)
}

// CaptchaValido verifica que respuesta sea la suma de los dos operandos.
// Cualquier valor no numérico falla.
func CaptchaValido(n1, n2, respuesta string) bool {
	a, err := strconv.Atoi(n1)
	if err != nil {
		return false
	}
	b, err := strconv.Atoi(n2)
	if err != nil {
		return false
	}
	r, err := strconv.Atoi(respuesta)
	if err != nil {
		return false
	}
	return a+b == r
}

// Validar aplica las tres verificaciones en orden fijo: teléfono, email,
// captcha. Devuelve el error de la primera que falle.
func Validar(telefono, email, n1, n2, respuesta string) error {
	if !TelefonoValido(telefono) {
		return ErrTelefonoInvalido
	}
	if !EmailValido(email) {
		return ErrEmailInvalido
	}
	if !CaptchaValido(n1, n2, respuesta) {
		return ErrCaptchaInvalido
	}
	return nil
}

// Mensaje traduce un error de validación al texto mostrado al usuario.
func Mensaje(err error) string {
	switch {
	case errors.Is(err, ErrTelefonoInvalido):
		return "Número de teléfono no válido. Usa el formato (+506) 9999-9999."
	case errors.Is(err, ErrEmailInvalido):
		return "Correo electrónico no válido."
	case errors.Is(err, ErrCaptchaInvalido):
		return "El CAPTCHA es incorrecto. Intenta de nuevo."
	default:
		return "Solicitud no válida."
	}
}
