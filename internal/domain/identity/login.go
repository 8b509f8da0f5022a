// Package identity reglas puras para normalizar identidades del directorio.
package identity

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// NormalizeLogin devuelve la clave con la que se busca y guarda un login:
// se recorta, se descarta todo desde la primera '@' (si no está al inicio) y se
// aplica case folding Unicode. Todo lugar que compare logins debe usarla.
func NormalizeLogin(raw string) string {
	s := strings.TrimSpace(raw)
	if at := strings.IndexByte(s, '@'); at > 0 {
		s = s[:at]
	}
	// cases.Caser guarda estado: uno por llamada.
	return cases.Fold().String(strings.TrimSpace(s))
}

// SameLogin compara dos logins después de normalizarlos.
func SameLogin(a, b string) bool {
	return NormalizeLogin(a) == NormalizeLogin(b)
}

// TrimTo recorta value y lo trunca a max runas. Un valor en blanco se considera ausente (nil).
func TrimTo(value string, max int) *string {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	if utf8.RuneCountInString(v) > max {
		v = string([]rune(v)[:max])
	}
	return &v
}

// Truncate igual que TrimTo pero devuelve "" para valores en blanco.
func Truncate(value string, max int) string {
	if p := TrimTo(value, max); p != nil {
		return *p
	}
	return ""
}
