// Package codigos normaliza códigos escaneados o digitados (tickets, choferes,
// camiones) para búsqueda: mayúsculas, sin espacios y sin diacríticos, de modo
// que "ch-1-ñuñoa " y "CH-1-NUNOA" resuelvan igual.
package codigos

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var quitarDiacriticos = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Normalizar deja un código listo para comparación exacta en DB.
func Normalizar(codigo string) string {
	s := strings.TrimSpace(codigo)
	s = strings.Join(strings.Fields(s), "")
	if out, _, err := transform.String(quitarDiacriticos, s); err == nil {
		s = out
	}
	return strings.ToUpper(s)
}
