// Package wms contiene los servicios de dominio del almacenamiento en silos:
// códigos de trazabilidad de tickets y lotes.
package wms

import (
	"fmt"
	"time"
)

// CodigoTicket genera el código legible del ticket de una recepción:
// R-YYYYMMDD-{id}. El formato es contrato con el renderizador de códigos de
// barras y no debe variar.
func CodigoTicket(fecha time.Time, recepcionID int64) string {
	return fmt.Sprintf("R-%s-%d", fecha.Format("20060102"), recepcionID)
}

// CodigoMezcla genera el código de un lote nacido de mezcla:
// MIX-YYYYMMDD-{loteA}-{loteB}.
func CodigoMezcla(fecha time.Time, loteAID, loteBID int64) string {
	return fmt.Sprintf("MIX-%s-%d-%d", fecha.Format("20060102"), loteAID, loteBID)
}

// EsIDNumerico indica si el input de búsqueda de recepción es un ID numérico
// (en vez de un código de ticket alfanumérico).
func EsIDNumerico(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
