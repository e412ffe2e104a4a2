package codigos_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/molisur/molino-api/pkg/codigos"
)

func TestNormalizar(t *testing.T) {
	casos := []struct {
		entrada  string
		esperado string
	}{
		{"ch-1-5", "CH-1-5"},
		{"  CA-2-10  ", "CA-2-10"},
		{"gh xx 12", "GHXX12"},
		{"ch-1-ñuñoa", "CH-1-NUNOA"},
		{"pérez", "PEREZ"},
		{"", ""},
		{"   ", ""},
		{"R-20250317-42", "R-20250317-42"},
	}

	for _, c := range casos {
		assert.Equal(t, c.esperado, codigos.Normalizar(c.entrada),
			"entrada: %q", c.entrada)
	}
}

// Normalizar es idempotente: aplicarla sobre un código ya normalizado no cambia nada.
func TestNormalizar_Idempotente(t *testing.T) {
	una := codigos.Normalizar("ch-1-ñuñoa ")
	dos := codigos.Normalizar(una)

	assert.Equal(t, una, dos)
}
