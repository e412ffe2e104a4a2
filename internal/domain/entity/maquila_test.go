package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/molisur/molino-api/internal/domain/entity"
)

// El signo del kg lo decide el tipo de movimiento, no el caller.
func TestSignoMaquila_RetiroSiempreNegativo(t *testing.T) {
	kg := entity.SignoMaquila(entity.MaquilaRetiroHarina, decimal.NewFromInt(500))
	assert.True(t, decimal.NewFromInt(-500).Equal(kg))

	// aunque el caller ya lo haya mandado negativo
	kg = entity.SignoMaquila(entity.MaquilaRetiroHarina, decimal.NewFromInt(-500))
	assert.True(t, decimal.NewFromInt(-500).Equal(kg))
}

func TestSignoMaquila_CreditoSiemprePositivo(t *testing.T) {
	kg := entity.SignoMaquila(entity.MaquilaCreditoConfirmado, decimal.NewFromInt(-1200))
	assert.True(t, decimal.NewFromInt(1200).Equal(kg))
}

// Los ajustes conservan el signo entregado: pueden corregir en ambas direcciones.
func TestSignoMaquila_AjusteConservaSigno(t *testing.T) {
	positivo := entity.SignoMaquila(entity.MaquilaAjuste, decimal.NewFromInt(30))
	negativo := entity.SignoMaquila(entity.MaquilaAjuste, decimal.NewFromInt(-30))

	assert.True(t, decimal.NewFromInt(30).Equal(positivo))
	assert.True(t, decimal.NewFromInt(-30).Equal(negativo))
}
