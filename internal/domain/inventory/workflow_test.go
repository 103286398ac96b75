package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/suministros-api/internal/domain"
	"github.com/jhoicas/suministros-api/internal/domain/entity"
	"github.com/jhoicas/suministros-api/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Máquina de estados de solicitudes
// ──────────────────────────────────────────────────────────────────────────────

func TestNextRequestStatus_TransicionesValidas(t *testing.T) {
	cases := []struct {
		name    string
		current string
		rental  bool
		target  string
		want    string
	}{
		{"aprobar consumo", entity.RequestRequested, false, entity.RequestApproved, entity.RequestApproved},
		{"aprobar préstamo", entity.RequestRequested, true, entity.RequestApproved, entity.RequestReturnPending},
		{"rechazar", entity.RequestRequested, false, entity.RequestRejected, entity.RequestRejected},
		{"devolver préstamo", entity.RequestReturnPending, true, entity.RequestReturned, entity.RequestReturned},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := inventory.NextRequestStatus(tc.current, tc.rental, tc.target)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNextRequestStatus_EstadosTerminales(t *testing.T) {
	for _, current := range []string{entity.RequestRejected, entity.RequestReturned, entity.RequestApproved} {
		for _, target := range []string{entity.RequestApproved, entity.RequestRejected, entity.RequestReturned} {
			_, err := inventory.NextRequestStatus(current, false, target)
			assert.ErrorIs(t, err, domain.ErrInvalidRequestStatus, "%s -> %s debe fallar", current, target)
		}
	}
}

func TestNextRequestStatus_DevolverSinPrestamo_Falla(t *testing.T) {
	_, err := inventory.NextRequestStatus(entity.RequestRequested, false, entity.RequestReturned)
	assert.ErrorIs(t, err, domain.ErrInvalidRequestStatus)

	_, err = inventory.NextRequestStatus(entity.RequestReturnPending, false, entity.RequestReturned)
	assert.ErrorIs(t, err, domain.ErrInvalidRequestStatus)
}

func TestNextReturnStatus(t *testing.T) {
	got, err := inventory.NextReturnStatus(entity.ReturnPending, entity.ReturnReturned)
	require.NoError(t, err)
	assert.Equal(t, entity.ReturnReturned, got)

	_, err = inventory.NextReturnStatus(entity.ReturnReturned, entity.ReturnRejected)
	assert.ErrorIs(t, err, domain.ErrInvalidRequestStatus)

	_, err = inventory.NextReturnStatus(entity.ReturnPending, entity.ReturnPending)
	assert.ErrorIs(t, err, domain.ErrInvalidRequestStatus)
}

// ──────────────────────────────────────────────────────────────────────────────
// Códigos, préstamos y costos
// ──────────────────────────────────────────────────────────────────────────────

func TestSlug_QuitaTildesYEspacios(t *testing.T) {
	assert.Equal(t, "CAMARA_DIGITAL", inventory.Slug("Cámara digital"))
	assert.Equal(t, "NINO_PEQUENO", inventory.Slug("niño pequeño"))
	assert.Equal(t, "ITEM", inventory.Slug("   "))
}

func TestSerialNumber_Formato(t *testing.T) {
	serial := inventory.SerialNumber("Monitor 24", 3)
	assert.Regexp(t, `^MONITOR_24-3-[A-Z0-9]{8}$`, serial)
}

func TestInstanceCode_UnicoYConPrefijo(t *testing.T) {
	a := inventory.InstanceCode("LAPTOP-1-ABCDEFGH")
	b := inventory.InstanceCode("LAPTOP-1-ABCDEFGH")
	assert.Regexp(t, `^LAPTOP-1-ABCDEFGH-[0-9A-F]{8}$`, a)
	assert.NotEqual(t, a, b)
}

func TestRentStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	assert.Equal(t, inventory.RentReturned, inventory.RentStatus(true, &past, now))
	assert.Equal(t, inventory.RentOverdue, inventory.RentStatus(false, &past, now))
	assert.Equal(t, inventory.RentRenting, inventory.RentStatus(false, &future, now))
	assert.Equal(t, inventory.RentRenting, inventory.RentStatus(false, nil, now))
}

func TestPurchaseTotal(t *testing.T) {
	total := inventory.PurchaseTotal(4, decimal.RequireFromString("12.50"))
	assert.True(t, total.Equal(decimal.RequireFromString("50")), "4 * 12.50 = 50, obtenido %s", total)

	assert.True(t, inventory.PurchaseTotal(3, decimal.NewFromInt(-1)).IsZero())

	adjusted := inventory.AdjustedTotal(4, 2, total)
	assert.True(t, adjusted.Equal(decimal.NewFromInt(25)), "obtenido %s", adjusted)
}
