package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/suministros-api/internal/domain"
	"github.com/jhoicas/suministros-api/internal/domain/entity"
)

func TestItemAdjust_MantieneInvariante(t *testing.T) {
	item := &entity.Item{TotalQuantity: 5, AvailableQuantity: 5}

	require.NoError(t, item.Adjust(0, -3))
	assert.Equal(t, int64(5), item.TotalQuantity)
	assert.Equal(t, int64(2), item.AvailableQuantity)

	require.NoError(t, item.Adjust(-3, 0))
	assert.Equal(t, int64(2), item.TotalQuantity)
	assert.Equal(t, int64(2), item.AvailableQuantity)
}

func TestItemAdjust_RechazaNegativos(t *testing.T) {
	item := &entity.Item{TotalQuantity: 5, AvailableQuantity: 2}

	assert.ErrorIs(t, item.Adjust(0, -3), domain.ErrInsufficientStock)
	assert.ErrorIs(t, item.Adjust(-4, 0), domain.ErrInsufficientStock, "el total no puede quedar por debajo del disponible")
	assert.ErrorIs(t, item.Adjust(0, 4), domain.ErrInsufficientStock, "el disponible no puede superar el total")

	assert.Equal(t, int64(5), item.TotalQuantity, "un ajuste rechazado no modifica contadores")
	assert.Equal(t, int64(2), item.AvailableQuantity)
}

func TestSupplyRequestIsTerminal(t *testing.T) {
	assert.True(t, (&entity.SupplyRequest{Status: entity.RequestRejected}).IsTerminal())
	assert.True(t, (&entity.SupplyRequest{Status: entity.RequestApproved, Rental: false}).IsTerminal())
	assert.False(t, (&entity.SupplyRequest{Status: entity.RequestReturnPending, Rental: true}).IsTerminal())
	assert.False(t, (&entity.SupplyRequest{Status: entity.RequestRequested}).IsTerminal())
}
