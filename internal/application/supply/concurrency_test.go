package supply_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/suministros-api/internal/application/dto"
	"github.com/jhoicas/suministros-api/internal/domain"
	"github.com/jhoicas/suministros-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Aprobaciones simultáneas sobre el mismo artículo
// ──────────────────────────────────────────────────────────────────────────────

// approveAll aprueba todas las solicitudes a la vez y devuelve el error de cada una (nil si se aprobó).
func approveAll(e *engine, ids []string) []error {
	errs := make([]error, len(ids))
	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
	)
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			<-start
			_, errs[i] = e.setRequestStatus(id, entity.RequestApproved)
		}(i, id)
	}
	close(start)
	wg.Wait()
	return errs
}

func TestConcurrencia_PrestamosSimultaneosNoSobregiranNiRepitenUnidades(t *testing.T) {
	e := mustEngine(t)
	itemID, err := e.purchase("Cámara", 5)
	require.NoError(t, err)

	// 6 préstamos de 2 unidades contra 5 disponibles: solo caben 2.
	const requests = 6
	ids := make([]string, 0, requests)
	for i := 0; i < requests; i++ {
		req, err := e.request(itemID, 2, true)
		require.NoError(t, err)
		ids = append(ids, req.ID)
	}

	errs := approveAll(e, ids)

	approved := map[string]bool{}
	shortages := 0
	for i, err := range errs {
		switch {
		case err == nil:
			approved[ids[i]] = true
		case errors.Is(err, domain.ErrInsufficientStock):
			shortages++
		default:
			t.Fatalf("error inesperado al aprobar %s: %v", ids[i], err)
		}
	}
	assert.Len(t, approved, 2)
	assert.Equal(t, requests-2, shortages)

	it, err := e.item(itemID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), it.TotalQuantity)
	assert.Equal(t, int64(1), it.AvailableQuantity)

	list, err := e.items.ListInstances(e.ctx, caller(managerID), itemID)
	require.NoError(t, err)
	lent := map[string]bool{}
	perRequest := map[string]int{}
	for _, in := range list {
		if in.Disposition != entity.DispositionLend {
			continue
		}
		assert.False(t, lent[in.ID], "unidad %s prestada dos veces", in.ID)
		lent[in.ID] = true
		perRequest[in.SupplyRequestID]++
	}
	assert.Len(t, lent, 4)
	for id := range approved {
		assert.Equal(t, 2, perRequest[id], "la solicitud %s debe tener sus propias 2 unidades", id)
	}

	rows, err := e.outboundRows()
	require.NoError(t, err)
	assert.Len(t, rows, 2, "solo las aprobaciones confirmadas dejan salida")
	for _, row := range rows {
		assert.Equal(t, entity.OutboundLend, row.Kind)
		assert.True(t, approved[row.SupplyRequestID])
	}
}

func TestConcurrencia_ConsumosSimultaneosAgotanSinNegativos(t *testing.T) {
	e := mustEngine(t)
	itemID, err := e.purchase("Guantes", 3)
	require.NoError(t, err)

	ids := make([]string, 0, 8)
	for i := 0; i < 8; i++ {
		req, err := e.request(itemID, 1, false)
		require.NoError(t, err)
		ids = append(ids, req.ID)
	}

	ok := 0
	for _, err := range approveAll(e, ids) {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	}
	assert.Equal(t, 3, ok)

	it, err := e.item(itemID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), it.AvailableQuantity)
	assert.Equal(t, int64(0), it.TotalQuantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición por el solicitante
// ──────────────────────────────────────────────────────────────────────────────

func TestRequest_EdicionDeConsumoConservaFechaDeUso(t *testing.T) {
	e := mustEngine(t)
	itemID, err := e.purchase("Cinta", 4)
	require.NoError(t, err)
	req, err := e.request(itemID, 1, false)
	require.NoError(t, err)

	later := req.UseDate.AddDate(0, 0, 10)
	out, err := e.requests.UpdateMyRequest(e.ctx, caller(userID), req.ID, dto.UpdateMySupplyRequest{
		Quantity: 2, Purpose: "evento", UseDate: &later,
	})
	require.NoError(t, err)
	assert.True(t, out.UseDate.Equal(req.UseDate), "un consumo no cambia su fecha de uso")
	assert.Nil(t, out.ReturnDate)
}
