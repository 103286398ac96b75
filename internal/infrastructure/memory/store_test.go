package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/suministros-api/internal/domain"
	"github.com/jhoicas/suministros-api/internal/domain/entity"
	"github.com/jhoicas/suministros-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

func seedItem(t *testing.T, s *Store, id string) {
	t.Helper()
	require.NoError(t, s.Repositories().Items.Create(context.Background(), &entity.Item{
		ID: id, OrganizationID: "org-1", Name: "Taladro " + id, SerialNumber: "SN-" + id,
		TotalQuantity: 5, AvailableQuantity: 5, Status: entity.StatusActive, CreatedAt: t0, UpdatedAt: t0,
	}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Transacciones
// ──────────────────────────────────────────────────────────────────────────────

func TestRun_ConfirmaSiNoHayError(t *testing.T) {
	s := NewStore()
	seedItem(t, s, "it-1")
	ctx := context.Background()

	err := s.Run(ctx, func(repos repository.Repositories) error {
		item, err := repos.Items.GetForUpdate(ctx, "it-1")
		require.NoError(t, err)
		require.NoError(t, item.Adjust(0, -2))
		return repos.Items.UpdateQuantities(ctx, item)
	})
	require.NoError(t, err)

	item, err := s.Repositories().Items.GetByID(ctx, "it-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), item.AvailableQuantity)
}

func TestRun_DescartaCambiosSiHayError(t *testing.T) {
	s := NewStore()
	seedItem(t, s, "it-1")
	ctx := context.Background()
	boom := errors.New("falla")

	err := s.Run(ctx, func(repos repository.Repositories) error {
		item, _ := repos.Items.GetForUpdate(ctx, "it-1")
		_ = item.Adjust(0, -5)
		_ = repos.Items.UpdateQuantities(ctx, item)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	item, _ := s.Repositories().Items.GetByID(ctx, "it-1")
	assert.Equal(t, int64(5), item.AvailableQuantity)
}

func TestItemRepo_UpdateQuantitiesRechazaInvariante(t *testing.T) {
	s := NewStore()
	seedItem(t, s, "it-1")
	ctx := context.Background()

	item, _ := s.Repositories().Items.GetByID(ctx, "it-1")
	item.AvailableQuantity = 6
	assert.ErrorIs(t, s.Repositories().Items.UpdateQuantities(ctx, item), domain.ErrInsufficientStock)
}

func TestItemRepo_DevuelveCopias(t *testing.T) {
	s := NewStore()
	seedItem(t, s, "it-1")
	ctx := context.Background()

	item, _ := s.Repositories().Items.GetByID(ctx, "it-1")
	item.AvailableQuantity = 0

	again, _ := s.Repositories().Items.GetByID(ctx, "it-1")
	assert.Equal(t, int64(5), again.AvailableQuantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Unidades: orden FIFO
// ──────────────────────────────────────────────────────────────────────────────

func TestInstanceRepo_FIFOConDesempatePorSecuencia(t *testing.T) {
	s := NewStore()
	seedItem(t, s, "it-1")
	ctx := context.Background()
	repos := s.Repositories()

	batch := []*entity.ItemInstance{
		{ID: "b", ItemID: "it-1", Disposition: entity.DispositionAvailable, Status: entity.StatusActive, CreatedAt: t0},
		{ID: "a", ItemID: "it-1", Disposition: entity.DispositionAvailable, Status: entity.StatusActive, CreatedAt: t0},
		{ID: "c", ItemID: "it-1", Disposition: entity.DispositionAvailable, Status: entity.StatusActive, CreatedAt: t0.Add(time.Second)},
	}
	require.NoError(t, repos.Instances.CreateBatch(ctx, batch))
	assert.Less(t, batch[0].Seq, batch[1].Seq)

	oldest, err := repos.Instances.SelectOldestActive(ctx, "it-1", entity.DispositionAvailable)
	require.NoError(t, err)
	assert.Equal(t, "b", oldest.ID)

	newest, err := repos.Instances.ListNewestActive(ctx, "it-1", 2)
	require.NoError(t, err)
	require.Len(t, newest, 2)
	assert.Equal(t, "c", newest[0].ID)
	assert.Equal(t, "a", newest[1].ID)

	none, err := repos.Instances.SelectOldestActive(ctx, "it-1", entity.DispositionLend)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestInstanceRepo_StopAllActive(t *testing.T) {
	s := NewStore()
	seedItem(t, s, "it-1")
	ctx := context.Background()
	repos := s.Repositories()
	require.NoError(t, repos.Instances.CreateBatch(ctx, []*entity.ItemInstance{
		{ID: "a", ItemID: "it-1", Disposition: entity.DispositionAvailable, Status: entity.StatusActive, CreatedAt: t0},
		{ID: "b", ItemID: "it-1", Disposition: entity.DispositionLend, Status: entity.StatusActive, BorrowerID: "u-1", CreatedAt: t0},
	}))

	n, err := repos.Instances.StopAllActive(ctx, "it-1", t0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	list, _ := repos.Instances.ListByItem(ctx, "it-1")
	for _, inst := range list {
		assert.Equal(t, entity.DispositionStopped, inst.Disposition)
		assert.Empty(t, inst.BorrowerID)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Listados filtrados
// ──────────────────────────────────────────────────────────────────────────────

func TestOutboundRepo_ListFiltraYPagina(t *testing.T) {
	s := NewStore()
	seedItem(t, s, "it-1")
	seedItem(t, s, "it-2")
	ctx := context.Background()
	repos := s.Repositories()
	for i, itemID := range []string{"it-1", "it-1", "it-2"} {
		require.NoError(t, repos.Outbound.Create(ctx, &entity.InventoryOut{
			ID: string(rune('a' + i)), OrganizationID: "org-1", ItemID: itemID, RequesterID: "u-1",
			Quantity: int64(i + 1), Kind: entity.OutboundIssue, CreatedAt: t0.Add(time.Duration(i) * time.Minute),
		}))
	}

	list, err := repos.Outbound.List(ctx, repository.ListFilter{OrganizationID: "org-1"})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "c", list[0].ID)

	list, _ = repos.Outbound.List(ctx, repository.ListFilter{OrganizationID: "org-1", Ascending: true, Limit: 1, Offset: 1})
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].ID)

	list, _ = repos.Outbound.List(ctx, repository.ListFilter{OrganizationID: "org-1", Search: "taladro it-2"})
	require.Len(t, list, 1)
	assert.Equal(t, "it-2", list[0].ItemID)

	list, _ = repos.Outbound.List(ctx, repository.ListFilter{OrganizationID: "org-2"})
	assert.Empty(t, list)

	ranking, err := repos.Outbound.UsageRanking(ctx, "org-1", 10)
	require.NoError(t, err)
	require.Len(t, ranking, 2)
	assert.Equal(t, "it-1", ranking[0].ItemID)
	assert.Equal(t, int64(2), ranking[0].Count)
	assert.Equal(t, int64(3), ranking[0].Quantity)
}

func TestReturnRepo_UnaDevolucionAbiertaPorSolicitud(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	repos := s.Repositories()

	require.NoError(t, repos.Returns.Create(ctx, &entity.SupplyReturn{ID: "r1", SupplyRequestID: "sr-1", Status: entity.ReturnPending}))
	assert.ErrorIs(t, repos.Returns.Create(ctx, &entity.SupplyReturn{ID: "r2", SupplyRequestID: "sr-1", Status: entity.ReturnPending}),
		domain.ErrSupplyReturnExists)

	r1, _ := repos.Returns.GetByID(ctx, "r1")
	r1.Status = entity.ReturnRejected
	require.NoError(t, repos.Returns.Update(ctx, r1))

	open, err := repos.Returns.GetOpenByRequest(ctx, "sr-1")
	require.NoError(t, err)
	assert.Nil(t, open)
	assert.NoError(t, repos.Returns.Create(ctx, &entity.SupplyReturn{ID: "r2", SupplyRequestID: "sr-1", Status: entity.ReturnPending}))
}
