package supply_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/suministros-api/internal/application/dto"
	"github.com/jhoicas/suministros-api/internal/application/inventory"
	"github.com/jhoicas/suministros-api/internal/application/ports"
	"github.com/jhoicas/suministros-api/internal/application/supply"
	"github.com/jhoicas/suministros-api/internal/domain/entity"
	"github.com/jhoicas/suministros-api/internal/domain/repository"
	"github.com/jhoicas/suministros-api/internal/infrastructure/memory"
	"github.com/jhoicas/suministros-api/pkg/logger"
)

const (
	orgID      = "org-1"
	categoryID = "cat-1"
	managerID  = "u-manager"
	userID     = "u-user"
	otherID    = "u-other"
)

// recordingNotifier guarda los eventos recibidos; con fail=true además devuelve error.
type recordingNotifier struct {
	mu     sync.Mutex
	events []ports.Event
	fail   bool
}

func (n *recordingNotifier) Notify(_ context.Context, e ports.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
	if n.fail {
		return errors.New("canal caído")
	}
	return nil
}

func (n *recordingNotifier) kinds() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.events))
	for _, e := range n.events {
		out = append(out, e.Kind)
	}
	return out
}

// engine arma el motor completo sobre el store en memoria.
type engine struct {
	ctx       context.Context
	store     *memory.Store
	repos     repository.Repositories
	notifier  *recordingNotifier
	items     *inventory.ItemUseCase
	purchases *inventory.PurchaseUseCase
	outbound  *inventory.OutboundLedger
	inbound   *inventory.InboundLedger
	requests  *supply.RequestUseCase
	returns   *supply.ReturnUseCase
	export    *supply.ExportUseCase
}

func newEngine() (*engine, error) {
	ctx := context.Background()
	log := logger.Nop()
	store := memory.NewStore()
	repos := store.Repositories()

	now := time.Now()
	if err := repos.Organizations.Create(ctx, &entity.Organization{ID: orgID, Name: "Soporte", CreatedAt: now}); err != nil {
		return nil, err
	}
	if err := repos.Categories.Create(ctx, &entity.Category{ID: categoryID, OrganizationID: orgID, Name: "Equipos", CreatedAt: now}); err != nil {
		return nil, err
	}
	users := map[string]string{managerID: entity.RoleManager, userID: entity.RoleUser, otherID: entity.RoleUser}
	for id, role := range users {
		if err := repos.Users.Create(ctx, &entity.User{
			ID: id, OrganizationID: orgID, Email: id + "@test.local", Role: role,
			Status: entity.UserActive, CreatedAt: now, UpdatedAt: now,
		}); err != nil {
			return nil, err
		}
	}

	notifier := &recordingNotifier{}
	pool := inventory.NewInstancePool(log)
	inbound := inventory.NewInboundLedger(store, repos, pool, nil, log)
	outbound := inventory.NewOutboundLedger(repos, pool, log)
	returns := supply.NewReturnUseCase(store, repos, inbound, nil, notifier, log)
	return &engine{
		ctx:       ctx,
		store:     store,
		repos:     repos,
		notifier:  notifier,
		items:     inventory.NewItemUseCase(store, repos, log),
		purchases: inventory.NewPurchaseUseCase(store, repos, inbound, pool, nil, log),
		outbound:  outbound,
		inbound:   inbound,
		requests:  supply.NewRequestUseCase(store, repos, outbound, returns, notifier, log),
		returns:   returns,
		export:    supply.NewExportUseCase(repos),
	}, nil
}

func mustEngine(t *testing.T) *engine {
	t.Helper()
	e, err := newEngine()
	require.NoError(t, err)
	return e
}

func caller(id string) dto.Caller {
	role := entity.RoleUser
	if id == managerID {
		role = entity.RoleManager
	}
	return dto.Caller{UserID: id, OrganizationID: orgID, Role: role}
}

func (e *engine) purchase(name string, qty int64) (string, error) {
	reg, err := e.purchases.Register(e.ctx, caller(managerID), dto.RegisterItemRequest{
		Kind: entity.InboundPurchase, CategoryID: categoryID, Name: name, Quantity: qty, ReturnRequired: true,
	})
	if err != nil {
		return "", err
	}
	return reg.ItemID, nil
}

func (e *engine) request(itemID string, qty int64, rental bool) (*dto.SupplyRequestResponse, error) {
	in := dto.CreateSupplyRequest{ItemID: itemID, Quantity: qty, Purpose: "evento", Rental: rental}
	if rental {
		ret := time.Now().Add(48 * time.Hour)
		in.ReturnDate = &ret
	}
	return e.requests.Create(e.ctx, caller(userID), in)
}

func (e *engine) setRequestStatus(id, status string) (*dto.SupplyRequestResponse, error) {
	return e.requests.UpdateStatus(e.ctx, caller(managerID), id, dto.UpdateStatusRequest{Status: status})
}

func (e *engine) item(itemID string) (*dto.ItemResponse, error) {
	return e.items.GetItem(e.ctx, caller(managerID), itemID)
}

// dispositions cuenta las unidades ACTIVE por disposición.
func (e *engine) dispositions(itemID string) (map[string]int, error) {
	list, err := e.items.ListInstances(e.ctx, caller(managerID), itemID)
	if err != nil {
		return nil, err
	}
	out := map[string]int{}
	for _, in := range list {
		if in.Status == entity.StatusActive {
			out[in.Disposition]++
		}
	}
	return out, nil
}

func (e *engine) outboundRows() ([]dto.OutboundResponse, error) {
	return e.outbound.ListOutbound(e.ctx, caller(managerID), dto.LedgerQuery{})
}

func (e *engine) inboundRows(kind string) ([]dto.InboundResponse, error) {
	return e.inbound.ListInbound(e.ctx, caller(managerID), dto.LedgerQuery{Kind: kind})
}
