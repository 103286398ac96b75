// Package memory implementa todos los repositorios y el TxRunner en memoria.
// Las transacciones se serializan con un mutex y trabajan sobre una copia del estado
// que solo se publica si el callback termina sin error.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/suministros-api/internal/application/inventory"
	"github.com/jhoicas/suministros-api/internal/domain/entity"
	"github.com/jhoicas/suministros-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

type state struct {
	items         map[string]entity.Item
	instances     map[string]entity.ItemInstance
	inbound       map[string]entity.InventoryIn
	outbound      map[string]entity.InventoryOut
	requests      map[string]entity.SupplyRequest
	returns       map[string]entity.SupplyReturn
	chase         map[string]entity.ChaseItem
	registers     map[string]entity.RegisterItem
	categories    map[string]entity.Category
	organizations map[string]entity.Organization
	users         map[string]entity.User
	seq           int64
}

func newState() *state {
	return &state{
		items:         map[string]entity.Item{},
		instances:     map[string]entity.ItemInstance{},
		inbound:       map[string]entity.InventoryIn{},
		outbound:      map[string]entity.InventoryOut{},
		requests:      map[string]entity.SupplyRequest{},
		returns:       map[string]entity.SupplyReturn{},
		chase:         map[string]entity.ChaseItem{},
		registers:     map[string]entity.RegisterItem{},
		categories:    map[string]entity.Category{},
		organizations: map[string]entity.Organization{},
		users:         map[string]entity.User{},
	}
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *state) clone() *state {
	return &state{
		items:         cloneMap(s.items),
		instances:     cloneMap(s.instances),
		inbound:       cloneMap(s.inbound),
		outbound:      cloneMap(s.outbound),
		requests:      cloneMap(s.requests),
		returns:       cloneMap(s.returns),
		chase:         cloneMap(s.chase),
		registers:     cloneMap(s.registers),
		categories:    cloneMap(s.categories),
		organizations: cloneMap(s.organizations),
		users:         cloneMap(s.users),
		seq:           s.seq,
	}
}

// Store estado confirmado más los candados de transacción.
// txMu serializa transacciones y escrituras fuera de ellas; dataMu protege el puntero al estado confirmado.
type Store struct {
	txMu   sync.Mutex
	dataMu sync.RWMutex
	data   *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

// Repositories devuelve repositorios que leen y escriben el estado confirmado.
func (s *Store) Repositories() repository.Repositories {
	return bind(&view{store: s})
}

// Run ejecuta fn sobre una copia del estado y la publica solo si fn no devuelve error.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.dataMu.RLock()
	work := s.data.clone()
	s.dataMu.RUnlock()

	if err := fn(bind(&view{store: s, tx: work})); err != nil {
		return err
	}
	s.dataMu.Lock()
	s.data = work
	s.dataMu.Unlock()
	return nil
}

// view resuelve sobre qué estado opera un repositorio: la copia de una transacción o el confirmado.
type view struct {
	store *Store
	tx    *state
}

func (v *view) read(fn func(d *state)) {
	if v.tx != nil {
		fn(v.tx)
		return
	}
	v.store.dataMu.RLock()
	defer v.store.dataMu.RUnlock()
	fn(v.store.data)
}

func (v *view) write(fn func(d *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.txMu.Lock()
	defer v.store.txMu.Unlock()
	v.store.dataMu.Lock()
	defer v.store.dataMu.Unlock()
	return fn(v.store.data)
}

func bind(v *view) repository.Repositories {
	return repository.Repositories{
		Items:         &itemRepo{v: v},
		Instances:     &instanceRepo{v: v},
		Inbound:       &inboundRepo{v: v},
		Outbound:      &outboundRepo{v: v},
		Requests:      &requestRepo{v: v},
		Returns:       &returnRepo{v: v},
		Chase:         &chaseRepo{v: v},
		Registers:     &registerRepo{v: v},
		Categories:    &categoryRepo{v: v},
		Organizations: &organizationRepo{v: v},
		Users:         &userRepo{v: v},
	}
}
