// Package memory provides an in-process Store used for development mode and
// tests. A single mutex guards all maps, which trivially gives the per-id
// serialization the store contract requires: an Update* mutate function runs
// start to finish under the lock, so no two writers ever see stale state.
package memory

import (
	"context"
	"strings"
	"sync"

	"retail-ledger/internal/core"
)

type Store struct {
	mu          sync.Mutex
	ledgers     map[string]*core.Ledger
	requests    map[string]*core.PurchaseRequest
	obligations map[string]*core.Obligation
	items       map[string]core.AvailableItem
	users       map[string]*core.User

	// insertion order for deterministic listings
	ledgerOrder     []string
	requestOrder    []string
	obligationOrder []string
	itemOrder       []string
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{
		ledgers:     map[string]*core.Ledger{},
		requests:    map[string]*core.PurchaseRequest{},
		obligations: map[string]*core.Obligation{},
		items:       map[string]core.AvailableItem{},
		users:       map[string]*core.User{},
	}
}

var _ core.Store = (*Store)(nil)

// ── Ledgers ───────────────────────────────────────────────────────────────────

func (s *Store) CreateLedger(_ context.Context, l *core.Ledger) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ledgers[l.ID]; ok {
		return &core.Error{Kind: core.KindConflict, Msg: "ledger " + l.ID + " already exists"}
	}
	cp := l.Snapshot()
	s.ledgers[l.ID] = &cp
	s.ledgerOrder = append(s.ledgerOrder, l.ID)
	return nil
}

func (s *Store) GetLedger(_ context.Context, id string) (*core.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.ledgers[id]
	if !ok {
		return nil, &core.Error{Kind: core.KindNotFound, Msg: "ledger " + id + " not found"}
	}
	cp := l.Snapshot()
	return &cp, nil
}

func (s *Store) UpdateLedger(_ context.Context, id string, mutate func(*core.Ledger) error) (*core.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.ledgers[id]
	if !ok {
		return nil, &core.Error{Kind: core.KindNotFound, Msg: "ledger " + id + " not found"}
	}
	// Mutate a copy so a failed mutation leaves the stored record untouched.
	work := l.Snapshot()
	if err := mutate(&work); err != nil {
		return nil, err
	}
	s.ledgers[id] = &work
	out := work.Snapshot()
	return &out, nil
}

func (s *Store) ListLedgers(_ context.Context, kind core.LedgerKind) ([]core.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Ledger
	for _, id := range s.ledgerOrder {
		l := s.ledgers[id]
		if kind != "" && l.Kind != kind {
			continue
		}
		out = append(out, l.Snapshot())
	}
	return out, nil
}

// ── Purchase requests ─────────────────────────────────────────────────────────

func copyRequest(r *core.PurchaseRequest) core.PurchaseRequest {
	cp := *r
	cp.Snapshot = r.Snapshot.Snapshot()
	return cp
}

func (s *Store) CreateRequest(_ context.Context, r *core.PurchaseRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.requests[r.ID]; ok {
		return &core.Error{Kind: core.KindConflict, Msg: "request " + r.ID + " already exists"}
	}
	cp := copyRequest(r)
	s.requests[r.ID] = &cp
	s.requestOrder = append(s.requestOrder, r.ID)
	return nil
}

func (s *Store) GetRequest(_ context.Context, id string) (*core.PurchaseRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok {
		return nil, &core.Error{Kind: core.KindNotFound, Msg: "request " + id + " not found"}
	}
	cp := copyRequest(r)
	return &cp, nil
}

func (s *Store) UpdateRequest(_ context.Context, id string, mutate func(*core.PurchaseRequest) error) (*core.PurchaseRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok {
		return nil, &core.Error{Kind: core.KindNotFound, Msg: "request " + id + " not found"}
	}
	work := copyRequest(r)
	if err := mutate(&work); err != nil {
		return nil, err
	}
	s.requests[id] = &work
	out := copyRequest(&work)
	return &out, nil
}

func (s *Store) ListRequests(_ context.Context, status core.RequestStatus) ([]core.PurchaseRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.PurchaseRequest
	for _, id := range s.requestOrder {
		r := s.requests[id]
		if status != "" && r.Status != status {
			continue
		}
		out = append(out, copyRequest(r))
	}
	return out, nil
}

// ── Obligations ───────────────────────────────────────────────────────────────

func copyObligation(o *core.Obligation) core.Obligation {
	cp := *o
	cp.Settlements = make([]core.SettlementRecord, len(o.Settlements))
	copy(cp.Settlements, o.Settlements)
	return cp
}

func (s *Store) CreateObligation(_ context.Context, o *core.Obligation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.obligations[o.ID]; ok {
		return &core.Error{Kind: core.KindConflict, Msg: "obligation " + o.ID + " already exists"}
	}
	cp := copyObligation(o)
	s.obligations[o.ID] = &cp
	s.obligationOrder = append(s.obligationOrder, o.ID)
	return nil
}

func (s *Store) GetObligation(_ context.Context, id string) (*core.Obligation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.obligations[id]
	if !ok {
		return nil, &core.Error{Kind: core.KindNotFound, Msg: "obligation " + id + " not found"}
	}
	cp := copyObligation(o)
	return &cp, nil
}

func (s *Store) UpdateObligation(_ context.Context, id string, mutate func(*core.Obligation) error) (*core.Obligation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.obligations[id]
	if !ok {
		return nil, &core.Error{Kind: core.KindNotFound, Msg: "obligation " + id + " not found"}
	}
	work := copyObligation(o)
	if err := mutate(&work); err != nil {
		return nil, err
	}
	s.obligations[id] = &work
	out := copyObligation(&work)
	return &out, nil
}

func (s *Store) ListObligations(_ context.Context, side core.ObligationSide, status core.ObligationStatus) ([]core.Obligation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Obligation
	for _, id := range s.obligationOrder {
		o := s.obligations[id]
		if side != "" && o.Side != side {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, copyObligation(o))
	}
	return out, nil
}

// ── Items ─────────────────────────────────────────────────────────────────────

func (s *Store) GetItem(_ context.Context, sku string) (*core.AvailableItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sku = strings.ToUpper(strings.TrimSpace(sku))
	item, ok := s.items[sku]
	if !ok {
		return nil, &core.Error{Kind: core.KindNotFound, Msg: "item " + sku + " not found"}
	}
	return &item, nil
}

func (s *Store) ListItems(_ context.Context) ([]core.AvailableItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.AvailableItem, 0, len(s.itemOrder))
	for _, sku := range s.itemOrder {
		out = append(out, s.items[sku])
	}
	return out, nil
}

func (s *Store) PutItem(_ context.Context, item core.AvailableItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sku := strings.ToUpper(strings.TrimSpace(item.SKU))
	item.SKU = sku
	if _, ok := s.items[sku]; !ok {
		s.itemOrder = append(s.itemOrder, sku)
	}
	s.items[sku] = item
	return nil
}

// ── Users ─────────────────────────────────────────────────────────────────────

func (s *Store) GetUserByEmail(_ context.Context, email string) (*core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[strings.ToLower(email)]
	if !ok {
		return nil, &core.Error{Kind: core.KindNotFound, Msg: "user " + email + " not found"}
	}
	cp := *u
	return &cp, nil
}

func (s *Store) PutUser(_ context.Context, u *core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *u
	s.users[strings.ToLower(u.Email)] = &cp
	return nil
}
