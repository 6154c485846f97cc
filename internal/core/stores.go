package core

import "context"

// Store interfaces are the persistence collaborator boundary. Each Update
// implementation must serialize concurrent mutations per ID: the mutate
// function runs against the current record under exclusion (per-id lock in
// the memory store, SELECT ... FOR UPDATE in postgres), so two simultaneous
// writers can never both read the same stale state. A mutate function that
// returns an error aborts the update with no partial write.

// LedgerStore persists in-progress and finalized ledgers.
type LedgerStore interface {
	CreateLedger(ctx context.Context, l *Ledger) error
	GetLedger(ctx context.Context, id string) (*Ledger, error)
	// UpdateLedger applies mutate to the stored ledger under per-id exclusion
	// and persists the result. Returns the updated ledger.
	UpdateLedger(ctx context.Context, id string, mutate func(*Ledger) error) (*Ledger, error)
	// ListLedgers returns ledgers of the given kind; empty kind means all.
	ListLedgers(ctx context.Context, kind LedgerKind) ([]Ledger, error)
}

// RequestStore persists purchase requests.
type RequestStore interface {
	CreateRequest(ctx context.Context, r *PurchaseRequest) error
	GetRequest(ctx context.Context, id string) (*PurchaseRequest, error)
	UpdateRequest(ctx context.Context, id string, mutate func(*PurchaseRequest) error) (*PurchaseRequest, error)
	// ListRequests returns requests with the given status; empty means all.
	ListRequests(ctx context.Context, status RequestStatus) ([]PurchaseRequest, error)
}

// ObligationStore persists settlement obligations and their records.
type ObligationStore interface {
	CreateObligation(ctx context.Context, o *Obligation) error
	GetObligation(ctx context.Context, id string) (*Obligation, error)
	UpdateObligation(ctx context.Context, id string, mutate func(*Obligation) error) (*Obligation, error)
	// ListObligations filters by side and status; zero values mean no filter.
	ListObligations(ctx context.Context, side ObligationSide, status ObligationStatus) ([]Obligation, error)
}

// ItemStore is the inventory-read collaborator surface.
type ItemStore interface {
	GetItem(ctx context.Context, sku string) (*AvailableItem, error)
	ListItems(ctx context.Context) ([]AvailableItem, error)
	PutItem(ctx context.Context, item AvailableItem) error
}

// UserStore is the identity collaborator surface.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	PutUser(ctx context.Context, u *User) error
}

// Store bundles every store a fully wired service set needs. Both the memory
// and postgres implementations satisfy it.
type Store interface {
	LedgerStore
	RequestStore
	ObligationStore
	ItemStore
	UserStore
}
