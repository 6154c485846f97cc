package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// LedgerService exposes ledger lifecycle operations to adapters, resolving
// items through the inventory-read collaborator and persisting through the
// ledger store.
type LedgerService interface {
	Create(ctx context.Context, kind LedgerKind, actor Actor) (*Ledger, error)
	Get(ctx context.Context, ledgerID string) (*Ledger, error)
	List(ctx context.Context, kind LedgerKind) ([]Ledger, error)

	// AddLine resolves sku against the item catalog and takes qty onto the ledger.
	AddLine(ctx context.Context, ledgerID, sku string, qty int64) (*Ledger, error)
	SetQuantity(ctx context.Context, ledgerID, lineID string, qty int64) (*Ledger, error)
	RemoveLine(ctx context.Context, ledgerID, lineID string) (*Ledger, error)
	ApplyDiscount(ctx context.Context, ledgerID, lineID string, percent decimal.Decimal) (*Ledger, error)
	SetAdjustments(ctx context.Context, ledgerID string, discount, tax decimal.Decimal) (*Ledger, error)

	VoidLine(ctx context.Context, ledgerID, lineID, reason string) (*Ledger, error)
	CancelLine(ctx context.Context, ledgerID, lineID, reason string) (*Ledger, error)
	ComplimentaryLine(ctx context.Context, ledgerID, lineID, reason string) (*Ledger, error)
}

type ledgerService struct {
	ledgers LedgerStore
	items   ItemStore
}

// NewLedgerService constructs a LedgerService.
func NewLedgerService(ledgers LedgerStore, items ItemStore) LedgerService {
	return &ledgerService{ledgers: ledgers, items: items}
}

func (s *ledgerService) Create(ctx context.Context, kind LedgerKind, actor Actor) (*Ledger, error) {
	switch kind {
	case KindSale, KindPosting, KindRequisition:
	default:
		return nil, validationErrorf("unknown ledger kind %q", kind)
	}
	l := NewLedger(kind, actor.Name)
	if err := s.ledgers.CreateLedger(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *ledgerService) Get(ctx context.Context, ledgerID string) (*Ledger, error) {
	return s.ledgers.GetLedger(ctx, ledgerID)
}

func (s *ledgerService) List(ctx context.Context, kind LedgerKind) ([]Ledger, error) {
	return s.ledgers.ListLedgers(ctx, kind)
}

func (s *ledgerService) AddLine(ctx context.Context, ledgerID, sku string, qty int64) (*Ledger, error) {
	item, err := s.items.GetItem(ctx, sku)
	if err != nil {
		return nil, err
	}
	return s.ledgers.UpdateLedger(ctx, ledgerID, func(l *Ledger) error {
		_, err := l.AddLine(*item, qty)
		return err
	})
}

func (s *ledgerService) SetQuantity(ctx context.Context, ledgerID, lineID string, qty int64) (*Ledger, error) {
	return s.ledgers.UpdateLedger(ctx, ledgerID, func(l *Ledger) error {
		return l.SetQuantity(lineID, qty)
	})
}

func (s *ledgerService) RemoveLine(ctx context.Context, ledgerID, lineID string) (*Ledger, error) {
	return s.ledgers.UpdateLedger(ctx, ledgerID, func(l *Ledger) error {
		return l.RemoveLine(lineID)
	})
}

func (s *ledgerService) ApplyDiscount(ctx context.Context, ledgerID, lineID string, percent decimal.Decimal) (*Ledger, error) {
	return s.ledgers.UpdateLedger(ctx, ledgerID, func(l *Ledger) error {
		return l.ApplyDiscount(lineID, percent)
	})
}

func (s *ledgerService) SetAdjustments(ctx context.Context, ledgerID string, discount, tax decimal.Decimal) (*Ledger, error) {
	return s.ledgers.UpdateLedger(ctx, ledgerID, func(l *Ledger) error {
		if err := l.SetDiscount(discount); err != nil {
			return err
		}
		return l.SetTax(tax)
	})
}

func (s *ledgerService) VoidLine(ctx context.Context, ledgerID, lineID, reason string) (*Ledger, error) {
	return s.ledgers.UpdateLedger(ctx, ledgerID, func(l *Ledger) error {
		return l.Void(lineID, reason)
	})
}

func (s *ledgerService) CancelLine(ctx context.Context, ledgerID, lineID, reason string) (*Ledger, error) {
	return s.ledgers.UpdateLedger(ctx, ledgerID, func(l *Ledger) error {
		return l.Cancel(lineID, reason)
	})
}

func (s *ledgerService) ComplimentaryLine(ctx context.Context, ledgerID, lineID, reason string) (*Ledger, error) {
	return s.ledgers.UpdateLedger(ctx, ledgerID, func(l *Ledger) error {
		return l.MarkComplimentary(lineID, reason)
	})
}
