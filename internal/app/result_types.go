package app

import "retail-ledger/internal/core"

// LedgerResult wraps a single ledger.
type LedgerResult struct {
	Ledger *core.Ledger `json:"ledger"`
}

// LedgerListResult wraps a ledger listing.
type LedgerListResult struct {
	Ledgers []core.Ledger `json:"ledgers"`
}

// ItemListResult wraps the item catalog.
type ItemListResult struct {
	Items []core.AvailableItem `json:"items"`
}

// RequestResult wraps a single purchase request.
type RequestResult struct {
	Request *core.PurchaseRequest `json:"request"`
}

// RequestListResult wraps a purchase request listing.
type RequestListResult struct {
	Requests []core.PurchaseRequest `json:"requests"`
}

// ObligationResult wraps a single obligation snapshot.
type ObligationResult struct {
	Obligation core.ObligationSnapshot `json:"obligation"`
}

// ObligationListResult wraps an obligation listing.
type ObligationListResult struct {
	Obligations []core.ObligationSnapshot `json:"obligations"`
}

// HistoryResult wraps an obligation's settlement history in insertion order.
type HistoryResult struct {
	ObligationID string                  `json:"obligation_id"`
	Records      []core.SettlementRecord `json:"records"`
}

// LoginResult wraps the identity shape plus the derived role.
type LoginResult struct {
	Login core.LoginResult `json:"login"`
	Role  core.Role        `json:"role"`
}
