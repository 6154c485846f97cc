package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role is an actor's capability level, derived from the identity collaborator's
// designation at login. Capability checks are explicit functions here, never
// scattered string comparisons in handlers.
type Role string

const (
	RoleSuper Role = "super"
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// CanUnlock reports whether the role may unlock a pending purchase request
// for payment. Staff may only submit.
func CanUnlock(r Role) bool {
	return r == RoleSuper || r == RoleAdmin
}

// RoleFromDesignation maps an identity-provider designation onto a Role.
// Unknown designations get the least privilege.
func RoleFromDesignation(designation string) Role {
	switch designation {
	case "super":
		return RoleSuper
	case "admin", "manager":
		return RoleAdmin
	default:
		return RoleStaff
	}
}

// Actor identifies who is performing an operation.
type Actor struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// PaymentMethod is how a finalized transaction was (or will be) paid.
type PaymentMethod string

const (
	PayCash   PaymentMethod = "cash"
	PayCard   PaymentMethod = "card"
	PayMobile PaymentMethod = "mobile"
	// PayCredit defers settlement: completing payment on credit opens a
	// receivable obligation instead of collecting immediately.
	PayCredit PaymentMethod = "credit"
)

// DeferredSettlement reports whether the method leaves a balance open.
func (m PaymentMethod) DeferredSettlement() bool { return m == PayCredit }

// LoginResult is the shape received from the identity collaborator.
type LoginResult struct {
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	Designation string `json:"designation"`
}

// AvailableItem is the shape received from the inventory-read collaborator.
// AvailableQuantity bounds how much of the item a ledger may take.
type AvailableItem struct {
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	AvailableQuantity int64           `json:"availableQuantity"`
	UnitPrice         decimal.Decimal `json:"unitPrice"`
}

// FinalizedTransaction is emitted when a purchase request is paid, consumed
// by receipt/report collaborators.
type FinalizedTransaction struct {
	ID            string          `json:"id"`
	Lines         []LineItem      `json:"lines"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Timestamp     time.Time       `json:"timestamp"`
}

// TransactionSink consumes finalized transactions. Implementations must be
// tolerant of duplicate delivery for the same transaction ID.
type TransactionSink interface {
	TransactionFinalized(tx FinalizedTransaction)
}

// User is an authenticated system user.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Designation  string    `json:"designation"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Login derives the collaborator-facing login shape from the user record.
func (u *User) Login() LoginResult {
	return LoginResult{Email: u.Email, FullName: u.FullName, Designation: u.Designation}
}
