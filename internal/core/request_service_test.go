package core_test

import (
	"context"
	"testing"

	"retail-ledger/internal/core"
	"retail-ledger/internal/store/memory"
)

type captureSink struct {
	finalized []core.FinalizedTransaction
}

func (c *captureSink) TransactionFinalized(tx core.FinalizedTransaction) {
	c.finalized = append(c.finalized, tx)
}

type requestFixture struct {
	store       *memory.Store
	settlements core.SettlementService
	requests    core.RequestService
	sink        *captureSink
}

func newRequestFixture() *requestFixture {
	store := memory.New()
	sink := &captureSink{}
	settlements := core.NewSettlementService(store)
	return &requestFixture{
		store:       store,
		settlements: settlements,
		requests:    core.NewRequestService(store, store, settlements, sink),
		sink:        sink,
	}
}

// seedLedger stores a three-line ledger (subtotal 450.00) and returns its ID.
func seedLedger(t *testing.T, store *memory.Store) string {
	t.Helper()
	l := core.NewLedger(core.KindSale, "staff-user")
	for _, ln := range []struct {
		sku   string
		price string
		qty   int64
	}{
		{"A", "100.00", 1},
		{"B", "150.00", 1},
		{"C", "200.00", 1},
	} {
		if _, err := l.AddLine(testItem(ln.sku, ln.price, 100), ln.qty); err != nil {
			t.Fatalf("AddLine(%s): %v", ln.sku, err)
		}
	}
	if err := store.CreateLedger(context.Background(), l); err != nil {
		t.Fatalf("CreateLedger: %v", err)
	}
	return l.ID
}

func TestRequest_ApprovalWorkflow(t *testing.T) {
	ctx := context.Background()
	f := newRequestFixture()
	ledgerID := seedLedger(t, f.store)

	staff := core.Actor{Name: "staff-user", Role: core.RoleStaff}
	admin := core.Actor{Name: "admin-user", Role: core.RoleAdmin}

	req, err := f.requests.Submit(ctx, ledgerID, "Walk-in", staff)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if req.Status != core.RequestPending {
		t.Fatalf("status = %s, want pending", req.Status)
	}
	if !req.Subtotal.Equal(dec("450.00")) {
		t.Errorf("subtotal = %s, want 450.00", req.Subtotal)
	}

	// The source ledger is frozen the moment it is submitted.
	stored, err := f.store.GetLedger(ctx, ledgerID)
	if err != nil {
		t.Fatalf("GetLedger: %v", err)
	}
	if !stored.Finalized {
		t.Error("source ledger should be finalized after submit")
	}

	// Staff cannot unlock.
	if _, err := f.requests.Unlock(ctx, req.ID, staff); err == nil {
		t.Error("staff unlock should fail")
	} else if core.KindOf(err) != core.KindState {
		t.Errorf("error kind = %s, want %s", core.KindOf(err), core.KindState)
	}

	// Payment before unlock fails.
	if _, err := f.requests.CompletePayment(ctx, req.ID, core.PayCash, admin); err == nil {
		t.Error("payment before unlock should fail")
	}

	if _, err := f.requests.SetCharges(ctx, req.ID, dec("50.00"), admin); err != nil {
		t.Fatalf("SetCharges: %v", err)
	}
	if _, err := f.requests.Unlock(ctx, req.ID, admin); err != nil {
		t.Fatalf("Unlock: %v", err)
	}

	req, err = f.requests.CompletePayment(ctx, req.ID, core.PayCash, admin)
	if err != nil {
		t.Fatalf("CompletePayment: %v", err)
	}
	if req.Status != core.RequestPaid {
		t.Errorf("status = %s, want paid", req.Status)
	}
	if !req.Payable().Equal(dec("500.00")) {
		t.Errorf("payable = %s, want 500.00", req.Payable())
	}
	if req.PaidAt == nil {
		t.Error("PaidAt should be set")
	}

	if len(f.sink.finalized) != 1 {
		t.Fatalf("sink received %d transactions, want 1", len(f.sink.finalized))
	}
	if !f.sink.finalized[0].Total.Equal(dec("500.00")) {
		t.Errorf("finalized total = %s, want 500.00", f.sink.finalized[0].Total)
	}

	// Cash payment opens no obligation.
	obligations, err := f.settlements.List(ctx, "", "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(obligations) != 0 {
		t.Errorf("cash payment opened %d obligations, want 0", len(obligations))
	}
}

func TestRequest_SubmitRejectsEmptyLedger(t *testing.T) {
	ctx := context.Background()
	f := newRequestFixture()
	l := core.NewLedger(core.KindSale, "staff-user")
	if err := f.store.CreateLedger(ctx, l); err != nil {
		t.Fatalf("CreateLedger: %v", err)
	}

	if _, err := f.requests.Submit(ctx, l.ID, "", core.Actor{Name: "staff-user", Role: core.RoleStaff}); err == nil {
		t.Fatal("submitting a ledger with no active lines should fail")
	}

	// The failed submission must leave the ledger mutable.
	stored, err := f.store.GetLedger(ctx, l.ID)
	if err != nil {
		t.Fatalf("GetLedger: %v", err)
	}
	if stored.Finalized {
		t.Error("ledger should not be finalized after a failed submit")
	}
}

func TestRequest_UnlockIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newRequestFixture()
	ledgerID := seedLedger(t, f.store)
	admin := core.Actor{Name: "admin-user", Role: core.RoleAdmin}

	req, err := f.requests.Submit(ctx, ledgerID, "", admin)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	first, err := f.requests.Unlock(ctx, req.ID, admin)
	if err != nil {
		t.Fatalf("first Unlock: %v", err)
	}
	second, err := f.requests.Unlock(ctx, req.ID, admin)
	if err != nil {
		t.Fatalf("repeated Unlock: %v", err)
	}
	if second.Status != core.RequestUnlocked {
		t.Errorf("status = %s, want unlocked", second.Status)
	}
	if first.UnlockedAt == nil || second.UnlockedAt == nil {
		t.Fatal("UnlockedAt should be set")
	}
	if !second.UnlockedAt.Equal(*first.UnlockedAt) {
		t.Error("repeated unlock must not move the unlock timestamp")
	}
}

func TestRequest_LifecycleIsMonotonic(t *testing.T) {
	ctx := context.Background()
	f := newRequestFixture()
	ledgerID := seedLedger(t, f.store)
	admin := core.Actor{Name: "admin-user", Role: core.RoleAdmin}

	req, err := f.requests.Submit(ctx, ledgerID, "", admin)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := f.requests.Unlock(ctx, req.ID, admin); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if _, err := f.requests.CompletePayment(ctx, req.ID, core.PayCard, admin); err != nil {
		t.Fatalf("CompletePayment: %v", err)
	}

	if _, err := f.requests.CompletePayment(ctx, req.ID, core.PayCash, admin); err == nil {
		t.Error("paying a paid request should fail")
	}
	if _, err := f.requests.Unlock(ctx, req.ID, admin); err == nil {
		t.Error("unlocking a paid request should fail")
	}
	if _, err := f.requests.SetCharges(ctx, req.ID, dec("10"), admin); err == nil {
		t.Error("changing charges on a paid request should fail")
	}
}

func TestRequest_CreditPaymentOpensReceivable(t *testing.T) {
	ctx := context.Background()
	f := newRequestFixture()
	ledgerID := seedLedger(t, f.store)
	admin := core.Actor{Name: "admin-user", Role: core.RoleAdmin}

	req, err := f.requests.Submit(ctx, ledgerID, "R. Okafor", admin)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := f.requests.SetCharges(ctx, req.ID, dec("50.00"), admin); err != nil {
		t.Fatalf("SetCharges: %v", err)
	}
	if _, err := f.requests.Unlock(ctx, req.ID, admin); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if _, err := f.requests.CompletePayment(ctx, req.ID, core.PayCredit, admin); err != nil {
		t.Fatalf("CompletePayment: %v", err)
	}

	receivables, err := f.settlements.List(ctx, core.SideReceivable, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(receivables) != 1 {
		t.Fatalf("receivables = %d, want 1", len(receivables))
	}
	o := receivables[0]
	if o.CounterpartyName != "R. Okafor" {
		t.Errorf("counterparty = %q, want R. Okafor", o.CounterpartyName)
	}
	if !o.OriginalAmount.Equal(dec("500.00")) {
		t.Errorf("original amount = %s, want payable 500.00", o.OriginalAmount)
	}
	if o.SourceRequestID != req.ID {
		t.Errorf("source request = %q, want %q", o.SourceRequestID, req.ID)
	}
	if o.Status != core.StatusUnpaid {
		t.Errorf("status = %s, want unpaid", o.Status)
	}
}

func TestRequest_PaymentValidation(t *testing.T) {
	ctx := context.Background()
	f := newRequestFixture()
	ledgerID := seedLedger(t, f.store)
	admin := core.Actor{Name: "admin-user", Role: core.RoleAdmin}

	req, err := f.requests.Submit(ctx, ledgerID, "", admin)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := f.requests.Unlock(ctx, req.ID, admin); err != nil {
		t.Fatalf("Unlock: %v", err)
	}

	if _, err := f.requests.CompletePayment(ctx, req.ID, "barter", admin); err == nil {
		t.Error("unknown payment method should fail")
	} else if core.KindOf(err) != core.KindValidation {
		t.Errorf("error kind = %s, want %s", core.KindOf(err), core.KindValidation)
	}
	if _, err := f.requests.SetCharges(ctx, req.ID, dec("-5"), admin); err == nil {
		t.Error("negative charges should fail")
	}
}

func TestRoleFromDesignation(t *testing.T) {
	tests := []struct {
		designation string
		want        core.Role
	}{
		{"super", core.RoleSuper},
		{"admin", core.RoleAdmin},
		{"manager", core.RoleAdmin},
		{"staff", core.RoleStaff},
		{"cashier", core.RoleStaff},
		{"", core.RoleStaff},
	}
	for _, tt := range tests {
		if got := core.RoleFromDesignation(tt.designation); got != tt.want {
			t.Errorf("RoleFromDesignation(%q) = %s, want %s", tt.designation, got, tt.want)
		}
	}

	if core.CanUnlock(core.RoleStaff) {
		t.Error("staff must not unlock")
	}
	if !core.CanUnlock(core.RoleAdmin) || !core.CanUnlock(core.RoleSuper) {
		t.Error("admin and super must unlock")
	}
}
