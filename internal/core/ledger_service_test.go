package core_test

import (
	"context"
	"testing"

	"retail-ledger/internal/core"
	"retail-ledger/internal/store/memory"
)

func TestLedgerService_EndToEnd(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := core.NewLedgerService(store, store)

	if err := store.PutItem(ctx, testItem("ESP-1", "18.50", 5)); err != nil {
		t.Fatalf("PutItem: %v", err)
	}

	l, err := svc.Create(ctx, core.KindSale, core.Actor{Name: "clerk", Role: core.RoleStaff})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	l, err = svc.AddLine(ctx, l.ID, "esp-1", 2)
	if err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if !l.Subtotal.Equal(dec("37.00")) {
		t.Errorf("subtotal = %s, want 37.00", l.Subtotal)
	}

	lineID := l.Lines[0].ID
	l, err = svc.SetQuantity(ctx, l.ID, lineID, 4)
	if err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if !l.Subtotal.Equal(dec("74.00")) {
		t.Errorf("subtotal = %s, want 74.00", l.Subtotal)
	}

	if _, err := svc.SetQuantity(ctx, l.ID, lineID, 9); core.KindOf(err) != core.KindCapacity {
		t.Errorf("quantity above availability: kind = %s, want %s", core.KindOf(err), core.KindCapacity)
	}

	l, err = svc.SetAdjustments(ctx, l.ID, dec("4.00"), dec("6.00"))
	if err != nil {
		t.Fatalf("SetAdjustments: %v", err)
	}
	if !l.Total.Equal(dec("76.00")) {
		t.Errorf("total = %s, want 76.00", l.Total)
	}

	l, err = svc.VoidLine(ctx, l.ID, lineID, "scanner misread")
	if err != nil {
		t.Fatalf("VoidLine: %v", err)
	}
	if !l.Subtotal.IsZero() {
		t.Errorf("subtotal after void = %s, want 0", l.Subtotal)
	}
}

func TestLedgerService_UnknownKindAndItem(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := core.NewLedgerService(store, store)

	if _, err := svc.Create(ctx, "wishlist", core.Actor{Name: "clerk"}); err == nil {
		t.Error("unknown ledger kind should fail")
	}

	l, err := svc.Create(ctx, core.KindPosting, core.Actor{Name: "clerk"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.AddLine(ctx, l.ID, "NOPE", 1); core.KindOf(err) != core.KindNotFound {
		t.Errorf("unknown SKU: kind = %s, want %s", core.KindOf(err), core.KindNotFound)
	}
}

func TestLedgerService_FailedMutationLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := core.NewLedgerService(store, store)

	if err := store.PutItem(ctx, testItem("A", "10.00", 3)); err != nil {
		t.Fatalf("PutItem: %v", err)
	}
	l, err := svc.Create(ctx, core.KindSale, core.Actor{Name: "clerk"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.AddLine(ctx, l.ID, "A", 2); err != nil {
		t.Fatalf("AddLine: %v", err)
	}

	// Pushing past availability fails inside the mutate and must not persist
	// a partial merge.
	if _, err := svc.AddLine(ctx, l.ID, "A", 2); err == nil {
		t.Fatal("expected capacity failure")
	}
	stored, err := svc.Get(ctx, l.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.Lines[0].Quantity != 2 {
		t.Errorf("stored quantity = %d, want 2", stored.Lines[0].Quantity)
	}
}

func TestReportingService_Summaries(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	ledgerSvc := core.NewLedgerService(store, store)
	settlementSvc := core.NewSettlementService(store)
	requestSvc := core.NewRequestService(store, store, settlementSvc, nil)
	reports := core.NewReportingService(store, store, store)

	if err := store.PutItem(ctx, testItem("A", "25.00", 50)); err != nil {
		t.Fatalf("PutItem: %v", err)
	}

	admin := core.Actor{Name: "admin", Role: core.RoleAdmin}
	sale, err := ledgerSvc.Create(ctx, core.KindSale, admin)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	sale, err = ledgerSvc.AddLine(ctx, sale.ID, "A", 4)
	if err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if _, err := ledgerSvc.ComplimentaryLine(ctx, sale.ID, sale.Lines[0].ID, "tasting"); err != nil {
		t.Fatalf("ComplimentaryLine: %v", err)
	}

	summary, err := reports.SalesSummary(ctx, core.KindSale)
	if err != nil {
		t.Fatalf("SalesSummary: %v", err)
	}
	if summary.LedgerCount != 1 {
		t.Errorf("ledger count = %d, want 1", summary.LedgerCount)
	}
	if !summary.GivenAway.Equal(dec("100.00")) {
		t.Errorf("given away = %s, want 100.00", summary.GivenAway)
	}
	if !summary.Revenue.IsZero() {
		t.Errorf("revenue = %s, want 0 (only line was complimentary)", summary.Revenue)
	}

	// A pending request feeds the pipeline's pending value.
	second, err := ledgerSvc.Create(ctx, core.KindSale, admin)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := ledgerSvc.AddLine(ctx, second.ID, "A", 2); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if _, err := requestSvc.Submit(ctx, second.ID, "Walk-in", admin); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	pipeline, err := reports.RequestPipeline(ctx)
	if err != nil {
		t.Fatalf("RequestPipeline: %v", err)
	}
	if pipeline.Pending != 1 || pipeline.Paid != 0 {
		t.Errorf("pipeline = %+v, want 1 pending", pipeline)
	}
	if !pipeline.PendingValue.Equal(dec("50.00")) {
		t.Errorf("pending value = %s, want 50.00", pipeline.PendingValue)
	}

	// Settlement side totals.
	o, err := settlementSvc.OpenObligation(ctx, core.SideCreditor, "Vendor", dec("200.00"), "")
	if err != nil {
		t.Fatalf("OpenObligation: %v", err)
	}
	if _, err := settlementSvc.RecordSettlement(ctx, o.ID, dec("80.00"), core.PayCash, "", "admin"); err != nil {
		t.Fatalf("RecordSettlement: %v", err)
	}

	report, err := reports.ObligationReport(ctx, core.SideCreditor, "")
	if err != nil {
		t.Fatalf("ObligationReport: %v", err)
	}
	if !report.TotalOriginal.Equal(dec("200.00")) {
		t.Errorf("total original = %s, want 200.00", report.TotalOriginal)
	}
	if !report.TotalOutstanding.Equal(dec("120.00")) {
		t.Errorf("total outstanding = %s, want 120.00", report.TotalOutstanding)
	}
	if report.OpenCount != 1 || report.SettledCount != 0 {
		t.Errorf("counts = %d open / %d settled, want 1/0", report.OpenCount, report.SettledCount)
	}
}
