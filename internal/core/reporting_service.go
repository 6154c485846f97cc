package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// ── Report types ──────────────────────────────────────────────────────────────

// ObligationReport aggregates one side of the settlement ledger for dashboards.
type ObligationReport struct {
	Side             ObligationSide       `json:"side"`
	Obligations      []ObligationSnapshot `json:"obligations"`
	TotalOriginal    decimal.Decimal      `json:"total_original"`
	TotalOutstanding decimal.Decimal      `json:"total_outstanding"`
	OpenCount        int                  `json:"open_count"`
	SettledCount     int                  `json:"settled_count"`
}

// SalesSummary aggregates finalized and in-progress ledgers of one kind.
// GivenAway keeps complimentary lines visible for profitability even though
// they contribute nothing to revenue.
type SalesSummary struct {
	Kind           LedgerKind      `json:"kind"`
	LedgerCount    int             `json:"ledger_count"`
	Revenue        decimal.Decimal `json:"revenue"`
	GivenAway      decimal.Decimal `json:"given_away"`
	VoidedLines    int             `json:"voided_lines"`
	CancelledLines int             `json:"cancelled_lines"`
}

// RequestPipeline counts purchase requests per workflow state.
type RequestPipeline struct {
	Pending  int `json:"pending"`
	Unlocked int `json:"unlocked"`
	Paid     int `json:"paid"`
	// PendingValue is the payable total awaiting unlock or payment.
	PendingValue decimal.Decimal `json:"pending_value"`
}

// ReportingService provides derived, read-only views. Nothing here mutates.
type ReportingService interface {
	ObligationReport(ctx context.Context, side ObligationSide, status ObligationStatus) (*ObligationReport, error)
	SalesSummary(ctx context.Context, kind LedgerKind) (*SalesSummary, error)
	RequestPipeline(ctx context.Context) (*RequestPipeline, error)
}

type reportingService struct {
	ledgers     LedgerStore
	requests    RequestStore
	obligations ObligationStore
}

// NewReportingService constructs a ReportingService over the read side of the stores.
func NewReportingService(ledgers LedgerStore, requests RequestStore, obligations ObligationStore) ReportingService {
	return &reportingService{ledgers: ledgers, requests: requests, obligations: obligations}
}

func (s *reportingService) ObligationReport(ctx context.Context, side ObligationSide, status ObligationStatus) (*ObligationReport, error) {
	obligations, err := s.obligations.ListObligations(ctx, side, status)
	if err != nil {
		return nil, err
	}

	report := &ObligationReport{
		Side:             side,
		TotalOriginal:    decimal.Zero,
		TotalOutstanding: decimal.Zero,
	}
	for i := range obligations {
		o := &obligations[i]
		report.Obligations = append(report.Obligations, o.SnapshotView())
		report.TotalOriginal = report.TotalOriginal.Add(o.OriginalAmount)
		report.TotalOutstanding = report.TotalOutstanding.Add(o.RemainingBalance)
		if o.Status == StatusFullyPaid {
			report.SettledCount++
		} else {
			report.OpenCount++
		}
	}
	return report, nil
}

func (s *reportingService) SalesSummary(ctx context.Context, kind LedgerKind) (*SalesSummary, error) {
	ledgers, err := s.ledgers.ListLedgers(ctx, kind)
	if err != nil {
		return nil, err
	}

	summary := &SalesSummary{
		Kind:      kind,
		Revenue:   decimal.Zero,
		GivenAway: decimal.Zero,
	}
	for i := range ledgers {
		l := &ledgers[i]
		summary.LedgerCount++
		summary.Revenue = summary.Revenue.Add(l.Total)
		summary.GivenAway = summary.GivenAway.Add(l.GivenAway)
		for j := range l.Lines {
			switch l.Lines[j].Status {
			case LineVoided:
				summary.VoidedLines++
			case LineCancelled:
				summary.CancelledLines++
			}
		}
	}
	return summary, nil
}

func (s *reportingService) RequestPipeline(ctx context.Context) (*RequestPipeline, error) {
	requests, err := s.requests.ListRequests(ctx, "")
	if err != nil {
		return nil, err
	}

	p := &RequestPipeline{PendingValue: decimal.Zero}
	for i := range requests {
		r := &requests[i]
		switch r.Status {
		case RequestPending:
			p.Pending++
			p.PendingValue = p.PendingValue.Add(r.Payable())
		case RequestUnlocked:
			p.Unlocked++
			p.PendingValue = p.PendingValue.Add(r.Payable())
		case RequestPaid:
			p.Paid++
		}
	}
	return p, nil
}
