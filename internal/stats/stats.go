package stats

import (
	"strings"
	"time"

	"github.com/kdsprimark-ship-it/shipdesk/internal/domain"
	"github.com/kdsprimark-ship-it/shipdesk/internal/state"
)

// PeriodStats aggregates the money figures shown on one dashboard card.
// TotalReceive combines paid bills with direct account receipts.
type PeriodStats struct {
	TotalDoc     float64 `json:"totalDoc"`
	TotalIndian  float64 `json:"totalIndian"`
	TotalReceive float64 `json:"totalReceive"`
	TotalDue     float64 `json:"totalDue"`
}

// Dashboard is the three-card dashboard summary.
type Dashboard struct {
	Today    PeriodStats `json:"today"`
	Month    PeriodStats `json:"month"`
	Lifetime PeriodStats `json:"lifetime"`
}

// DepotCount is one row of the cutoff report.
type DepotCount struct {
	Code  string `json:"code"`
	Alias string `json:"alias,omitempty"`
	Count int    `json:"count"`
}

// CutoffReport maps registered depot codes to occurrence counts.
type CutoffReport struct {
	Depots []DepotCount `json:"depots"`
}

// SheetFilter narrows the master data sheet. Empty fields match everything;
// Search is a case-insensitive substring match on invoice number and buyer,
// Date is an exact day, From/To are inclusive ISO yyyy-mm-dd bounds.
type SheetFilter struct {
	Search  string
	Date    string
	From    string
	To      string
	Shipper string
	Buyer   string
}

// Service computes read-only aggregates over the in-memory dataset.
type Service struct {
	store *state.Store
}

// New builds a stats service.
func New(store *state.Store) *Service {
	return &Service{store: store}
}

// Dashboard aggregates entries, bills, and account receipts into the three
// dashboard periods relative to now.
func (s *Service) Dashboard(now time.Time) Dashboard {
	day := now.Format("2006-01-02")
	month := now.Format("2006-01")

	var d Dashboard
	for _, e := range s.store.IndianEntries.Items() {
		addEntry(&d.Lifetime, e)
		if strings.HasPrefix(e.Date, month) {
			addEntry(&d.Month, e)
		}
		if e.Date == day {
			addEntry(&d.Today, e)
		}
	}
	for _, b := range s.store.BillInfos.Items() {
		addBill(&d.Lifetime, b)
		if strings.HasPrefix(b.Date, month) {
			addBill(&d.Month, b)
		}
		if b.Date == day {
			addBill(&d.Today, b)
		}
	}
	for _, a := range s.store.AccountEntries.Items() {
		d.Lifetime.TotalReceive += a.Amount
		if strings.HasPrefix(a.Date, month) {
			d.Month.TotalReceive += a.Amount
		}
		if a.Date == day {
			d.Today.TotalReceive += a.Amount
		}
	}
	return d
}

func addEntry(p *PeriodStats, e domain.IndianEntry) {
	p.TotalDoc += e.Doc
	p.TotalIndian += e.TotalTaka
}

func addBill(p *PeriodStats, b domain.BillInfo) {
	p.TotalReceive += b.PaidBill
	p.TotalDue += b.DueBill
}

// Cutoff counts case-insensitive occurrences of every registered depot code
// in a pasted text blob, typically a cutoff notice copied from a carrier
// mail. An alias counts toward its code.
func (s *Service) Cutoff(text string) CutoffReport {
	upper := strings.ToUpper(text)
	codes := s.store.DepotCodes.Items()
	report := CutoffReport{Depots: make([]DepotCount, len(codes))}
	for i, c := range codes {
		count := strings.Count(upper, strings.ToUpper(c.Code))
		if c.Alias != "" {
			count += strings.Count(upper, strings.ToUpper(c.Alias))
		}
		report.Depots[i] = DepotCount{Code: c.Code, Alias: c.Alias, Count: count}
	}
	return report
}

// Sheet returns entries matching the filter in display order.
func (s *Service) Sheet(f SheetFilter) []domain.IndianEntry {
	search := strings.ToLower(f.Search)
	var rows []domain.IndianEntry
	for _, e := range s.store.IndianEntries.Items() {
		if search != "" &&
			!strings.Contains(strings.ToLower(e.InvoiceNo), search) &&
			!strings.Contains(strings.ToLower(e.BuyerName), search) {
			continue
		}
		if f.Date != "" && e.Date != f.Date {
			continue
		}
		if f.From != "" && e.Date < f.From {
			continue
		}
		if f.To != "" && e.Date > f.To {
			continue
		}
		if f.Shipper != "" && !strings.EqualFold(e.ShipperName, f.Shipper) {
			continue
		}
		if f.Buyer != "" && !strings.EqualFold(e.BuyerName, f.Buyer) {
			continue
		}
		rows = append(rows, e)
	}
	return rows
}
