package domain

import "strings"

// DocSurcharge is the fixed per-doc add-on applied when a bill is created
// against a matched Indian entry.
const DocSurcharge = 165.0

// DefaultRateTable returns the built-in per-condition rates used when no
// buyer-specific PriceRate exists and settings carry no override table.
func DefaultRateTable() map[RateCondition]float64 {
	return map[RateCondition]float64{
		ConditionDoc:         485,
		ConditionCtn:         3,
		ConditionTon:         249,
		ConditionTruckUnload: 150,
	}
}

// ResolveRate returns the per-unit rate for buyer + condition: a matching
// PriceRate wins, then the defaults table, then the built-in table.
func ResolveRate(priceRates []PriceRate, buyer string, cond RateCondition, defaults map[RateCondition]float64) float64 {
	for _, r := range priceRates {
		if r.BuyerName == buyer && r.Condition == cond {
			return r.Rate
		}
	}
	if rate, ok := defaults[cond]; ok {
		return rate
	}
	return DefaultRateTable()[cond]
}

// ComputeTotalTaka prices an entry: every unit field times its resolved rate,
// plus the flat con and others amounts.
func ComputeTotalTaka(e IndianEntry, priceRates []PriceRate, defaults map[RateCondition]float64) float64 {
	total := e.Doc * ResolveRate(priceRates, e.BuyerName, ConditionDoc, defaults)
	total += e.Ctn * ResolveRate(priceRates, e.BuyerName, ConditionCtn, defaults)
	total += e.Ton * ResolveRate(priceRates, e.BuyerName, ConditionTon, defaults)
	total += e.TruckUnload * ResolveRate(priceRates, e.BuyerName, ConditionTruckUnload, defaults)
	total += e.Con + e.Others
	return total
}

// MatchEntryByInvoice finds the Indian entry whose invoice number equals
// invoiceNo, compared case-insensitively. At most one match is expected.
func MatchEntryByInvoice(entries []IndianEntry, invoiceNo string) (IndianEntry, bool) {
	for _, e := range entries {
		if strings.EqualFold(e.InvoiceNo, invoiceNo) {
			return e, true
		}
	}
	return IndianEntry{}, false
}

// BuildBill freezes a bill against the matched Indian entry:
// totalBill = totalTaka + doc*DocSurcharge, dueBill and miscApprovedBill are
// complementary and at most one of them is nonzero.
func BuildBill(date, invoiceNo string, paidBill float64, entries []IndianEntry) (BillInfo, error) {
	entry, ok := MatchEntryByInvoice(entries, invoiceNo)
	if !ok {
		return BillInfo{}, ErrNoMatchingEntry
	}

	totalBill := entry.TotalTaka + entry.Doc*DocSurcharge
	dueBill := totalBill - paidBill
	if dueBill < 0 {
		dueBill = 0
	}
	miscApproved := paidBill - totalBill
	if miscApproved < 0 {
		miscApproved = 0
	}

	return BillInfo{
		Date:             date,
		InvoiceNo:        invoiceNo,
		ShipperName:      entry.ShipperName,
		TotalDoc:         entry.Doc,
		TotalIndian:      entry.TotalTaka,
		TotalBill:        totalBill,
		PaidBill:         paidBill,
		DueBill:          dueBill,
		MiscApprovedBill: miscApproved,
	}, nil
}
