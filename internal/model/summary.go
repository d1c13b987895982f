package model

// BucketStat accumulates unfiltered debit/credit totals for one summary
// bucket (a category or a calendar month). Buckets only ever accumulate;
// internal classification affects the filtered totals, never these.
type BucketStat struct {
	Debit  float64 `json:"debit"`
	Credit float64 `json:"credit"`
	Count  int     `json:"count"`
}

// Summary holds the unfiltered aggregates over all processed transactions.
type Summary struct {
	ByCategory map[string]*BucketStat `json:"byCategory"`
	ByMonth    map[string]*BucketStat `json:"byMonth"`
}

// NewSummary creates an empty summary.
func NewSummary() Summary {
	return Summary{
		ByCategory: make(map[string]*BucketStat),
		ByMonth:    make(map[string]*BucketStat),
	}
}

// Add records a transaction in its category and month buckets.
func (s Summary) Add(t Transaction) {
	for _, key := range []struct {
		buckets map[string]*BucketStat
		name    string
	}{
		{s.ByCategory, t.Category},
		{s.ByMonth, t.Month()},
	} {
		stat, ok := key.buckets[key.name]
		if !ok {
			stat = &BucketStat{}
			key.buckets[key.name] = stat
		}
		if t.Type == Debit {
			stat.Debit += t.Amount
		} else {
			stat.Credit += t.Amount
		}
		stat.Count++
	}
}

// FlowTotals holds a credit/debit pair, used for both the raw totals and the
// filtered totals that exclude internal operations.
type FlowTotals struct {
	Credits float64 `json:"credits"`
	Debits  float64 `json:"debits"`
}

// Net returns credits minus debits.
func (f FlowTotals) Net() float64 {
	return f.Credits - f.Debits
}

// Add accumulates a transaction's amount on the matching side.
func (f *FlowTotals) Add(t Transaction) {
	if t.Type == Debit {
		f.Debits += t.Amount
	} else {
		f.Credits += t.Amount
	}
}
