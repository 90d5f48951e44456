package fleet

import (
	"fmt"
	"sort"
	"time"

	"p9e.in/frota/models"
)

// Totals accumulates the three additive metrics for one grouping key
// (vehicle plate, station id or foreman name).
type Totals struct {
	Key        string  `json:"key"`
	DistanceKM float64 `json:"distanceKm"`
	Liters     float64 `json:"liters"`
	Cost       float64 `json:"cost"`
}

// KmPerLiter is the derived economy ratio, reported as zero when no fuel
// was recorded rather than dividing by zero.
func (t Totals) KmPerLiter() float64 {
	if t.Liters == 0 {
		return 0
	}
	return t.DistanceKM / t.Liters
}

// InWindow reports whether a YYYY-MM-DD date falls in the inclusive
// window. Dates compare lexicographically; an empty bound is open.
func InWindow(date, start, end string) bool {
	if start != "" && date < start {
		return false
	}
	if end != "" && date > end {
		return false
	}
	return true
}

// AggregateByPlate folds logs and refuelings in the window into per-plate
// totals. Keys come from the snapshot plate so totals survive later edits
// to the vehicle record.
func AggregateByPlate(logs []models.DailyLog, refuelings []models.RefuelingLog, start, end string) []Totals {
	acc := newAccumulator()
	for _, l := range logs {
		if !InWindow(l.Date, start, end) {
			continue
		}
		t := acc.get(norm(l.PlateSnapshot))
		t.DistanceKM += l.DistanceKM
	}
	for _, r := range refuelings {
		if !InWindow(r.Date, start, end) {
			continue
		}
		t := acc.get(norm(r.PlateSnapshot))
		t.Liters += r.Quantity
		t.Cost += r.TotalCost
	}
	return acc.rows()
}

// AggregateByStation folds refuelings in the window into per-station
// totals, keyed by station id.
func AggregateByStation(refuelings []models.RefuelingLog, start, end string) []Totals {
	acc := newAccumulator()
	for _, r := range refuelings {
		if !InWindow(r.Date, start, end) {
			continue
		}
		t := acc.get(r.StationID.String())
		t.Liters += r.Quantity
		t.Cost += r.TotalCost
	}
	return acc.rows()
}

// AggregateByForeman folds refuelings in the window into per-foreman
// totals, keyed by the snapshot foreman name.
func AggregateByForeman(refuelings []models.RefuelingLog, start, end string) []Totals {
	acc := newAccumulator()
	for _, r := range refuelings {
		if !InWindow(r.Date, start, end) {
			continue
		}
		t := acc.get(norm(r.ForemanSnapshot))
		t.Liters += r.Quantity
		t.Cost += r.TotalCost
	}
	return acc.rows()
}

// TopN returns the n largest rows by the given metric, descending. Equal
// values order by key ascending so rankings are deterministic.
func TopN(rows []Totals, n int, metric func(Totals) float64) []Totals {
	ranked := make([]Totals, len(rows))
	copy(ranked, rows)
	sort.SliceStable(ranked, func(i, j int) bool {
		vi, vj := metric(ranked[i]), metric(ranked[j])
		if vi != vj {
			return vi > vj
		}
		return ranked[i].Key < ranked[j].Key
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// MonthComparison is the month-to-date financial comparison shown on the
// dashboard: the current calendar month against the same day-of-month
// cutoff in the previous month, not the full previous month.
type MonthComparison struct {
	CurrentCost  float64 `json:"currentCost"`
	PreviousCost float64 `json:"previousCost"`
	DiffPercent  float64 `json:"diffPercent"`
	IsIncrease   bool    `json:"isIncrease"`
}

// MonthOverMonth computes the month-to-date cost comparison as of today.
// A previous month with zero cost and a current month with spending reads
// as a flat +100%; two zero months read as 0%.
func MonthOverMonth(refuelings []models.RefuelingLog, today time.Time) MonthComparison {
	curStart := fmt.Sprintf("%04d-%02d-01", today.Year(), int(today.Month()))
	curEnd := today.Format("2006-01-02")

	prevFirst := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	prevDays := daysInMonth(prevFirst.Year(), prevFirst.Month())
	cutoff := today.Day()
	if cutoff > prevDays {
		cutoff = prevDays
	}
	prevStart := prevFirst.Format("2006-01-02")
	prevEnd := fmt.Sprintf("%04d-%02d-%02d", prevFirst.Year(), int(prevFirst.Month()), cutoff)

	var cmp MonthComparison
	for _, r := range refuelings {
		if InWindow(r.Date, curStart, curEnd) {
			cmp.CurrentCost += r.TotalCost
		}
		if InWindow(r.Date, prevStart, prevEnd) {
			cmp.PreviousCost += r.TotalCost
		}
	}

	switch {
	case cmp.PreviousCost == 0 && cmp.CurrentCost == 0:
		cmp.DiffPercent = 0
	case cmp.PreviousCost == 0:
		cmp.DiffPercent = 100
	default:
		cmp.DiffPercent = (cmp.CurrentCost - cmp.PreviousCost) / cmp.PreviousCost * 100
	}
	cmp.IsIncrease = cmp.CurrentCost > cmp.PreviousCost
	return cmp
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}

// accumulator keeps insertion order so equal-valued rankings stay stable.
type accumulator struct {
	order []string
	byKey map[string]*Totals
}

func newAccumulator() *accumulator {
	return &accumulator{byKey: make(map[string]*Totals)}
}

func (a *accumulator) get(key string) *Totals {
	if t, ok := a.byKey[key]; ok {
		return t
	}
	t := &Totals{Key: key}
	a.byKey[key] = t
	a.order = append(a.order, key)
	return t
}

func (a *accumulator) rows() []Totals {
	rows := make([]Totals, 0, len(a.order))
	for _, key := range a.order {
		rows = append(rows, *a.byKey[key])
	}
	return rows
}
