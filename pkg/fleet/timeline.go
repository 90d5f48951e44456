package fleet

import (
	"sort"
	"strings"

	"p9e.in/frota/models"
)

// TimelineEntry is one reassignment event: the date a vehicle's driver,
// municipality or contract changed, carrying the full new triple rather
// than a diff.
type TimelineEntry struct {
	Date         string `json:"date"`
	Driver       string `json:"driver"`
	Municipality string `json:"municipality"`
	Contract     string `json:"contract"`
}

// AttributeTimeline reconstructs a vehicle's reassignment history from its
// daily logs. Logs are scanned in chronological order; an entry is emitted
// whenever the (driver, municipality, contract) triple differs from the
// previous log's, compared trimmed and case-insensitively so inconsistent
// data entry does not fabricate changes. Snapshot fields that were left
// blank fall back to the vehicle's current attribute. The result is
// returned newest-first.
func AttributeTimeline(v models.Vehicle, logs []models.DailyLog) []TimelineEntry {
	own := make([]models.DailyLog, 0, len(logs))
	for _, l := range logs {
		if l.VehicleID == v.ID {
			own = append(own, l)
		}
	}
	sort.SliceStable(own, func(i, j int) bool { return own[i].Date < own[j].Date })

	var entries []TimelineEntry
	var lastDriver, lastMunicipality, lastContract string

	for _, l := range own {
		driver := fallback(l.DriverSnapshot, v.Driver)
		municipality := fallback(l.MunicipalitySnapshot, v.Municipality)
		contract := fallback(l.ContractSnapshot, v.Contract)

		if norm(driver) == lastDriver &&
			norm(municipality) == lastMunicipality &&
			norm(contract) == lastContract {
			continue
		}

		entries = append(entries, TimelineEntry{
			Date:         l.Date,
			Driver:       driver,
			Municipality: municipality,
			Contract:     contract,
		})
		lastDriver = norm(driver)
		lastMunicipality = norm(municipality)
		lastContract = norm(contract)
	}

	// Newest first for display.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries
}

func fallback(snapshot, current string) string {
	if strings.TrimSpace(snapshot) != "" {
		return snapshot
	}
	return current
}
