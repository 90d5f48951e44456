// Package fleet derives operational state, history and metrics for the
// vehicle fleet from fully-fetched collections. Every function here is a
// pure fold over its inputs; nothing touches the database.
package fleet

import (
	"strings"

	"p9e.in/frota/models"
)

// norm is the comparison form used throughout the package: historical data
// was hand-entered, so trailing spaces and casing differences are noise.
func norm(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// DeriveStatus returns the display status of a vehicle given the full
// daily-log collection. Only the most recent log matters. The stored
// INATIVO status always wins; a vehicle with no logs is presumed fine and
// reported ATIVO.
//
// SEM SINAL and NÃO LIGOU are telemetry gaps, not parked states, so both
// map back to ATIVO for display.
func DeriveStatus(v models.Vehicle, logs []models.DailyLog) string {
	if norm(v.Status) == models.StatusInactive {
		return models.StatusInactive
	}

	var latest *models.DailyLog
	for i := range logs {
		if logs[i].VehicleID != v.ID {
			continue
		}
		if latest == nil || logs[i].Date > latest.Date {
			latest = &logs[i]
		}
	}
	if latest == nil {
		return models.StatusActive
	}

	reason := strings.TrimSpace(latest.NonOperatingReason)
	if reason == "" {
		return models.StatusActive
	}
	switch norm(reason) {
	case models.ReasonNoSignal, models.ReasonNoStart:
		return models.StatusActive
	}
	return reason
}
