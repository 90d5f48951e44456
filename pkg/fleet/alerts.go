package fleet

import (
	"fmt"
	"sort"
	"time"

	"p9e.in/frota/models"
)

// Alert severities and types.
const (
	SeverityHigh   = "ALTA"
	SeverityMedium = "MÉDIA"
)

const (
	AlertSpeeding       = "VELOCIDADE"
	AlertSignalLoss     = "SEM SINAL"
	AlertFleetMovement  = "MOVIMENTAÇÃO"
	AlertMissingLog     = "SEM DIÁRIO"
	AlertPendingPayment = "PAGAMENTO PENDENTE"
	AlertLateApproval   = "APROVAÇÃO ATRASADA"
)

// alertWindowDays is the trailing window scanned for safety alerts.
const alertWindowDays = 5

// lateApprovalAge is how long a requisition may sit pending before it is
// flagged.
const lateApprovalAge = 24 * time.Hour

// Alert is one classified notification derived from recent activity.
type Alert struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Date     string `json:"date"`
	Plate    string `json:"plate,omitempty"`
	Message  string `json:"message"`
}

// AlertInput carries the fully-fetched collections the generator folds
// over, plus the viewer's role and the reference clock.
type AlertInput struct {
	Vehicles     []models.Vehicle
	Logs         []models.DailyLog
	Refuelings   []models.RefuelingLog
	Requisitions []models.Requisition
	Role         string
	Now          time.Time
}

// SpeedLimitFor returns the alert threshold in km/h for a vehicle type.
// Heavy and live-line trucks are held to 90; everything else to 100.
func SpeedLimitFor(vehicleType string) float64 {
	switch norm(vehicleType) {
	case models.VehicleTypeHeavy, models.VehicleTypeLiveLine:
		return 90
	}
	return 100
}

// GenerateAlerts runs every rule over the input and returns the combined
// list, newest first. The rules are independent and additive. Equal dates
// order high-severity first, then by message, so output is deterministic.
func GenerateAlerts(in AlertInput) []Alert {
	windowStart := in.Now.AddDate(0, 0, -alertWindowDays).Format("2006-01-02")

	var alerts []Alert
	alerts = append(alerts, speedingAlerts(in, windowStart)...)
	alerts = append(alerts, signalLossAlerts(in)...)
	alerts = append(alerts, movementAlerts(in, windowStart)...)
	alerts = append(alerts, missingLogAlerts(in)...)
	alerts = append(alerts, pendingPaymentAlerts(in, windowStart)...)
	alerts = append(alerts, lateApprovalAlerts(in)...)

	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].Date != alerts[j].Date {
			return alerts[i].Date > alerts[j].Date
		}
		if alerts[i].Severity != alerts[j].Severity {
			return alerts[i].Severity == SeverityHigh
		}
		return alerts[i].Message < alerts[j].Message
	})
	return alerts
}

func speedingAlerts(in AlertInput, windowStart string) []Alert {
	limits := make(map[string]float64, len(in.Vehicles))
	for _, v := range in.Vehicles {
		limits[v.ID.String()] = SpeedLimitFor(v.VehicleType)
	}

	var alerts []Alert
	for _, l := range in.Logs {
		if l.Date < windowStart {
			continue
		}
		limit, ok := limits[l.VehicleID.String()]
		if !ok {
			continue
		}
		if l.MaxSpeed > limit {
			alerts = append(alerts, Alert{
				Type:     AlertSpeeding,
				Severity: SeverityHigh,
				Date:     l.Date,
				Plate:    l.PlateSnapshot,
				Message:  fmt.Sprintf("%s atingiu %.0f km/h (limite %.0f km/h)", l.PlateSnapshot, l.MaxSpeed, limit),
			})
		}
	}
	return alerts
}

// signalLossAlerts flags vehicles whose most recent logs are an unbroken
// run of SEM SINAL. The streak counts from the newest log backward and the
// alert fires only above 2 consecutive days.
func signalLossAlerts(in AlertInput) []Alert {
	byVehicle := make(map[string][]models.DailyLog)
	for _, l := range in.Logs {
		key := l.VehicleID.String()
		byVehicle[key] = append(byVehicle[key], l)
	}

	var alerts []Alert
	for _, v := range in.Vehicles {
		logs := byVehicle[v.ID.String()]
		if len(logs) == 0 {
			continue
		}
		sort.SliceStable(logs, func(i, j int) bool { return logs[i].Date > logs[j].Date })

		streak := 0
		for _, l := range logs {
			if norm(l.NonOperatingReason) != models.ReasonNoSignal {
				break
			}
			streak++
		}
		if streak > 2 {
			alerts = append(alerts, Alert{
				Type:     AlertSignalLoss,
				Severity: SeverityHigh,
				Date:     logs[0].Date,
				Plate:    v.Plate,
				Message:  fmt.Sprintf("%s sem sinal há %d dias consecutivos", v.Plate, streak),
			})
		}
	}
	return alerts
}

func movementAlerts(in AlertInput, windowStart string) []Alert {
	var alerts []Alert
	for _, v := range in.Vehicles {
		for _, entry := range AttributeTimeline(v, in.Logs) {
			if entry.Date < windowStart {
				continue
			}
			alerts = append(alerts, Alert{
				Type:     AlertFleetMovement,
				Severity: SeverityMedium,
				Date:     entry.Date,
				Plate:    v.Plate,
				Message: fmt.Sprintf("%s agora com %s em %s (%s)",
					v.Plate, entry.Driver, entry.Municipality, entry.Contract),
			})
		}
	}
	return alerts
}

// missingLogAlerts is a pure existence check for yesterday's log, gated to
// operator and admin viewers.
func missingLogAlerts(in AlertInput) []Alert {
	if in.Role != models.RoleAdmin && in.Role != models.RoleOperator {
		return nil
	}
	yesterday := in.Now.AddDate(0, 0, -1).Format("2006-01-02")

	logged := make(map[string]bool)
	for _, l := range in.Logs {
		if l.Date == yesterday {
			logged[l.VehicleID.String()] = true
		}
	}

	var alerts []Alert
	for _, v := range in.Vehicles {
		if norm(v.Status) == models.StatusInactive {
			continue
		}
		if logged[v.ID.String()] {
			continue
		}
		alerts = append(alerts, Alert{
			Type:     AlertMissingLog,
			Severity: SeverityMedium,
			Date:     yesterday,
			Plate:    v.Plate,
			Message:  fmt.Sprintf("%s sem diário de bordo em %s", v.Plate, yesterday),
		})
	}
	return alerts
}

func pendingPaymentAlerts(in AlertInput, windowStart string) []Alert {
	var alerts []Alert
	for _, r := range in.Refuelings {
		if r.Date < windowStart || r.TotalCost != 0 {
			continue
		}
		alerts = append(alerts, Alert{
			Type:     AlertPendingPayment,
			Severity: SeverityHigh,
			Date:     r.Date,
			Plate:    r.PlateSnapshot,
			Message:  fmt.Sprintf("abastecimento de %s em %s sem nota fiscal", r.PlateSnapshot, r.Date),
		})
	}
	return alerts
}

func lateApprovalAlerts(in AlertInput) []Alert {
	var alerts []Alert
	for _, rq := range in.Requisitions {
		if rq.Status != models.RequisitionPending {
			continue
		}
		if in.Now.Sub(rq.RequestedAt()) <= lateApprovalAge {
			continue
		}
		alerts = append(alerts, Alert{
			Type:     AlertLateApproval,
			Severity: SeverityHigh,
			Date:     rq.RequestDate,
			Message:  fmt.Sprintf("requisição nº %d de %s aguardando aprovação há mais de 24h", rq.InternalNumber, rq.RequesterName),
		})
	}
	return alerts
}
