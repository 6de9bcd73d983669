package fleet

import (
	"sort"
	"time"

	"inanisgarage/internal/models"
)

const (
	// Alert window in days relative to today, both ends inclusive.
	alertWindowPast   = -7
	alertWindowFuture = 30

	// MaxAlerts caps the dashboard alert list.
	MaxAlerts = 5

	StatusExpired      = "expired"
	StatusExpiringSoon = "expiring_soon"
	StatusDueSoon      = "due_soon"
)

// Alert is a near-expiry or expired document surfaced on the dashboard.
type Alert struct {
	VehicleID string `json:"vehicle_id"`
	DocType   string `json:"doc_type"`
	Days      int    `json:"days"`
	Status    string `json:"status"`
}

// ClassifyExpiring scans every document with an expiry date and returns at
// most MaxAlerts alerts for those within [-7, +30] days of today, sorted by
// days-remaining ascending so the most urgent survive the cap. Documents
// with a missing or unparseable expiry are skipped, not errored.
//
// Buckets: expired (days < 0), expiring_soon (0-7), due_soon (8-30).
func ClassifyExpiring(documents map[string][]models.Document, today time.Time) []Alert {
	base := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	var alerts []Alert
	for vehicleID, docs := range documents {
		for _, d := range docs {
			if d.Expiry == "" {
				continue
			}
			expiry, err := time.Parse("2006-01-02", d.Expiry)
			if err != nil {
				continue
			}
			days := int(expiry.Sub(base).Hours() / 24)
			if days < alertWindowPast || days > alertWindowFuture {
				continue
			}
			alerts = append(alerts, Alert{
				VehicleID: vehicleID,
				DocType:   d.Type,
				Days:      days,
				Status:    bucket(days),
			})
		}
	}
	sort.Slice(alerts, func(i, j int) bool {
		if alerts[i].Days != alerts[j].Days {
			return alerts[i].Days < alerts[j].Days
		}
		if alerts[i].VehicleID != alerts[j].VehicleID {
			return alerts[i].VehicleID < alerts[j].VehicleID
		}
		return alerts[i].DocType < alerts[j].DocType
	})
	if len(alerts) > MaxAlerts {
		alerts = alerts[:MaxAlerts]
	}
	return alerts
}

func bucket(days int) string {
	switch {
	case days < 0:
		return StatusExpired
	case days <= 7:
		return StatusExpiringSoon
	default:
		return StatusDueSoon
	}
}
