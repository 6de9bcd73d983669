package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"inanisgarage/internal/auth"
	"inanisgarage/internal/calendar"
	"inanisgarage/internal/models"
	"inanisgarage/internal/store"
)

func ListAssignments(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := store.NormalizeRegNo(chi.URLParam(r, "id"))
		if _, ok := st.GetVehicle(id); !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		respondJSON(w, orEmptyAssign(st.AssignmentsFor(id)))
	}
}

// CreateAssignment records the assignment, then fires the calendar event
// from a goroutine. The event is informational: its failure, or the process
// exiting before it lands, never affects the stored assignment.
func CreateAssignment(st *store.Store, cal *calendar.Notifier, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Driver    string `json:"driver"`
			StartDate string `json:"start_date"`
			EndDate   string `json:"end_date"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		a := models.Assignment{
			VehicleID:  chi.URLParam(r, "id"),
			Driver:     req.Driver,
			StartDate:  req.StartDate,
			EndDate:    req.EndDate,
			AssignedBy: auth.Subject(r.Context()),
		}
		created, index, err := st.AddAssignment(a)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		lg.Infow("assignment added", "vehicle", created.VehicleID, "driver", created.Driver,
			"start", created.StartDate, "end", created.EndDate)

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			summary := fmt.Sprintf("%s assigned to %s", created.VehicleID, created.Driver)
			desc := fmt.Sprintf("Assigned by %s", created.AssignedBy)
			if link := cal.Notify(ctx, summary, desc, created.StartDate, created.EndDate); link != "" {
				st.AttachCalendarLink(index, link)
			}
		}()

		respondJSON(w, created)
	}
}
