// Package calendar creates all-day events for new driver assignments.
// Best-effort only: every failure is logged and swallowed, the link is
// purely informational.
package calendar

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

type Notifier struct {
	svc        *calendar.Service
	calendarID string
	lg         *zap.SugaredLogger
}

// New returns (nil, nil) when calendarID is empty; a nil *Notifier is a
// valid no-op notifier.
func New(ctx context.Context, calendarID, credentialsFile string, lg *zap.SugaredLogger) (*Notifier, error) {
	if calendarID == "" {
		return nil, nil
	}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	opts = append(opts, option.WithScopes(calendar.CalendarScope))
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("calendar service: %w", err)
	}
	return &Notifier{svc: svc, calendarID: calendarID, lg: lg}, nil
}

// Notify inserts an all-day event spanning startDate..endDate (YYYY-MM-DD)
// and returns its HTML link, or "" on any failure.
func (n *Notifier) Notify(ctx context.Context, summary, description, startDate, endDate string) string {
	if n == nil {
		return ""
	}
	ev := &calendar.Event{
		Summary:     summary,
		Description: description,
		Start:       &calendar.EventDateTime{Date: startDate},
		End:         &calendar.EventDateTime{Date: endDate},
	}
	created, err := n.svc.Events.Insert(n.calendarID, ev).Context(ctx).Do()
	if err != nil {
		n.lg.Warnw("calendar event failed", "summary", summary, "error", err)
		return ""
	}
	return created.HtmlLink
}
