package transit

import (
	"errors"
	"fmt"
	"time"

	"github.com/klabast/wb-services/transit-dashboard/internal/calendar"
)

// Maintenance is a work order on a vehicle. Active and history records carry a start
// date and an expected or actual completion; scheduled records carry a single date.
type Maintenance struct {
	ID                 string            `json:"id"`
	VehicleID          string            `json:"vehicleId"`
	Type               string            `json:"maintenanceType"`
	Phase              MaintenancePhase  `json:"phase"`
	Status             MaintenanceStatus `json:"status"`
	StartDate          string            `json:"startDate,omitempty"`
	ExpectedCompletion string            `json:"expectedCompletion,omitempty"`
	Technician         string            `json:"technician,omitempty"`
	ScheduledDate      string            `json:"scheduledDate,omitempty"`
	Duration           string            `json:"duration,omitempty"`
	Priority           Priority          `json:"priority,omitempty"`
	AssignedTo         string            `json:"assignedTo,omitempty"`
	CompletedDate      string            `json:"completedDate,omitempty"`
	Cost               float64           `json:"cost,omitempty"`
	Notes              string            `json:"notes,omitempty"`
}

func (m Maintenance) WithID(id string) Maintenance { m.ID = id; return m }

func (m Maintenance) Clone() Maintenance { return m }

func (m Maintenance) EntityID() string { return m.ID }
func (m Maintenance) Category() string { return string(m.Status) }
func (m Maintenance) SearchFields() []string {
	return []string{m.ID, m.VehicleID, m.Type, m.Technician}
}

// When places the record on the maintenance calendar.
func (m Maintenance) When() calendar.Occurrence {
	switch m.Phase {
	case PhaseScheduled:
		return calendar.ExactOf(m.ScheduledDate)
	case PhaseHistory:
		end := m.CompletedDate
		if end == "" {
			end = m.ExpectedCompletion
		}
		return calendar.RangeOf(m.StartDate, end)
	case PhaseActive:
		return calendar.RangeOf(m.StartDate, m.ExpectedCompletion)
	}
	return calendar.Never{}
}

func (m Maintenance) Validate() error {
	c := checker{kind: "maintenance"}
	c.required("vehicleId", m.VehicleID)
	c.required("maintenanceType", m.Type)
	c.valid("phase", m.Phase.IsValid())
	c.valid("status", m.Status.IsValid())
	if m.Priority != "" {
		c.valid("priority", m.Priority.IsValid())
	}
	c.valid("cost", m.Cost >= 0)

	switch m.Phase {
	case PhaseScheduled:
		c.date("scheduledDate", m.ScheduledDate)
	case PhaseActive, PhaseHistory:
		c.date("startDate", m.StartDate)
		c.date("expectedCompletion", m.ExpectedCompletion)
		c.optionalDate("completedDate", m.CompletedDate)
		if _, ok := m.When().(calendar.Never); ok && len(c.fields) == 0 {
			c.valid("expectedCompletion", false)
		}
	}
	return c.err()
}

// ErrTransition is returned when a lifecycle action does not apply to the record's
// current phase or status.
var ErrTransition = errors.New("transition not allowed")

// Action is a maintenance lifecycle step.
type Action string

const (
	ActionStart    Action = "start"
	ActionComplete Action = "complete"
	ActionHold     Action = "hold"
	ActionResume   Action = "resume"
)

func (a Action) IsValid() bool {
	switch a {
	case ActionStart, ActionComplete, ActionHold, ActionResume:
		return true
	}
	return false
}

// Apply returns the record after action a performed on today. The ID never changes.
func (m Maintenance) Apply(a Action, today time.Time) (Maintenance, error) {
	date := calendar.FormatDate(today)
	switch a {
	case ActionStart:
		if m.Phase != PhaseScheduled {
			return m, fmt.Errorf("start %s from %s: %w", m.ID, m.Phase, ErrTransition)
		}
		m.Phase = PhaseActive
		m.Status = MaintenanceInProgress
		m.StartDate = date
		m.ExpectedCompletion = expectedFrom(m, today)
		if m.Technician == "" {
			m.Technician = m.AssignedTo
		}
	case ActionComplete:
		if m.Phase != PhaseActive {
			return m, fmt.Errorf("complete %s from %s: %w", m.ID, m.Phase, ErrTransition)
		}
		if start, err := calendar.ParseDate(m.StartDate); err == nil && start.After(calendar.DateOf(today)) {
			return m, fmt.Errorf("complete %s before its start on %s: %w", m.ID, m.StartDate, ErrTransition)
		}
		m.Phase = PhaseHistory
		m.Status = MaintenanceCompleted
		m.CompletedDate = date
	case ActionHold:
		if m.Phase != PhaseActive || m.Status == MaintenanceOnHold {
			return m, fmt.Errorf("hold %s: %w", m.ID, ErrTransition)
		}
		m.Status = MaintenanceOnHold
	case ActionResume:
		if m.Phase != PhaseActive || m.Status != MaintenanceOnHold {
			return m, fmt.Errorf("resume %s: %w", m.ID, ErrTransition)
		}
		m.Status = MaintenanceInProgress
	default:
		return m, fmt.Errorf("unknown action %q: %w", a, ErrTransition)
	}
	return m, nil
}

// expectedFrom keeps a later expected completion if one was planned, otherwise the
// work is expected to finish the day it starts.
func expectedFrom(m Maintenance, today time.Time) string {
	if d, err := calendar.ParseDate(m.ExpectedCompletion); err == nil && !d.Before(calendar.DateOf(today)) {
		return calendar.FormatDate(d)
	}
	return calendar.FormatDate(today)
}
