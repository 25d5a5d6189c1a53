package transit

// VehicleKind separates the buses page from the taxis page.
type VehicleKind string

const (
	KindBus  VehicleKind = "bus"
	KindTaxi VehicleKind = "taxi"
)

func (k VehicleKind) IsValid() bool {
	switch k {
	case KindBus, KindTaxi:
		return true
	}
	return false
}

// VehicleStatus drives the fleet tabs and badge colors.
type VehicleStatus string

const (
	VehicleInService    VehicleStatus = "In Service"
	VehicleMaintenance  VehicleStatus = "Maintenance"
	VehicleCharging     VehicleStatus = "Charging"
	VehicleOutOfService VehicleStatus = "Out of Service"
)

var VehicleStatuses = []VehicleStatus{VehicleInService, VehicleMaintenance, VehicleCharging, VehicleOutOfService}

func (s VehicleStatus) IsValid() bool {
	switch s {
	case VehicleInService, VehicleMaintenance, VehicleCharging, VehicleOutOfService:
		return true
	}
	return false
}

type DriverStatus string

const (
	DriverOnDuty     DriverStatus = "On Duty"
	DriverOnLeave    DriverStatus = "On Leave"
	DriverInTraining DriverStatus = "In Training"
)

var DriverStatuses = []DriverStatus{DriverOnDuty, DriverOnLeave, DriverInTraining}

func (s DriverStatus) IsValid() bool {
	switch s {
	case DriverOnDuty, DriverOnLeave, DriverInTraining:
		return true
	}
	return false
}

type StopType string

const (
	StopSmart    StopType = "Smart Stop"
	StopStandard StopType = "Standard Stop"
)

var StopTypes = []StopType{StopSmart, StopStandard}

func (s StopType) IsValid() bool {
	switch s {
	case StopSmart, StopStandard:
		return true
	}
	return false
}

type MaintenanceStatus string

const (
	MaintenanceInProgress MaintenanceStatus = "In Progress"
	MaintenanceScheduled  MaintenanceStatus = "Scheduled"
	MaintenanceCompleted  MaintenanceStatus = "Completed"
	MaintenanceOnHold     MaintenanceStatus = "On Hold"
)

var MaintenanceStatuses = []MaintenanceStatus{MaintenanceInProgress, MaintenanceScheduled, MaintenanceCompleted, MaintenanceOnHold}

func (s MaintenanceStatus) IsValid() bool {
	switch s {
	case MaintenanceInProgress, MaintenanceScheduled, MaintenanceCompleted, MaintenanceOnHold:
		return true
	}
	return false
}

// MaintenancePhase is the maintenance page tab a record lives under.
type MaintenancePhase string

const (
	PhaseActive    MaintenancePhase = "active"
	PhaseScheduled MaintenancePhase = "scheduled"
	PhaseHistory   MaintenancePhase = "history"
)

func (p MaintenancePhase) IsValid() bool {
	switch p {
	case PhaseActive, PhaseScheduled, PhaseHistory:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

type RouteStatus string

const (
	RouteActive   RouteStatus = "Active"
	RouteInactive RouteStatus = "Inactive"
)

func (s RouteStatus) IsValid() bool {
	switch s {
	case RouteActive, RouteInactive:
		return true
	}
	return false
}

// Recurrence is how a schedule repeats across the calendar.
type Recurrence string

const (
	RecurDaily   Recurrence = "daily"
	RecurWeekly  Recurrence = "weekly"
	RecurSpecial Recurrence = "special"
)

func (r Recurrence) IsValid() bool {
	switch r {
	case RecurDaily, RecurWeekly, RecurSpecial:
		return true
	}
	return false
}
