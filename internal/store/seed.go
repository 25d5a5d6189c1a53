package store

import "github.com/klabast/wb-services/transit-dashboard/internal/transit"

// Seed is the dataset a fresh installation starts with.
type Seed struct {
	Buses       []transit.Vehicle
	Taxis       []transit.Vehicle
	Drivers     []transit.Driver
	Routes      []transit.Route
	Stops       []transit.BusStop
	Fares       []transit.Fare
	Schedules   []transit.Schedule
	Maintenance []transit.Maintenance
	Reports     []transit.Report
	MobileApp   []transit.AppConfig
}

// DefaultSeed returns the demo fleet.
func DefaultSeed() Seed {
	return Seed{
		Buses: []transit.Vehicle{
			{ID: "BUS-001", Kind: transit.KindBus, Model: "Volvo 7900 Electric", Plate: "TR-101", Driver: "Ahmed Al-Rashid", CurrentRoute: "Route 12", Status: transit.VehicleInService, Capacity: 85, Year: 2021, Fuel: "Electric", BatteryLevel: 78, Mileage: 84210, LastService: "2023-10-02"},
			{ID: "BUS-002", Kind: transit.KindBus, Model: "Mercedes eCitaro", Plate: "TR-102", Driver: "Sarah Klein", CurrentRoute: "Route 4", Status: transit.VehicleCharging, Capacity: 88, Year: 2022, Fuel: "Electric", BatteryLevel: 34, Mileage: 51377, LastService: "2023-09-18"},
			{ID: "BUS-003", Kind: transit.KindBus, Model: "Solaris Urbino 12", Plate: "TR-103", Status: transit.VehicleMaintenance, Capacity: 90, Year: 2019, Fuel: "Hybrid", Mileage: 190344, LastService: "2023-11-18"},
			{ID: "BUS-004", Kind: transit.KindBus, Model: "MAN Lion's City E", Plate: "TR-104", Driver: "Jonas Weber", CurrentRoute: "Route 7", Status: transit.VehicleInService, Capacity: 86, Year: 2023, Fuel: "Electric", BatteryLevel: 91, Mileage: 12840, LastService: "2023-10-27"},
			{ID: "BUS-005", Kind: transit.KindBus, Model: "Iveco Urbanway", Plate: "TR-105", Status: transit.VehicleOutOfService, Capacity: 95, Year: 2015, Fuel: "Diesel", Mileage: 402118, LastService: "2023-06-11"},
			{ID: "BUS-006", Kind: transit.KindBus, Model: "Volvo 7900 Electric", Plate: "TR-106", Driver: "Maria Santos", CurrentRoute: "Route 21", Status: transit.VehicleInService, Capacity: 85, Year: 2021, Fuel: "Electric", BatteryLevel: 66, Mileage: 77031, LastService: "2023-10-15"},
		},
		Taxis: []transit.Vehicle{
			{ID: "TAX-101", Kind: transit.KindTaxi, Model: "Toyota Prius", Plate: "TX-201", Driver: "Ahmed Hussein", Status: transit.VehicleInService, Capacity: 4, Year: 2020, Fuel: "Hybrid", Mileage: 143200, LastService: "2023-10-08"},
			{ID: "TAX-102", Kind: transit.KindTaxi, Model: "Tesla Model 3", Plate: "TX-202", Driver: "Lena Fischer", Status: transit.VehicleCharging, Capacity: 4, Year: 2022, Fuel: "Electric", BatteryLevel: 22, Mileage: 60412, LastService: "2023-09-30"},
			{ID: "TAX-103", Kind: transit.KindTaxi, Model: "Skoda Octavia", Plate: "TX-203", Status: transit.VehicleMaintenance, Capacity: 4, Year: 2018, Fuel: "Diesel", Mileage: 251090, LastService: "2023-11-20"},
			{ID: "TAX-104", Kind: transit.KindTaxi, Model: "Mercedes V-Class", Plate: "TX-204", Driver: "Omar Farouk", Status: transit.VehicleInService, Capacity: 7, Year: 2021, Fuel: "Diesel", Mileage: 98324, LastService: "2023-10-21"},
		},
		Drivers: []transit.Driver{
			{ID: "DRV-001", Name: "Ahmed Al-Rashid", License: "D-448120", Phone: "+49 151 2040 1101", Email: "ahmed.alrashid@example.org", Status: transit.DriverOnDuty, AssignedVehicle: "BUS-001", Rating: 4.8, JoinDate: "2017-03-01", ExperienceYears: 12},
			{ID: "DRV-002", Name: "Sarah Klein", License: "D-551902", Phone: "+49 151 2040 1102", Email: "sarah.klein@example.org", Status: transit.DriverOnDuty, AssignedVehicle: "BUS-002", Rating: 4.6, JoinDate: "2019-08-15", ExperienceYears: 7},
			{ID: "DRV-003", Name: "Jonas Weber", License: "D-602233", Phone: "+49 151 2040 1103", Status: transit.DriverOnDuty, AssignedVehicle: "BUS-004", Rating: 4.4, JoinDate: "2021-01-10", ExperienceYears: 4},
			{ID: "DRV-004", Name: "Maria Santos", License: "D-379045", Phone: "+49 151 2040 1104", Status: transit.DriverOnLeave, AssignedVehicle: "BUS-006", Rating: 4.9, JoinDate: "2015-05-20", ExperienceYears: 15},
			{ID: "DRV-005", Name: "Ahmed Hussein", License: "T-118734", Phone: "+49 151 2040 1105", Status: transit.DriverOnDuty, AssignedVehicle: "TAX-101", Rating: 4.7, JoinDate: "2020-02-03", ExperienceYears: 6},
			{ID: "DRV-006", Name: "Lena Fischer", License: "T-220981", Phone: "+49 151 2040 1106", Status: transit.DriverInTraining, AssignedVehicle: "TAX-102", Rating: 4.2, JoinDate: "2023-09-01", ExperienceYears: 1},
			{ID: "DRV-007", Name: "Omar Farouk", License: "T-330547", Phone: "+49 151 2040 1107", Status: transit.DriverOnDuty, AssignedVehicle: "TAX-104", Rating: 4.5, JoinDate: "2018-11-12", ExperienceYears: 9},
		},
		Routes: []transit.Route{
			{ID: "RT-004", Number: "4", Name: "University Line", Origin: "Central Station", Destination: "University Campus", Stops: []string{"STP-001", "STP-003", "STP-005"}, DistanceKm: 9.4, DurationMin: 28, FrequencyMin: 10, Status: transit.RouteActive},
			{ID: "RT-007", Number: "7", Name: "Harbour Loop", Origin: "Market Square", Destination: "Harbour Terminal", Stops: []string{"STP-002", "STP-004"}, DistanceKm: 6.1, DurationMin: 19, FrequencyMin: 15, Status: transit.RouteActive},
			{ID: "RT-012", Number: "12", Name: "Airport Express", Origin: "Central Station", Destination: "Airport", Stops: []string{"STP-001", "STP-006"}, DistanceKm: 21.7, DurationMin: 35, FrequencyMin: 20, Status: transit.RouteActive},
			{ID: "RT-021", Number: "21", Name: "Hospital Shuttle", Origin: "Old Town", Destination: "City Hospital", Stops: []string{"STP-002", "STP-005"}, DistanceKm: 5.3, DurationMin: 16, FrequencyMin: 12, Status: transit.RouteActive},
			{ID: "RT-030", Number: "30", Name: "Night Owl", Origin: "Central Station", Destination: "North Park", DistanceKm: 14.2, DurationMin: 40, FrequencyMin: 30, Status: transit.RouteInactive},
		},
		Stops: []transit.BusStop{
			{ID: "STP-001", Name: "Central Station", Location: "Bahnhofplatz 1", Type: transit.StopSmart, Routes: []string{"RT-004", "RT-012"}, Lat: 52.5251, Lng: 13.3694, Amenities: []string{"Shelter", "Real-time display", "Wi-Fi"}, Active: true},
			{ID: "STP-002", Name: "Market Square", Location: "Marktplatz 3", Type: transit.StopStandard, Routes: []string{"RT-007", "RT-021"}, Lat: 52.5163, Lng: 13.3777, Amenities: []string{"Shelter"}, Active: true},
			{ID: "STP-003", Name: "Museum Island", Location: "Am Lustgarten", Type: transit.StopSmart, Routes: []string{"RT-004"}, Lat: 52.5186, Lng: 13.3979, Amenities: []string{"Real-time display", "Charging port"}, Active: true},
			{ID: "STP-004", Name: "Harbour Terminal", Location: "Hafenstrasse 10", Type: transit.StopStandard, Routes: []string{"RT-007"}, Lat: 52.5002, Lng: 13.4451, Active: true},
			{ID: "STP-005", Name: "University Campus", Location: "Hardenbergstrasse 34", Type: transit.StopSmart, Routes: []string{"RT-004", "RT-021"}, Lat: 52.5125, Lng: 13.3269, Amenities: []string{"Shelter", "Wi-Fi"}, Active: true},
			{ID: "STP-006", Name: "Airport", Location: "Terminal 1", Type: transit.StopStandard, Routes: []string{"RT-012"}, Lat: 52.3667, Lng: 13.5033, Active: false},
		},
		Fares: []transit.Fare{
			{ID: "FR-001", Name: "Single Ticket", Class: "Regular", Amount: 3.20, Currency: "EUR", Zone: "AB", Description: "One journey within two hours", ValidFrom: "2023-01-01"},
			{ID: "FR-002", Name: "Day Pass", Class: "Regular", Amount: 8.80, Currency: "EUR", Zone: "AB", ValidFrom: "2023-01-01"},
			{ID: "FR-003", Name: "Monthly Pass", Class: "Regular", Amount: 86.00, Currency: "EUR", Zone: "ABC", ValidFrom: "2023-01-01"},
			{ID: "FR-004", Name: "Semester Ticket", Class: "Student", Amount: 193.80, Currency: "EUR", Zone: "ABC", ValidFrom: "2023-10-01", ValidTo: "2024-03-31"},
			{ID: "FR-005", Name: "Single Ticket", Class: "Student", Amount: 2.00, Currency: "EUR", Zone: "AB", ValidFrom: "2023-01-01"},
			{ID: "FR-006", Name: "Senior Monthly", Class: "Senior", Amount: 59.00, Currency: "EUR", Zone: "ABC", ValidFrom: "2023-01-01"},
		},
		Schedules: []transit.Schedule{
			{ID: "SCH-001", Name: "Route 4 Weekday", Route: "RT-004", Recurrence: transit.RecurWeekly, Departures: []string{"05:30", "06:00", "06:30", "07:00"}, Vehicle: "BUS-002", Driver: "DRV-002", Status: transit.RouteActive},
			{ID: "SCH-002", Name: "Route 4 Weekend", Route: "RT-004", Recurrence: transit.RecurWeekly, Weekends: true, Departures: []string{"07:00", "08:00"}, Status: transit.RouteActive},
			{ID: "SCH-003", Name: "Airport Express Daily", Route: "RT-012", Recurrence: transit.RecurDaily, Departures: []string{"04:50", "05:10", "05:30"}, Vehicle: "BUS-001", Driver: "DRV-001", Status: transit.RouteActive},
			{ID: "SCH-004", Name: "Christmas Market Shuttle", Route: "RT-007", Recurrence: transit.RecurSpecial, DateRange: "Nov 24-Dec 23, 2023", Departures: []string{"16:00", "18:00", "20:00"}, Status: transit.RouteActive},
			{ID: "SCH-005", Name: "New Year Service", Route: "RT-030", Recurrence: transit.RecurSpecial, DateRange: "Dec 31, 2023-Jan 1, 2024", Departures: []string{"00:30", "01:30", "02:30"}, Status: transit.RouteActive},
		},
		Maintenance: []transit.Maintenance{
			{ID: "MT-001", VehicleID: "BUS-003", Type: "Battery Replacement", Phase: transit.PhaseActive, Status: transit.MaintenanceInProgress, StartDate: "2023-11-18", ExpectedCompletion: "2023-11-22", Technician: "Klaus Becker", Priority: transit.PriorityHigh, Cost: 14500},
			{ID: "MT-002", VehicleID: "TAX-103", Type: "Transmission Repair", Phase: transit.PhaseActive, Status: transit.MaintenanceOnHold, StartDate: "2023-11-20", ExpectedCompletion: "2023-11-28", Technician: "Petra Lang", Priority: transit.PriorityMedium, Notes: "Waiting for parts"},
			{ID: "MT-003", VehicleID: "BUS-005", Type: "Engine Overhaul", Phase: transit.PhaseActive, Status: transit.MaintenanceInProgress, StartDate: "2023-11-06", ExpectedCompletion: "2023-12-08", Technician: "Klaus Becker", Priority: transit.PriorityCritical, Cost: 32000},
			{ID: "MT-010", VehicleID: "BUS-001", Type: "Brake Inspection", Phase: transit.PhaseScheduled, Status: transit.MaintenanceScheduled, ScheduledDate: "2023-11-20", Duration: "3 hours", Priority: transit.PriorityMedium, AssignedTo: "Petra Lang"},
			{ID: "MT-011", VehicleID: "BUS-004", Type: "Tyre Rotation", Phase: transit.PhaseScheduled, Status: transit.MaintenanceScheduled, ScheduledDate: "2023-11-20", Duration: "2 hours", Priority: transit.PriorityLow, AssignedTo: "Jan Vogel"},
			{ID: "MT-012", VehicleID: "TAX-101", Type: "Oil Change", Phase: transit.PhaseScheduled, Status: transit.MaintenanceScheduled, ScheduledDate: "2023-11-27", Duration: "1 hour", Priority: transit.PriorityLow, AssignedTo: "Jan Vogel"},
			{ID: "MT-013", VehicleID: "BUS-006", Type: "HVAC Service", Phase: transit.PhaseScheduled, Status: transit.MaintenanceScheduled, ScheduledDate: "2023-12-04", Duration: "4 hours", Priority: transit.PriorityMedium, AssignedTo: "Klaus Becker"},
			{ID: "MT-020", VehicleID: "BUS-002", Type: "Annual Inspection", Phase: transit.PhaseHistory, Status: transit.MaintenanceCompleted, StartDate: "2023-09-18", ExpectedCompletion: "2023-09-19", CompletedDate: "2023-09-19", Technician: "Petra Lang", Cost: 850},
			{ID: "MT-021", VehicleID: "TAX-104", Type: "Windscreen Replacement", Phase: transit.PhaseHistory, Status: transit.MaintenanceCompleted, StartDate: "2023-10-20", ExpectedCompletion: "2023-10-21", CompletedDate: "2023-10-21", Technician: "Jan Vogel", Cost: 640},
		},
		Reports: []transit.Report{
			{ID: "RPT-001", Title: "October Ridership", Type: "Ridership", Period: "2023-10", GeneratedAt: "2023-11-01", Author: "Operations", Summary: "Weekday ridership up on the University Line.", Metrics: map[string]float64{"passengers": 412300, "avgLoad": 0.63}},
			{ID: "RPT-002", Title: "Q3 Revenue", Type: "Revenue", Period: "2023-Q3", GeneratedAt: "2023-10-05", Author: "Finance", Metrics: map[string]float64{"revenueEUR": 1840500, "ticketsSold": 602114}},
			{ID: "RPT-003", Title: "Fleet Maintenance Summary", Type: "Maintenance", Period: "2023-10", GeneratedAt: "2023-11-02", Author: "Depot", Metrics: map[string]float64{"workOrders": 14, "costEUR": 48320}},
			{ID: "RPT-004", Title: "On-time Performance", Type: "Performance", Period: "2023-10", GeneratedAt: "2023-11-03", Author: "Operations", Metrics: map[string]float64{"onTimeRate": 0.91}},
		},
		MobileApp: []transit.AppConfig{
			{ID: transit.AppConfigID, AppName: "City Transit", Version: "3.2.0", MinSupportedVersion: "3.0.0", SupportEmail: "support@example.org", Theme: "light", Features: map[string]bool{"liveTracking": true, "mobileTickets": true, "tripPlanner": true, "crowdingInfo": false}, UpdatedAt: "2023-11-15"},
		},
	}
}
