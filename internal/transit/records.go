// Package transit holds the records shown on the dashboard pages and the rules for
// validating them, filtering them and placing them on calendars.
package transit

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Vehicle is a bus or taxi in the fleet.
type Vehicle struct {
	ID           string        `json:"id"`
	Kind         VehicleKind   `json:"kind"`
	Model        string        `json:"model"`
	Plate        string        `json:"plate"`
	Driver       string        `json:"driver,omitempty"`
	CurrentRoute string        `json:"currentRoute,omitempty"`
	Status       VehicleStatus `json:"status"`
	Capacity     int           `json:"capacity"`
	Year         int           `json:"year,omitempty"`
	Fuel         string        `json:"fuel,omitempty"`
	BatteryLevel int           `json:"batteryLevel,omitempty"`
	Mileage      int           `json:"mileage,omitempty"`
	LastService  string        `json:"lastService,omitempty"`
}

func (v Vehicle) WithID(id string) Vehicle { v.ID = id; return v }

func (v Vehicle) Clone() Vehicle { return v }

func (v Vehicle) EntityID() string { return v.ID }
func (v Vehicle) Category() string { return string(v.Status) }
func (v Vehicle) SearchFields() []string {
	return []string{v.ID, v.Model, v.Driver, v.CurrentRoute, v.Plate}
}

func (v Vehicle) Validate() error {
	c := checker{kind: "vehicle"}
	c.valid("kind", v.Kind.IsValid())
	c.required("model", v.Model)
	c.required("plate", v.Plate)
	c.valid("status", v.Status.IsValid())
	c.valid("capacity", v.Capacity >= 0)
	c.valid("batteryLevel", v.BatteryLevel >= 0 && v.BatteryLevel <= 100)
	c.optionalDate("lastService", v.LastService)
	return c.err()
}

type Driver struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	License         string       `json:"license"`
	Phone           string       `json:"phone,omitempty"`
	Email           string       `json:"email,omitempty"`
	Status          DriverStatus `json:"status"`
	AssignedVehicle string       `json:"assignedVehicle,omitempty"`
	Rating          float64      `json:"rating,omitempty"`
	JoinDate        string       `json:"joinDate,omitempty"`
	ExperienceYears int          `json:"experienceYears,omitempty"`
}

func (d Driver) WithID(id string) Driver { d.ID = id; return d }

func (d Driver) Clone() Driver { return d }

func (d Driver) EntityID() string       { return d.ID }
func (d Driver) Category() string       { return string(d.Status) }
func (d Driver) SearchFields() []string { return []string{d.ID, d.Name, d.License, d.Phone} }

func (d Driver) Validate() error {
	c := checker{kind: "driver"}
	c.required("name", d.Name)
	c.required("license", d.License)
	c.valid("status", d.Status.IsValid())
	c.valid("rating", d.Rating >= 0 && d.Rating <= 5)
	c.optionalDate("joinDate", d.JoinDate)
	return c.err()
}

type Route struct {
	ID           string      `json:"id"`
	Number       string      `json:"number"`
	Name         string      `json:"name"`
	Origin       string      `json:"origin"`
	Destination  string      `json:"destination"`
	Stops        []string    `json:"stops,omitempty"`
	DistanceKm   float64     `json:"distanceKm,omitempty"`
	DurationMin  int         `json:"durationMin,omitempty"`
	FrequencyMin int         `json:"frequencyMin,omitempty"`
	Status       RouteStatus `json:"status"`
}

func (r Route) WithID(id string) Route { r.ID = id; return r }

func (r Route) Clone() Route {
	r.Stops = slices.Clone(r.Stops)
	return r
}

func (r Route) EntityID() string { return r.ID }
func (r Route) Category() string { return string(r.Status) }
func (r Route) SearchFields() []string {
	return []string{r.ID, r.Number, r.Name, r.Origin, r.Destination}
}

func (r Route) Validate() error {
	c := checker{kind: "route"}
	c.required("number", r.Number)
	c.required("name", r.Name)
	c.required("origin", r.Origin)
	c.required("destination", r.Destination)
	c.valid("status", r.Status.IsValid())
	c.valid("distanceKm", r.DistanceKm >= 0)
	return c.err()
}

type BusStop struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	Type      StopType `json:"type"`
	Routes    []string `json:"routes,omitempty"`
	Lat       float64  `json:"lat,omitempty"`
	Lng       float64  `json:"lng,omitempty"`
	Amenities []string `json:"amenities,omitempty"`
	Active    bool     `json:"active"`
}

func (s BusStop) WithID(id string) BusStop { s.ID = id; return s }

func (s BusStop) Clone() BusStop {
	s.Routes = slices.Clone(s.Routes)
	s.Amenities = slices.Clone(s.Amenities)
	return s
}

func (s BusStop) EntityID() string       { return s.ID }
func (s BusStop) Category() string       { return string(s.Type) }
func (s BusStop) SearchFields() []string { return []string{s.ID, s.Name, s.Location} }

func (s BusStop) Validate() error {
	c := checker{kind: "bus stop"}
	c.required("name", s.Name)
	c.required("location", s.Location)
	c.valid("type", s.Type.IsValid())
	c.valid("lat", s.Lat >= -90 && s.Lat <= 90)
	c.valid("lng", s.Lng >= -180 && s.Lng <= 180)
	return c.err()
}

// Fare is a ticket price. Class is the fare tab it is listed under (Regular, Student,
// Senior, ...).
type Fare struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Class       string  `json:"category"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Zone        string  `json:"zone,omitempty"`
	Description string  `json:"description,omitempty"`
	ValidFrom   string  `json:"validFrom,omitempty"`
	ValidTo     string  `json:"validTo,omitempty"`
}

func (f Fare) WithID(id string) Fare { f.ID = id; return f }

func (f Fare) Clone() Fare { return f }

func (f Fare) EntityID() string       { return f.ID }
func (f Fare) Category() string       { return f.Class }
func (f Fare) SearchFields() []string { return []string{f.ID, f.Name, f.Zone} }

func (f Fare) Validate() error {
	c := checker{kind: "fare"}
	c.required("name", f.Name)
	c.required("category", f.Class)
	c.required("currency", f.Currency)
	c.valid("amount", f.Amount >= 0)
	c.optionalDate("validFrom", f.ValidFrom)
	c.optionalDate("validTo", f.ValidTo)
	if f.ValidFrom != "" && f.ValidTo != "" && f.ValidTo < f.ValidFrom {
		c.valid("validTo", false)
	}
	return c.err()
}

type Report struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Type        string             `json:"type"`
	Period      string             `json:"period,omitempty"`
	GeneratedAt string             `json:"generatedAt,omitempty"`
	Author      string             `json:"author,omitempty"`
	Summary     string             `json:"summary,omitempty"`
	Metrics     map[string]float64 `json:"metrics,omitempty"`
}

func (r Report) WithID(id string) Report { r.ID = id; return r }

func (r Report) Clone() Report {
	r.Metrics = maps.Clone(r.Metrics)
	return r
}

func (r Report) EntityID() string       { return r.ID }
func (r Report) Category() string       { return r.Type }
func (r Report) SearchFields() []string { return []string{r.ID, r.Title, r.Author} }

func (r Report) Validate() error {
	c := checker{kind: "report"}
	c.required("title", r.Title)
	c.required("type", r.Type)
	c.optionalDate("generatedAt", r.GeneratedAt)
	return c.err()
}

// AppConfig is the passenger mobile app's remote configuration. There is one record.
type AppConfig struct {
	ID                  string          `json:"id"`
	AppName             string          `json:"appName"`
	Version             string          `json:"version"`
	MinSupportedVersion string          `json:"minSupportedVersion,omitempty"`
	Announcement        string          `json:"announcement,omitempty"`
	SupportEmail        string          `json:"supportEmail,omitempty"`
	Theme               string          `json:"theme,omitempty"`
	MaintenanceMode     bool            `json:"maintenanceMode"`
	Features            map[string]bool `json:"features,omitempty"`
	UpdatedAt           string          `json:"updatedAt,omitempty"`
}

// AppConfigID is the key of the single mobile app configuration record.
const AppConfigID = "mobile-app"

func (a AppConfig) WithID(id string) AppConfig { a.ID = id; return a }

func (a AppConfig) Clone() AppConfig {
	a.Features = maps.Clone(a.Features)
	return a
}

func (a AppConfig) EntityID() string { return a.ID }

func (a AppConfig) Validate() error {
	c := checker{kind: "mobile app config"}
	c.required("appName", a.AppName)
	c.valid("version", validVersion(a.Version))
	if a.MinSupportedVersion != "" {
		c.valid("minSupportedVersion", validVersion(a.MinSupportedVersion))
	}
	c.valid("supportEmail", a.SupportEmail == "" || strings.Contains(a.SupportEmail, "@"))
	return c.err()
}

func validVersion(v string) bool {
	parts := strings.Split(strings.TrimPrefix(strings.TrimSpace(v), "v"), ".")
	if len(parts) == 0 || len(parts) > 3 {
		return false
	}
	for _, p := range parts {
		if _, err := strconv.Atoi(p); err != nil {
			return false
		}
	}
	return true
}
