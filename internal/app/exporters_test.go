package app

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/klabast/wb-services/transit-dashboard/internal/transit"
)

var exportStamp = time.Date(2023, 11, 20, 8, 30, 0, 0, time.UTC)

func sampleMaintenance() []transit.Maintenance {
	return []transit.Maintenance{
		{ID: "MT-001", VehicleID: "BUS-003", Type: "Engine Repair", Phase: transit.PhaseActive, Status: transit.MaintenanceInProgress,
			StartDate: "2023-11-18", ExpectedCompletion: "2023-11-22", Technician: "Omar Khalil"},
		{ID: "MT-010", VehicleID: "TAX-102", Type: "Oil Change", Phase: transit.PhaseScheduled, Status: transit.MaintenanceScheduled,
			ScheduledDate: "2023-11-20", AssignedTo: "Lena Vogt"},
		{ID: "MT-099", VehicleID: "BUS-001", Type: "Broken", Phase: transit.PhaseActive, Status: transit.MaintenanceInProgress,
			StartDate: "2023-13-45", ExpectedCompletion: "2023-11-22"},
	}
}

func TestMaintenanceICSEvents(t *testing.T) {
	events := maintenanceICSEvents(sampleMaintenance())
	if len(events) != 2 {
		t.Fatalf("Expected malformed record to be skipped, got %d events", len(events))
	}
	if events[0].Start.Format("2006-01-02") != "2023-11-18" || events[0].End.Format("2006-01-02") != "2023-11-22" {
		t.Errorf("Unexpected range %v..%v", events[0].Start, events[0].End)
	}
	if !events[1].Start.Equal(events[1].End) {
		t.Error("Scheduled maintenance should be a single day")
	}
	if !strings.Contains(events[1].Description, "Lena Vogt") {
		t.Errorf("Expected assignee in description, got %q", events[1].Description)
	}
}

func TestGenerateICS(t *testing.T) {
	var buf bytes.Buffer
	alarms := []Alarm{{DaysBefore: 2, Time: "18:00"}, {DaysBefore: 1, Time: "19:00"}, {DaysBefore: 0, Time: "07:00"}}

	if err := GenerateICS(&buf, "Fleet Maintenance", maintenanceICSEvents(sampleMaintenance()), alarms, exportStamp); err != nil {
		t.Fatalf("GenerateICS() error = %v", err)
	}
	body := buf.String()

	requiredFields := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + ICSProductID,
		"X-WR-CALNAME:Fleet Maintenance",
		"BEGIN:VEVENT",
		"UID:MT-001@" + icsUIDDomain,
		"DTSTAMP:20231120T083000Z",
		"END:VEVENT",
		"END:VCALENDAR",
	}
	for _, field := range requiredFields {
		if !strings.Contains(body, field) {
			t.Errorf("ICS output missing required field: %s", field)
		}
	}

	// All-day events, DTEND is exclusive
	if !strings.Contains(body, "DTSTART;VALUE=DATE:20231118\r\nDTEND;VALUE=DATE:20231123") {
		t.Error("Range should span 18th through 22nd inclusive")
	}
	if !strings.Contains(body, "DTSTART;VALUE=DATE:20231120\r\nDTEND;VALUE=DATE:20231121") {
		t.Error("Scheduled work should be a single all-day event")
	}
	if !strings.Contains(body, "SUMMARY:BUS-003 Engine Repair") {
		t.Error("Missing event summary")
	}

	// 2 events x 3 reminders
	if n := strings.Count(body, "BEGIN:VALARM"); n != 6 {
		t.Errorf("Expected 6 alarms, got %d", n)
	}
	if strings.Contains(strings.ReplaceAll(body, "\r\n", ""), "\n") {
		t.Error("Every line should end with CRLF")
	}
}

func TestGenerateICSEscapesText(t *testing.T) {
	var buf bytes.Buffer
	events := []icsEvent{{UID: "x@y", Summary: "Brakes; pads, discs", Start: exportStamp, End: exportStamp}}
	if err := GenerateICS(&buf, "Fleet", events, nil, exportStamp); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `SUMMARY:Brakes\; pads\, discs`) {
		t.Errorf("Expected escaped summary, got:\n%s", buf.String())
	}
}

func TestAddAlarm(t *testing.T) {
	tests := []struct {
		name        string
		eventDate   time.Time
		daysBefore  int
		alarmTime   string
		description string
		wantTrigger string
	}{
		{
			name:        "2 days before at 18:00",
			eventDate:   time.Date(2023, 11, 20, 0, 0, 0, 0, time.UTC),
			daysBefore:  2,
			alarmTime:   "18:00",
			description: "BUS-003 Engine Repair",
			wantTrigger: "-P1DT6H0M",
		},
		{
			name:        "1 day before at 19:00",
			eventDate:   time.Date(2023, 11, 20, 0, 0, 0, 0, time.UTC),
			daysBefore:  1,
			alarmTime:   "19:00",
			description: "TAX-102 Oil Change",
			wantTrigger: "-P0DT5H0M",
		},
		{
			name:        "Same day at 07:00",
			eventDate:   time.Date(2023, 11, 20, 0, 0, 0, 0, time.UTC),
			daysBefore:  0,
			alarmTime:   "07:00",
			description: "BUS-001 Tire Rotation",
			wantTrigger: "P0DT7H0M",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := AddAlarm(&buf, tt.eventDate, tt.daysBefore, tt.alarmTime, tt.description); err != nil {
				t.Fatalf("AddAlarm() error = %v", err)
			}
			output := buf.String()

			for _, want := range []string{"BEGIN:VALARM", "END:VALARM", "ACTION:DISPLAY", "TRIGGER:" + tt.wantTrigger, tt.description} {
				if !strings.Contains(output, want) {
					t.Errorf("Missing %q in output:\n%s", want, output)
				}
			}
		})
	}

	if err := AddAlarm(&bytes.Buffer{}, exportStamp, 1, "25:99", "x"); err == nil {
		t.Error("Expected an error for an invalid alarm time")
	}
}

func TestParseAlarms(t *testing.T) {
	alarms, err := parseAlarms([]string{"1@19:00", " 0@07:30 "})
	if err != nil {
		t.Fatalf("parseAlarms() error = %v", err)
	}
	if len(alarms) != 2 || alarms[0] != (Alarm{DaysBefore: 1, Time: "19:00"}) || alarms[1].Time != "07:30" {
		t.Errorf("Unexpected alarms %+v", alarms)
	}
	for _, bad := range []string{"19:00", "x@19:00", "-1@19:00", "1@7pm"} {
		if _, err := parseAlarms([]string{bad}); err == nil {
			t.Errorf("Expected error for %q", bad)
		}
	}
}

func TestGenerateCSV(t *testing.T) {
	var buf bytes.Buffer
	rows := [][]string{
		{"FR-001", "Single Ride", "Regular", "2.5"},
		{"FR-100", "Day Pass, Zone A", "Regular", "7"},
	}
	if err := GenerateCSV(&buf, []string{"ID", "Name", "Category", "Amount"}, rows); err != nil {
		t.Fatalf("GenerateCSV() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Output is not valid CSV: %v", err)
	}
	if len(records) != 3 || records[0][0] != "ID" {
		t.Fatalf("Unexpected records %v", records)
	}
	if records[2][1] != "Day Pass, Zone A" {
		t.Errorf("Commas should survive quoting, got %q", records[2][1])
	}
}
