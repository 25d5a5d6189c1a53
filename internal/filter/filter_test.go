package filter

import "testing"

type row struct {
	id, model, driver, route, status string
}

func (r row) SearchFields() []string { return []string{r.id, r.model, r.driver, r.route} }
func (r row) Category() string       { return r.status }

var rows = []row{
	{"BUS-001", "Volvo 7900 Electric", "Ahmed Al-Rashid", "Route 12", "In Service"},
	{"BUS-002", "Mercedes eCitaro", "Sarah Klein", "Route 4", "Charging"},
	{"BUS-003", "Solaris Urbino", "", "", "Maintenance"},
	{"TAX-101", "Toyota Prius", "ahmed hussein", "", "In Service"},
}

func TestMatchesIdentity(t *testing.T) {
	for _, r := range rows {
		if !Matches(r, "", All) {
			t.Errorf("Matches(%s, \"\", all) should be true", r.id)
		}
		if !Matches(r, "   ", "") {
			t.Errorf("Matches(%s) with blank query and empty tab should be true", r.id)
		}
	}
}

func TestMatchesCaseInsensitive(t *testing.T) {
	for _, tab := range []string{All, "In Service", "in service", "Charging"} {
		for _, r := range rows {
			upper := Matches(r, "AHMED", tab)
			lower := Matches(r, "ahmed", tab)
			if upper != lower {
				t.Errorf("Matches(%s, AHMED, %s) = %v but ahmed gives %v", r.id, tab, upper, lower)
			}
		}
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		category string
		want     []string
	}{
		{"search driver", "ahmed", All, []string{"BUS-001", "TAX-101"}},
		{"search and tab", "ahmed", "In Service", []string{"BUS-001", "TAX-101"}},
		{"tab only", "", "charging", []string{"BUS-002"}},
		{"tab any case", "", "MAINTENANCE", []string{"BUS-003"}},
		{"search model", "electric", "ALL", []string{"BUS-001"}},
		{"search id", "bus-00", All, []string{"BUS-001", "BUS-002", "BUS-003"}},
		{"no match", "tram", All, nil},
		{"tab excludes search hit", "ahmed", "Charging", nil},
		{"unknown tab", "", "Out of Service", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(rows, tt.query, tt.category)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %v, got %d rows", tt.want, len(got))
			}
			for i, r := range got {
				if r.id != tt.want[i] {
					t.Errorf("Row %d: expected %s, got %s", i, tt.want[i], r.id)
				}
			}
		})
	}
}

func TestMatchesIsDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		got := Apply(rows, "route", All)
		if len(got) != 2 || got[0].id != "BUS-001" || got[1].id != "BUS-002" {
			t.Fatalf("Run %d: unexpected result %v", i, got)
		}
	}
}
