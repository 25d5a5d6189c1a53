package transit

import (
	"fmt"
	"strings"

	"github.com/klabast/wb-services/transit-dashboard/internal/calendar"
)

// ValidationError lists the fields a submitted record is missing or got wrong.
type ValidationError struct {
	Kind   string
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Kind, strings.Join(e.Fields, ", "))
}

// checker accumulates field problems for one record.
type checker struct {
	kind   string
	fields []string
}

func (c *checker) required(name, value string) {
	if strings.TrimSpace(value) == "" {
		c.fields = append(c.fields, name)
	}
}

func (c *checker) valid(name string, ok bool) {
	if !ok {
		c.fields = append(c.fields, name)
	}
}

func (c *checker) date(name, value string) {
	if strings.TrimSpace(value) == "" {
		c.fields = append(c.fields, name)
		return
	}
	if _, err := calendar.ParseDate(value); err != nil {
		c.fields = append(c.fields, name)
	}
}

func (c *checker) optionalDate(name, value string) {
	if strings.TrimSpace(value) != "" {
		c.date(name, value)
	}
}

func (c *checker) err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return &ValidationError{Kind: c.kind, Fields: c.fields}
}
