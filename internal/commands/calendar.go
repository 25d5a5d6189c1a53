package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/spf13/cobra"

	"github.com/klabast/wb-services/transit-dashboard/internal/calendar"
	"github.com/klabast/wb-services/transit-dashboard/internal/filter"
	"github.com/klabast/wb-services/transit-dashboard/internal/logx"
	"github.com/klabast/wb-services/transit-dashboard/internal/transit"
)

const (
	minCellWidth     = 8
	defaultCellWidth = 18
)

type gridStyles struct {
	title       lipgloss.Style
	header      lipgloss.Style
	cell        lipgloss.Style
	placeholder lipgloss.Style
	weekend     lipgloss.Style
	today       lipgloss.Style
	day         lipgloss.Style
	holiday     lipgloss.Style
	more        lipgloss.Style
}

func newGridStyles(width, height int) gridStyles {
	cell := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Border(lipgloss.NormalBorder())
	return gridStyles{
		title:       lipgloss.NewStyle().Bold(true).MarginBottom(1),
		header:      lipgloss.NewStyle().Width(width + 2).Align(lipgloss.Center).Bold(true),
		cell:        cell,
		placeholder: cell.BorderForeground(lipgloss.Color("238")),
		weekend:     cell.Foreground(lipgloss.Color("245")),
		today:       cell.BorderForeground(lipgloss.Color("39")),
		day:         lipgloss.NewStyle().Bold(true),
		holiday:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		more:        lipgloss.NewStyle().Faint(true),
	}
}

// GridOptions tunes the terminal month view.
type GridOptions struct {
	Grid  calendar.GridOptions
	Limit int
	// CellWidth is the inner width of a day cell in columns.
	CellWidth int
}

// RenderMonth draws m as a bordered week grid. Each day shows at most Limit titles,
// truncated to the cell width, followed by "+N more" when events were left out.
func RenderMonth[E calendar.Event](w io.Writer, m calendar.Month, events []E, opts GridOptions, label func(E) string) error {
	width := opts.CellWidth
	if width < minCellWidth {
		width = minCellWidth
	}
	cells := calendar.Grid(m, events, opts.Grid)

	// Every cell gets the height of the fullest day so rows line up.
	height := 1
	for _, c := range cells {
		shown, hidden := calendar.Truncate(c.Events, opts.Limit)
		lines := 1 + len(shown)
		if hidden > 0 {
			lines++
		}
		if c.Holiday != "" {
			lines++
		}
		height = max(height, lines)
	}
	st := newGridStyles(width, height)

	headers := make([]string, 0, 7)
	for _, h := range calendar.WeekdayHeaders(opts.Grid.WeekStart) {
		headers = append(headers, st.header.Render(h))
	}
	rows := []string{
		st.title.Render(m.First().Format("January 2006")),
		lipgloss.JoinHorizontal(lipgloss.Top, headers...),
	}
	for _, week := range calendar.Weeks(cells) {
		boxes := make([]string, 0, len(week))
		for _, c := range week {
			boxes = append(boxes, renderCell(st, c, opts.Limit, width, label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	}

	_, err := fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, rows...))
	return err
}

func renderCell[E any](st gridStyles, c calendar.Cell[E], limit, width int, label func(E) string) string {
	if c.Placeholder {
		return st.placeholder.Render("")
	}
	lines := []string{st.day.Render(fmt.Sprintf("%2d", c.Day()))}
	if c.Holiday != "" {
		lines = append(lines, st.holiday.Render(fit(c.Holiday, width)))
	}
	shown, hidden := calendar.Truncate(c.Events, limit)
	for _, e := range shown {
		lines = append(lines, fit(label(e), width))
	}
	if more := calendar.MoreLabel(hidden); more != "" {
		lines = append(lines, st.more.Render(more))
	}

	style := st.cell
	switch {
	case c.Today:
		style = st.today
	case c.Weekend:
		style = st.weekend
	}
	return style.Render(strings.Join(lines, "\n"))
}

func fit(s string, width int) string {
	return truncate.StringWithTail(s, uint(width), "…")
}

func maintenanceTitle(m transit.Maintenance) string { return m.VehicleID + " " + m.Type }

func scheduleTitle(s transit.Schedule) string { return s.Route + " " + s.Name }

// NewCalendarCmd prints the maintenance or schedule calendar of one month.
func NewCalendarCmd(configPath *string) *cobra.Command {
	var (
		month string
		limit int
		width int
		query string
	)
	cmd := &cobra.Command{
		Use:       "calendar [maintenance|schedules]",
		Short:     "Print a month of the maintenance or schedule calendar",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"maintenance", "schedules"},
		RunE: func(cmd *cobra.Command, args []string) error {
			page := "maintenance"
			if len(args) == 1 {
				page = args[0]
			}
			cfg, err := LoadConfig(*configPath)
			if err != nil {
				return err
			}
			m, err := calendar.ParseMonth(month, time.Now())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("limit") {
				limit = cfg.Display.MaxEventsPerDay
			}
			opts := GridOptions{
				Grid:      calendar.GridOptions{WeekStart: cfg.Display.Week(), Now: time.Now(), Holidays: true},
				Limit:     limit,
				CellWidth: width,
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			st, err := OpenStore(ctx, cfg, logx.Nop())
			if err != nil {
				return err
			}
			defer st.Close()

			return renderPage(ctx, cmd.OutOrStdout(), page, query, m, opts, st.Maintenance.List, st.Schedules.List)
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "Month to show as YYYY-MM (default current month)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Events shown per day, 0 for all (default display.max_events_per_day)")
	cmd.Flags().IntVar(&width, "width", defaultCellWidth, "Inner width of a day cell")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Only show records matching this search")
	return cmd
}

type lister[T any] func(context.Context) ([]T, error)

func renderPage(ctx context.Context, w io.Writer, page, query string, m calendar.Month, opts GridOptions,
	maintenance lister[transit.Maintenance], schedules lister[transit.Schedule]) error {
	switch page {
	case "maintenance":
		items, err := maintenance(ctx)
		if err != nil {
			return err
		}
		return RenderMonth(w, m, filter.Apply(items, query, filter.All), opts, maintenanceTitle)
	case "schedules":
		items, err := schedules(ctx)
		if err != nil {
			return err
		}
		return RenderMonth(w, m, filter.Apply(items, query, filter.All), opts, scheduleTitle)
	}
	return fmt.Errorf("unknown calendar %q", page)
}
