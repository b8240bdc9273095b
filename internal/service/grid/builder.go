package grid

import (
	"sort"
	"time"

	"github.com/campuscrew/interview-scheduling/internal/domain"
)

const minutesPerSlot = int(domain.SlotWidth / time.Minute)

// Cell is one selectable slot in the rendered grid.
type Cell struct {
	Token domain.GridToken `json:"token"`
	Label string           `json:"label"`
}

// Column is one calendar date in the viewer's timezone. Spacer columns mark a
// gap between non-adjacent dates.
type Column struct {
	Date   time.Time `json:"date,omitempty"`
	Label  string    `json:"label,omitempty"`
	Spacer bool      `json:"spacer,omitempty"`
}

// Row is one time-of-day line. Spacer rows separate visually disjoint blocks;
// boundary rows close a contiguous run and are never selectable, so they emit
// only nil cells. Cells is index-aligned with the grid's columns; a nil cell
// renders as blocked.
type Row struct {
	Minute   int     `json:"minute"`
	Label    string  `json:"label,omitempty"`
	Spacer   bool    `json:"spacer,omitempty"`
	Boundary bool    `json:"boundary,omitempty"`
	Cells    []*Cell `json:"cells,omitempty"`
}

type Grid struct {
	Timezone string   `json:"timezone"`
	Columns  []Column `json:"columns"`
	Rows     []Row    `json:"rows"`
}

// Builder lays out a token set as a time-of-day x date grid in a display
// timezone. Presentation-only: it never mutates stored tokens.
type Builder struct {
	loc *time.Location
}

func NewBuilder(loc *time.Location) *Builder {
	if loc == nil {
		loc = time.UTC
	}
	return &Builder{loc: loc}
}

func (b *Builder) Build(tokens []domain.GridToken) (*Grid, error) {
	members := make(map[domain.GridToken]struct{}, len(tokens))
	dateSet := make(map[time.Time]struct{})
	minuteSet := make(map[int]struct{})

	for _, token := range tokens {
		start, err := domain.ParseSlotKey(token)
		if err != nil {
			return nil, err
		}
		members[token] = struct{}{}

		local := start.In(b.loc)
		y, m, d := local.Date()
		dateSet[time.Date(y, m, d, 0, 0, 0, 0, b.loc)] = struct{}{}
		minuteSet[local.Hour()*60+local.Minute()] = struct{}{}
	}

	columns := b.layoutColumns(dateSet)
	rows := layoutRows(minuteSet)

	for ri := range rows {
		row := &rows[ri]
		if row.Spacer || row.Boundary {
			if !row.Spacer {
				row.Cells = make([]*Cell, len(columns))
			}
			continue
		}

		row.Cells = make([]*Cell, len(columns))
		for ci, col := range columns {
			if col.Spacer {
				continue
			}
			local := time.Date(col.Date.Year(), col.Date.Month(), col.Date.Day(),
				row.Minute/60, row.Minute%60, 0, 0, b.loc)
			token := domain.SlotKey(local)
			if _, ok := members[token]; ok {
				row.Cells[ci] = &Cell{Token: token, Label: local.Format("15:04")}
			}
		}
	}

	return &Grid{Timezone: b.loc.String(), Columns: columns, Rows: rows}, nil
}

func (b *Builder) layoutColumns(dateSet map[time.Time]struct{}) []Column {
	dates := make([]time.Time, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	var columns []Column
	for i, d := range dates {
		if i > 0 && !sameDate(dates[i-1].AddDate(0, 0, 1), d) {
			columns = append(columns, Column{Spacer: true})
		}
		columns = append(columns, Column{Date: d, Label: d.Format("Mon Jan 2")})
	}
	return columns
}

func layoutRows(minuteSet map[int]struct{}) []Row {
	minutes := make([]int, 0, len(minuteSet))
	for m := range minuteSet {
		minutes = append(minutes, m)
	}
	sort.Ints(minutes)

	var rows []Row
	for i := 0; i < len(minutes); {
		if len(rows) > 0 {
			rows = append(rows, Row{Spacer: true})
		}

		// Consume one contiguous run of 15-minute steps.
		j := i
		for j+1 < len(minutes) && minutes[j+1]-minutes[j] == minutesPerSlot {
			j++
		}
		for k := i; k <= j; k++ {
			rows = append(rows, Row{Minute: minutes[k], Label: rowLabel(minutes[k])})
		}

		// The closing boundary only bounds the prior slot; it is never selectable.
		boundary := minutes[j] + minutesPerSlot
		rows = append(rows, Row{Minute: boundary, Label: rowLabel(boundary), Boundary: true})

		i = j + 1
	}
	return rows
}

// rowLabel labels only rows on the hour.
func rowLabel(minute int) string {
	if minute%60 != 0 {
		return ""
	}
	return time.Date(0, 1, 1, (minute/60)%24, 0, 0, 0, time.UTC).Format("15:04")
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
