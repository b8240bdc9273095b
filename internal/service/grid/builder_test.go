package grid

import (
	"testing"
	"time"

	"github.com/campuscrew/interview-scheduling/internal/domain"
)

func countSelectableCells(g *Grid) int {
	n := 0
	for _, row := range g.Rows {
		for _, cell := range row.Cells {
			if cell != nil {
				n++
			}
		}
	}
	return n
}

func TestBuilder_EveryTokenGetsExactlyOneCell(t *testing.T) {
	tokens := []domain.GridToken{
		"2026-03-14-09-00", "2026-03-14-09-15", "2026-03-14-09-30",
		"2026-03-14-14-00", "2026-03-14-14-15",
		"2026-03-16-09-00", "2026-03-16-09-15",
	}

	g, err := NewBuilder(time.UTC).Build(tokens)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if got := countSelectableCells(g); got != len(tokens) {
		t.Errorf("selectable cells = %d, want %d", got, len(tokens))
	}

	seen := make(map[domain.GridToken]struct{})
	for _, row := range g.Rows {
		for _, cell := range row.Cells {
			if cell == nil {
				continue
			}
			if _, dup := seen[cell.Token]; dup {
				t.Errorf("token %q rendered more than once", cell.Token)
			}
			seen[cell.Token] = struct{}{}
		}
	}
	for _, token := range tokens {
		if _, ok := seen[token]; !ok {
			t.Errorf("token %q missing from the grid", token)
		}
	}
}

func TestBuilder_SpacerColumnBetweenNonAdjacentDates(t *testing.T) {
	tokens := []domain.GridToken{
		"2026-03-14-09-00",
		"2026-03-16-09-00",
	}

	g, err := NewBuilder(time.UTC).Build(tokens)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// Two dates with a one-day gap: date, spacer, date.
	if len(g.Columns) != 3 {
		t.Fatalf("columns = %d, want 3", len(g.Columns))
	}
	if g.Columns[0].Spacer || !g.Columns[1].Spacer || g.Columns[2].Spacer {
		t.Errorf("expected spacer only in the middle column, got %+v", g.Columns)
	}
}

func TestBuilder_NoSpacerBetweenAdjacentDates(t *testing.T) {
	tokens := []domain.GridToken{
		"2026-03-14-09-00",
		"2026-03-15-09-00",
	}

	g, err := NewBuilder(time.UTC).Build(tokens)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(g.Columns) != 2 {
		t.Fatalf("columns = %d, want 2", len(g.Columns))
	}
	for _, col := range g.Columns {
		if col.Spacer {
			t.Errorf("unexpected spacer column: %+v", g.Columns)
		}
	}
}

func TestBuilder_BoundaryRowClosesEachRun(t *testing.T) {
	tokens := []domain.GridToken{
		"2026-03-14-09-00", "2026-03-14-09-15",
		"2026-03-14-14-00",
	}

	g, err := NewBuilder(time.UTC).Build(tokens)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	var boundaries []int
	spacers := 0
	for _, row := range g.Rows {
		if row.Spacer {
			spacers++
			continue
		}
		if row.Boundary {
			boundaries = append(boundaries, row.Minute)
			for _, cell := range row.Cells {
				if cell != nil {
					t.Errorf("boundary row %d has a selectable cell", row.Minute)
				}
			}
		}
	}

	// Two runs (09:00-09:15 and 14:00) close at 09:30 and 14:15.
	if len(boundaries) != 2 || boundaries[0] != 9*60+30 || boundaries[1] != 14*60+15 {
		t.Errorf("boundary minutes = %v, want [570 855]", boundaries)
	}
	if spacers != 1 {
		t.Errorf("spacer rows = %d, want 1", spacers)
	}
}

func TestBuilder_TimezoneShiftsCellDates(t *testing.T) {
	// 2026-03-14 23:30 UTC is already March 15 in JST.
	tokens := []domain.GridToken{"2026-03-14-23-30"}
	jst := time.FixedZone("JST", 9*3600)

	g, err := NewBuilder(jst).Build(tokens)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if len(g.Columns) != 1 {
		t.Fatalf("columns = %d, want 1", len(g.Columns))
	}
	if got := g.Columns[0].Date.Day(); got != 15 {
		t.Errorf("column date day = %d, want 15", got)
	}
	if got := countSelectableCells(g); got != 1 {
		t.Errorf("selectable cells = %d, want 1", got)
	}
}

func TestBuilder_EmptyTokenSet(t *testing.T) {
	g, err := NewBuilder(time.UTC).Build(nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(g.Columns) != 0 || len(g.Rows) != 0 {
		t.Errorf("empty input produced columns=%d rows=%d", len(g.Columns), len(g.Rows))
	}
}
