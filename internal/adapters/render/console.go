// Package render turns ranked standings rows into the console table, the
// HTML page and the JSON/script payload files.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/okian/sdc-standings/internal/domain/model"
)

// DefaultCutoff is the number of rows above the playoff line.
const DefaultCutoff = 8

var (
	headers = []string{"Equipo", "Participante", "Prog", "J", "G", "P", "Por jugar", "PTS", "MG", "MR", "AB"}
	widths  = []int{18, 14, 4, 3, 3, 3, 9, 4, 3, 3, 3}
)

// cells returns the visible columns of r, in header order.
func cells(r model.Row) []any {
	return []any{r.Team, r.Participant, r.Scheduled, r.Played, r.Won, r.Lost, r.Remaining, r.Points, r.MercyGiven, r.MercyReceived, r.Forfeits}
}

// Console writes rows as a bordered fixed-width table. A separator follows
// row number cutoff when cutoff > 0. Values longer than their column are not
// truncated.
func Console(w io.Writer, rows []model.Row, cutoff int) error {
	dashes := make([]string, len(widths))
	for i, n := range widths {
		dashes[i] = strings.Repeat("-", n)
	}
	sep := "+-" + strings.Join(dashes, "-+-") + "-+\n"

	var b strings.Builder
	b.WriteString(sep)
	writeLine(&b, toAny(headers))
	b.WriteString(sep)
	for i, r := range rows {
		writeLine(&b, cells(r))
		if i+1 == cutoff {
			b.WriteString(sep)
		}
	}
	b.WriteString(sep)

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("%w: console: %w", ErrWrite, err)
	}
	return nil
}

func writeLine(b *strings.Builder, vals []any) {
	b.WriteString("|")
	for i, v := range vals {
		fmt.Fprintf(b, " %-*v |", widths[i], v)
	}
	b.WriteString("\n")
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
