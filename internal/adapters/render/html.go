package render

import (
	"fmt"
	"html/template"
	"io"

	"github.com/okian/sdc-standings/internal/domain/model"
)

var tableTmpl = template.Must(template.New("tabla").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Tabla SDC</title></head><body>
<h2>Tabla de Posiciones</h2>
<table border="1" cellpadding="6" cellspacing="0">
<tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr{{if .Cut}} style="border-bottom:2px dashed #999"{{end}}>{{range .Cells}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
</body></html>
`))

type htmlRow struct {
	Cells []any
	Cut   bool
}

// HTML writes rows as a standalone HTML page. The row at position cutoff
// gets a dashed bottom border.
func HTML(w io.Writer, rows []model.Row, cutoff int) error {
	data := struct {
		Headers []string
		Rows    []htmlRow
	}{Headers: headers, Rows: make([]htmlRow, len(rows))}
	for i, r := range rows {
		data.Rows[i] = htmlRow{Cells: cells(r), Cut: i+1 == cutoff}
	}
	if err := tableTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("%w: html: %w", ErrWrite, err)
	}
	return nil
}
