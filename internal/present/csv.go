package present

import (
	"encoding/csv"
	"io"
	"strings"

	"league_results_renderer/internal/widgets"
)

// WriteCSV writes every card of page as a block of CSV records: a title
// record when the card has a heading, the header record and the rows.
// Blocks are separated by an empty record.
func WriteCSV(w io.Writer, page *widgets.Page) error {
	cw := csv.NewWriter(w)
	first := true
	for _, section := range page.Sections {
		for _, card := range section.Cards {
			if !first {
				if err := cw.Write(nil); err != nil {
					return err
				}
			}
			first = false

			title := strings.Trim(section.Heading+" - "+card.Title, " -")
			if title != "" {
				if err := cw.Write([]string{title}); err != nil {
					return err
				}
			}
			header := make([]string, len(card.View.Header))
			for i, h := range card.View.Header {
				header[i] = h.Heading
			}
			if err := cw.Write(header); err != nil {
				return err
			}
			for _, row := range card.View.Body {
				record := make([]string, len(row))
				for i, cell := range row {
					record[i] = cell.Content.String()
				}
				if err := cw.Write(record); err != nil {
					return err
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
