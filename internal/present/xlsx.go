package present

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"league_results_renderer/internal/widgets"
)

const maxSheetName = 31

type workbookStyles struct {
	header  int
	cell    int
	fastest int
}

func newWorkbookStyles(f *excelize.File) (workbookStyles, error) {
	var s workbookStyles
	var err error
	s.header, err = f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{"1c399e"},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
		},
		Font: &excelize.Font{
			Color: "ffffff",
			Bold:  true,
		},
	})
	if err != nil {
		return s, fmt.Errorf("header style: %w", err)
	}
	s.cell, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: "center",
		},
	})
	if err != nil {
		return s, fmt.Errorf("cell style: %w", err)
	}
	s.fastest, err = f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{"8b13c2"},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
		},
		Font: &excelize.Font{
			Color: "ffffff",
			Bold:  true,
		},
	})
	if err != nil {
		return s, fmt.Errorf("fastest lap style: %w", err)
	}
	return s, nil
}

// Workbook builds a spreadsheet with one sheet per card of page. Cells
// styled bold in the page (fastest laps) get the highlight style.
func Workbook(page *widgets.Page) (*excelize.File, error) {
	f := excelize.NewFile()
	styles, err := newWorkbookStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	used := map[string]bool{}
	for _, section := range page.Sections {
		for _, card := range section.Cards {
			name := sheetName(section.Heading, card, used)
			if _, err := f.NewSheet(name); err != nil {
				f.Close()
				return nil, fmt.Errorf("add sheet %q: %w", name, err)
			}
			if err := writeSheet(f, name, card, styles); err != nil {
				f.Close()
				return nil, fmt.Errorf("write sheet %q: %w", name, err)
			}
		}
	}
	if len(used) > 0 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, card widgets.Card, styles workbookStyles) error {
	for col, header := range card.View.Header {
		if err := addStyledCell(f, sheet, col+1, 1, header.Heading, styles.header); err != nil {
			return err
		}
	}
	for ri, row := range card.View.Body {
		for col, cell := range row {
			style := styles.cell
			if strings.Contains(cell.Style, "bold") {
				style = styles.fastest
			}
			if err := addStyledCell(f, sheet, col+1, ri+2, cell.Content.String(), style); err != nil {
				return err
			}
		}
	}
	return nil
}

func addStyledCell(f *excelize.File, sheet string, col, row int, value interface{}, style int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cell, cell, style)
}

var sheetNameReplacer = strings.NewReplacer(":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", "(", "]", ")")

func sheetName(section string, card widgets.Card, used map[string]bool) string {
	parts := make([]string, 0, 2)
	if section != "" {
		parts = append(parts, section)
	}
	if card.Title != "" {
		parts = append(parts, card.Title)
	}
	base := strings.TrimSpace(sheetNameReplacer.Replace(strings.Join(parts, " - ")))
	if base == "" || strings.EqualFold(base, "Sheet1") {
		base = "Table"
	}
	name := truncate(base, maxSheetName)
	for i := 2; used[strings.ToLower(name)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		name = truncate(base, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(name)] = true
	return name
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// WriteXLSX writes page as a spreadsheet to w.
func WriteXLSX(w io.Writer, page *widgets.Page) error {
	f, err := Workbook(page)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}
