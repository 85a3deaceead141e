// Package present turns rendered widget pages into HTML fragments for the
// host page and into spreadsheet or CSV downloads.
package present

import (
	"html"
	"html/template"
	"io"
	"strings"

	"github.com/google/uuid"

	"league_results_renderer/internal/table"
	"league_results_renderer/internal/widgets"
)

const (
	defaultTableClass = "table table-sm table-striped table-hover"
	defaultTableStyle = "font-size: 0.9rem; line-height: 1rem"
)

var allowedTags = map[string]bool{"span": true, "div": true, "label": true, "b": true}

// HTML renders pages as markup fragments that replace the content of the
// host page container.
type HTML struct {
	TableClass string
	TableStyle string
	// Namespace seeds the table ids, usually the request path.
	Namespace string
	// Link returns the URL a header click navigates to. Without it headers
	// are not clickable.
	Link func(key string, state table.SortState) string
}

// NewHTML returns the default table look used by the widgets.
func NewHTML(namespace string) HTML {
	return HTML{
		TableClass: defaultTableClass,
		TableStyle: defaultTableStyle,
		Namespace:  namespace,
	}
}

// TableID returns a stable id for the table of a card.
func (h HTML) TableID(key string) string {
	return "tbl-" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(h.Namespace+"#"+key)).String()
}

var pageTemplate = template.Must(template.New("page").Parse(
	`{{if .Page.Heading}}<h3 class="m-2">{{.Page.Heading}}</h3>
{{end}}{{range .Page.Sections}}{{if .Heading}}<h5 class="m-2 mb-0">{{.Heading}}</h5>
{{end}}{{range .Cards}}<div class="card m-2">{{if .ShowTitle}}<div class="card-header">{{.Title}}</div>{{end}}<div class="card-body overflow-auto p-1">{{call $.Table .}}</div></div>
{{end}}{{end}}`))

// Write renders page to w. An empty page writes nothing.
func (h HTML) Write(w io.Writer, page *widgets.Page) error {
	if page == nil || page.Empty() {
		return nil
	}
	return pageTemplate.Execute(w, struct {
		Page  *widgets.Page
		Table func(widgets.Card) template.HTML
	}{
		Page:  page,
		Table: h.table,
	})
}

func (h HTML) table(card widgets.Card) template.HTML {
	var b strings.Builder
	id := h.TableID(card.Key)
	b.WriteString(`<table id="` + id + `"`)
	writeAttr(&b, "class", h.TableClass)
	writeAttr(&b, "style", h.TableStyle)
	b.WriteString("><thead><tr>")
	for _, cell := range card.View.Header {
		b.WriteString("<th")
		writeAttr(&b, "class", cell.Class())
		b.WriteString(">")
		if cell.Sortable && h.Link != nil {
			href := h.Link(card.Key, card.State.Click(cell.Index)) + "#" + id
			b.WriteString(`<a href="` + html.EscapeString(href) + `">` + html.EscapeString(cell.Heading) + "</a>")
		} else {
			b.WriteString(html.EscapeString(cell.Heading))
		}
		b.WriteString("</th>")
	}
	b.WriteString("</tr></thead><tbody>")
	for _, row := range card.View.Body {
		b.WriteString("<tr>")
		for _, cell := range row {
			b.WriteString("<td")
			writeAttr(&b, "style", cell.Style)
			b.WriteString(">")
			writeRenderable(&b, cell.Content)
			b.WriteString("</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return template.HTML(b.String())
}

func writeAttr(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	b.WriteString(" " + name + `="` + html.EscapeString(value) + `"`)
}

func writeRenderable(b *strings.Builder, r table.Renderable) {
	n := r.Node()
	if n == nil {
		b.WriteString(html.EscapeString(r.String()))
		return
	}
	tag := n.Tag
	if !allowedTags[tag] {
		tag = "span"
	}
	b.WriteString("<" + tag)
	writeAttr(b, "class", n.Class)
	writeAttr(b, "style", n.Style)
	b.WriteString(">")
	for _, c := range n.Children {
		writeRenderable(b, c)
	}
	b.WriteString("</" + tag + ">")
}
