package printing

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/isletme/backend/internal/domain/printing"
)

// HTMLEmitter turns a layout into a standalone HTML document. Each zone is
// a block in page order; nodes inside a zone are grouped by alignment so a
// left logo and right company block share a row.
type HTMLEmitter struct {
	tmpl *template.Template
}

// NewHTMLEmitter parses the page template
func NewHTMLEmitter() *HTMLEmitter {
	funcs := template.FuncMap{
		"upper": upperTR,
		"mm":    func(v int) string { return fmt.Sprintf("%dmm", v) },
		"pt":    fontSize,
		"css":   func(s string) template.CSS { return template.CSS(safeColor(s)) },
		"url":   imageURL,
	}
	return &HTMLEmitter{tmpl: template.Must(template.New("page").Funcs(funcs).Parse(pageTemplate))}
}

type zoneView struct {
	Zone  printing.Zone
	Left  []printing.Node
	Mid   []printing.Node
	Right []printing.Node
	Split bool // left and right columns both have content
}

type pageView struct {
	Title  string
	Layout printing.Layout
	Zones  []zoneView
}

// Render emits the HTML for l
func (e *HTMLEmitter) Render(l printing.Layout, title string) (string, error) {
	view := pageView{Title: title, Layout: l}
	for _, z := range printing.Zones {
		nodes := l.InZone(z)
		if len(nodes) == 0 {
			continue
		}
		zv := zoneView{Zone: z}
		for _, n := range nodes {
			switch n.Align {
			case printing.AlignRight:
				zv.Right = append(zv.Right, n)
			case printing.AlignCenter:
				zv.Mid = append(zv.Mid, n)
			default:
				zv.Left = append(zv.Left, n)
			}
		}
		zv.Split = len(zv.Left) > 0 && len(zv.Right) > 0
		view.Zones = append(view.Zones, zv)
	}

	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render page html: %w", err)
	}
	return buf.String(), nil
}

// upperTR upper-cases with Turkish rules, so "istanbul" becomes "İSTANBUL".
// Casers keep state and are created per call.
func upperTR(s string) string {
	return cases.Upper(language.Turkish).String(s)
}

// imageURL lets http(s) and inline image data through unescaped
func imageURL(s string) template.URL {
	lower := strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "data:image/") {
		return template.URL(strings.TrimSpace(s))
	}
	return ""
}

func fontSize(base, scale int) string {
	if scale == 0 {
		scale = 100
	}
	return fmt.Sprintf("%.1fpt", float64(base*scale)/100)
}

// safeColor accepts #rgb and #rrggbb colours, anything else renders black
func safeColor(s string) string {
	s = strings.TrimSpace(s)
	if (len(s) == 4 || len(s) == 7) && s[0] == '#' {
		for _, r := range s[1:] {
			if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
				return "#000000"
			}
		}
		return s
	}
	return "#000000"
}

const pageTemplate = `<!DOCTYPE html>
<html lang="tr">
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
@page { size: {{mm .Layout.Page.WidthMM}} {{mm .Layout.Page.HeightMM}}; margin: 0; }
* { box-sizing: border-box; }
body {
  margin: 0;
  padding: {{mm .Layout.Page.Padding.Top}} {{mm .Layout.Page.Padding.Right}} {{mm .Layout.Page.Padding.Bottom}} {{mm .Layout.Page.Padding.Left}};
  font-family: "DejaVu Sans", Arial, sans-serif;
  font-size: {{pt .Layout.Style.FontSize 100}};
  color: {{css .Layout.Style.TextColor}};
}
.zone { margin-bottom: 4mm; }
.row { display: flex; justify-content: space-between; gap: 8mm; }
.left { text-align: left; }
.center { text-align: center; }
.right { text-align: right; }
.muted { opacity: .7; }
.bold { font-weight: bold; }
.label { font-weight: bold; margin-right: 2mm; }
.logo { max-height: 22mm; max-width: 60mm; }
.spacer { height: 4mm; border-bottom: 1px solid {{css .Layout.Style.PrimaryColor}}; }
table { width: 100%; border-collapse: collapse; }
th { background: {{css .Layout.Style.PrimaryColor}}; color: #fff; padding: 1.5mm; }
td { padding: 1.5mm; border-bottom: 1px solid #ddd; }
.zone-totals { margin-left: auto; width: 45%; }
.zone-footer { border-top: 1px solid #ddd; padding-top: 2mm; }
</style>
</head>
<body>
{{- range .Zones}}
<div class="zone zone-{{.Zone}}">
{{- if .Split}}
<div class="row"><div class="left">{{template "nodes" .Left}}</div><div class="right">{{template "nodes" .Right}}</div></div>
{{- else}}
{{- if .Left}}<div class="left">{{template "nodes" .Left}}</div>{{end}}
{{- if .Right}}<div class="right">{{template "nodes" .Right}}</div>{{end}}
{{- end}}
{{- if .Mid}}<div class="center">{{template "nodes" .Mid}}</div>{{end}}
</div>
{{- end}}
</body>
</html>
{{define "nodes"}}{{range .}}{{template "node" .}}{{end}}{{end}}
{{define "node"}}
{{- if eq .Kind "text"}}<div class="{{if .Style.Bold}}bold {{end}}{{if .Style.Muted}}muted{{end}}"{{if .Style.Scale}} style="font-size: {{.Style.Scale}}%"{{end}}>
{{- if .Label}}<span class="label">{{.Label}}:</span>{{end}}
{{- if .Style.Uppercase}}{{upper .Text}}{{else}}{{.Text}}{{end}}</div>
{{- else if eq .Kind "image"}}<img class="logo" src="{{url .ImageURL}}" alt="">
{{- else if eq .Kind "spacer"}}<div class="spacer"></div>
{{- else if eq .Kind "table"}}<table>
<thead><tr>{{range .Table.Columns}}<th class="{{.Align}}">{{.Header}}</th>{{end}}</tr></thead>
<tbody>{{$cols := .Table.Columns}}{{range .Table.Rows}}<tr>{{range $i, $cell := .}}<td class="{{(index $cols $i).Align}}">{{$cell}}</td>{{end}}</tr>{{end}}</tbody>
</table>
{{- end}}
{{- end}}`
