// Package htmlmail renders the branded HTML documents for notification
// emails. Fragments are built with html/template so every user-supplied
// string is escaped before it reaches an email body.
package htmlmail

import (
	"bytes"
	"html/template"
	"time"
)

const (
	ServiceName = "Loksar"
	Tagline     = "Professional Cleaning & Gardening Services"
	FooterText  = "Loksar · Serving the Greater London area · hello@loksar.com"
)

// Row is one labeled line of a submission summary.
type Row struct {
	Label string
	Value string
}

var layoutTmpl = template.Must(template.New("layout").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Arial, Helvetica, sans-serif; color: #2d2d2d; margin: 0; }
  .header { background-color: #1f6f43; color: #ffffff; padding: 24px; text-align: center; }
  .header h1 { margin: 0; font-size: 24px; }
  .header p { margin: 4px 0 0; font-size: 14px; }
  .content { padding: 24px; }
  .footer { background-color: #f4f4f4; color: #777777; padding: 16px; text-align: center; font-size: 12px; }
  table { border-collapse: collapse; width: 100%; }
  td { padding: 6px 8px; border-bottom: 1px solid #e5e5e5; vertical-align: top; }
  td.label { font-weight: bold; width: 40%; }
</style>
</head>
<body>
  <div class="header">
    <h1>{{.ServiceName}}</h1>
    <p>{{.Tagline}}</p>
  </div>
  <div class="content">{{.Content}}</div>
  <div class="footer">&copy; {{.Year}} {{.FooterText}}</div>
</body>
</html>
`))

var fragmentTmpl = template.Must(template.New("fragment").Parse(`{{if .Greeting}}<p>{{.Greeting}}</p>
{{end}}{{if .Note}}<p>{{.Note}}</p>
{{end}}{{if .Rows}}<table>
{{range .Rows}}<tr><td class="label">{{.Label}}</td><td>{{.Value}}</td></tr>
{{end}}</table>
{{end}}`))

type layoutData struct {
	ServiceName string
	Tagline     string
	FooterText  string
	Year        int
	Content     template.HTML
}

type fragmentData struct {
	Greeting string
	Note     string
	Rows     []Row
}

// Render wraps a pre-built fragment in the branded document. The fragment is
// inserted verbatim; only Fragment output should be passed in.
func Render(fragment template.HTML) (string, error) {
	var buf bytes.Buffer
	err := layoutTmpl.Execute(&buf, layoutData{
		ServiceName: ServiceName,
		Tagline:     Tagline,
		FooterText:  FooterText,
		Year:        time.Now().Year(),
		Content:     fragment,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Fragment builds an email body fragment from escaped parts. Greeting and
// note are optional; rows render as a two-column summary table.
func Fragment(greeting, note string, rows []Row) (template.HTML, error) {
	var buf bytes.Buffer
	err := fragmentTmpl.Execute(&buf, fragmentData{
		Greeting: greeting,
		Note:     note,
		Rows:     rows,
	})
	if err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
