package theme

import (
	"bytes"
	"text/template"
)

var cssTemplate = template.Must(template.New("css").Parse(`body {
  background-color: {{.Background}};
  color: {{.TextFg}};
  font-family: {{if .FontFamily}}"{{.FontFamily}}", {{end}}sans-serif;
  margin: 1em 2em;
}
h1, h2, h3, h4, h5, h6 { color: {{.Accent}}; }
a { color: {{.Pink}}; }
code, pre { background-color: {{.AccentDim}}; font-family: {{if .FontFamily}}"{{.FontFamily}}", {{end}}monospace; }
pre { padding: 0.5em; border-radius: 4px; }
blockquote { color: {{.MutedFg}}; border-left: 3px solid {{.Border}}; margin-left: 0; padding-left: 1em; }
hr { border: none; border-top: 1px solid {{.BorderDim}}; }
table { border-collapse: collapse; }
th, td { border: 1px solid {{.Border}}; padding: 0.25em 0.5em; }`))

func generateCSS(t *Theme) string {
	var buf bytes.Buffer
	if err := cssTemplate.Execute(&buf, t); err != nil {
		return ""
	}
	return buf.String()
}
