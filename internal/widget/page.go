package widget

import (
	_ "embed"
	"html/template"
	"io"
)

//go:embed static/widget.html
var pageSource string

var pageTemplate = template.Must(template.New("widget").Parse(pageSource))

type PageData struct {
	Theme string
}

func RenderPage(w io.Writer, data PageData) error {
	return pageTemplate.Execute(w, data)
}
