package web

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"

	"numlist/internal/docs"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Raw HTML passthrough stays disabled (no html.WithUnsafe).
var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		emoji.Emoji,
	),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
	),
)

func renderMarkdownHTML(src string) template.HTML {
	src = strings.TrimSpace(src)
	if src == "" {
		return template.HTML("")
	}
	var b bytes.Buffer
	if err := markdownRenderer.Convert([]byte(src), &b); err != nil {
		return template.HTML("<pre>" + template.HTMLEscapeString(src) + "</pre>")
	}
	return template.HTML(b.String())
}

var docsPage = template.Must(template.New("docs").Parse(`<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<nav>{{range .Topics}}<a href="/docs/{{.}}">{{.}}</a> {{end}}</nav>
<main>{{.Body}}</main>
</body>
</html>
`))

type docsView struct {
	Title  string
	Topics []string
	Body   template.HTML
}

func (s *Server) handleDocsIndex(w http.ResponseWriter, r *http.Request) {
	s.writeDocs(w, docsView{Title: "numlist docs", Topics: docs.Topics()})
}

func (s *Server) handleDocsTopic(w http.ResponseWriter, r *http.Request) {
	topic := r.PathValue("topic")
	md, ok := docs.Get(topic)
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.writeDocs(w, docsView{
		Title:  "numlist docs: " + topic,
		Topics: docs.Topics(),
		Body:   renderMarkdownHTML(md),
	})
}

func (s *Server) writeDocs(w http.ResponseWriter, v docsView) {
	var b bytes.Buffer
	if err := docsPage.Execute(&b, v); err != nil {
		s.log.Error().Err(err).Msg("render docs")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(b.Bytes())
}
