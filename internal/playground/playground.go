package playground

import (
	"embed"
	"html/template"
	"log"
	"net/http"
)

//go:embed templates/playground.html
var templatesFS embed.FS

var page = template.Must(template.ParseFS(templatesFS, "templates/playground.html"))

// Одна и та же разметка: в первой карточке экранируется, во второй выводится как есть
const demoMarkup = "<div class='text-primary'>some content</div>"

type card struct {
	Title   string
	Content any
}

type pageData struct {
	Title    string
	Counters []int
	Sum      int
	Cards    []card
}

func newPageData() pageData {
	counters := []int{1, 1}
	sum := 0
	for _, c := range counters {
		sum += c
	}
	return pageData{
		Title:    "Hello World",
		Counters: counters,
		Sum:      sum,
		Cards: []card{
			{Title: "Escaped", Content: demoMarkup},
			{Title: "Markup", Content: template.HTML(demoMarkup)},
		},
	}
}

// Handler отдаёт публичную демо-страницу /awesome_owl
func Handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Execute(w, newPageData()); err != nil {
		log.Printf("playground render error: %v", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}
