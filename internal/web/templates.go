package web

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/elethrixneil1/bsit1e/internal/enrollment"
)

//go:embed templates/*.html
var templateFS embed.FS

func parseTemplates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

type loginPage struct {
	Message string
}

type registerPage struct {
	Message string
}

type dashboardPage struct {
	Name      string
	StudentID string
	Summary   *enrollment.StudentSummary
	Message   string
}

type teacherPage struct {
	Name     string
	Students []enrollment.RosterRow
	Message  string
}

func (h *Handler) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("render template", "template", name, "error", err)
	}
}
