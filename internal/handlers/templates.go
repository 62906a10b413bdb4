package handlers

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"
)

const (
	loginTemplate = "login.html"
	indexTemplate = "index.html"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplates = template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))

// html renders a page, adding the session username to the template data.
func (h *Handler) html(c *gin.Context, code int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["username"] = sessionUsername(c)
	c.HTML(code, name, data)
}
