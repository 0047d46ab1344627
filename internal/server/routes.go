package server

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) setupRouter(tmpl *template.Template) *gin.Engine {
	r := gin.New()
	r.Use(requestID(), accessLog(s.log), recovery(s.log))
	r.SetHTMLTemplate(tmpl)

	r.GET("/", s.dashboard)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "rows": s.table.Len()})
	})
	r.GET("/charts/:name", s.chart)
	r.GET("/export.xlsx", s.exportXLSX)

	api := r.Group("/api")
	{
		api.GET("/view", s.apiView)
		api.GET("/options", s.apiOptions)
	}
	return r
}
