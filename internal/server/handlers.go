package server

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/KaramelBytes/firedash/internal/analysis"
	"github.com/KaramelBytes/firedash/internal/charts"
	"github.com/KaramelBytes/firedash/internal/export"
	"github.com/KaramelBytes/firedash/internal/filter"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// selectionFrom reads repeated region, district and subdistrict params.
// Comma separated values are accepted too.
func selectionFrom(c *gin.Context) filter.Selection {
	return filter.Selection{
		Regions:      queryList(c, "region"),
		Districts:    queryList(c, "district"),
		Subdistricts: queryList(c, "subdistrict"),
	}
}

func queryList(c *gin.Context, key string) []string {
	var out []string
	for _, raw := range c.QueryArray(key) {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func encodeSelection(sel filter.Selection) string {
	q := url.Values{}
	for _, v := range sel.Regions {
		q.Add("region", v)
	}
	for _, v := range sel.Districts {
		q.Add("district", v)
	}
	for _, v := range sel.Subdistricts {
		q.Add("subdistrict", v)
	}
	return q.Encode()
}

func (s *Server) render(c *gin.Context) *analysis.View {
	return analysis.Render(s.table, selectionFrom(c), s.cfg.Render)
}

type panel struct {
	Title string
	Src   template.URL
}

type tab struct {
	ID     string
	Title  string
	Panels []panel
}

type page struct {
	View     *analysis.View
	Query    string
	Tabs     []tab
	TopPairs []analysis.PairCorr
	Export   template.URL
}

func chartURL(name, query string) template.URL {
	if query == "" {
		return template.URL("/charts/" + name)
	}
	return template.URL("/charts/" + name + "?" + query)
}

func (s *Server) dashboard(c *gin.Context) {
	v := s.render(c)
	q := encodeSelection(v.Selection)
	p := page{
		View:     v,
		Query:    q,
		TopPairs: analysis.TopPairs(v.Correlation, 3),
		Export:   template.URL("/export.xlsx"),
	}
	if q != "" {
		p.Export = template.URL("/export.xlsx?" + q)
	}
	p.Tabs = []tab{
		{ID: "overview", Title: "Overview", Panels: []panel{
			{"Fires by Region", chartURL("regions", q)},
			{"Districts with the Most Fires", chartURL("districts", q)},
			{"Fire Distribution", chartURL("treemap", q)},
		}},
		{ID: "causes", Title: "Causes", Panels: []panel{
			{"Fire Causes", chartURL("causes", q)},
			{"Fire Causes by Region", chartURL("causes-by-region", q)},
			{"Fire Causes in the Top Districts", chartURL("district-causes", q)},
		}},
		{ID: "risk", Title: "High-Risk Areas", Panels: []panel{
			{"Highest-Risk Sub-districts", chartURL("subdistricts", q)},
			{"Cause Breakdown", chartURL("highest-risk", q)},
			{"Correlation Between Variables", chartURL("correlation", q)},
		}},
	}
	c.HTML(http.StatusOK, "dashboard.html", p)
}

func (s *Server) apiView(c *gin.Context) {
	c.JSON(http.StatusOK, s.render(c))
}

func (s *Server) apiOptions(c *gin.Context) {
	res := filter.Apply(s.table, selectionFrom(c), s.cfg.Render.Filter)
	c.JSON(http.StatusOK, gin.H{
		"regions":      res.RegionOptions,
		"districts":    res.DistrictOptions,
		"subdistricts": res.SubdistrictOptions,
		"rows":         len(res.Rows),
	})
}

func (s *Server) chart(c *gin.Context) {
	name := c.Param("name")
	name = strings.TrimSuffix(strings.TrimSuffix(name, ".png"), ".svg")
	format, contentType := "png", "image/png"
	if c.Query("format") == "svg" || strings.HasSuffix(c.Param("name"), ".svg") {
		format, contentType = "svg", "image/svg+xml"
	}
	var buf bytes.Buffer
	err := charts.Render(&buf, s.render(c), name, s.cfg.ChartSize, format)
	if errors.Is(err, charts.ErrUnknownChart) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown chart %q", name), "charts": charts.Names()})
		return
	}
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render chart", "details": err.Error()})
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (s *Server) exportXLSX(c *gin.Context) {
	b, err := export.Bytes(s.render(c), export.Options{})
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build workbook", "details": err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="jakarta-fires.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, b)
}
