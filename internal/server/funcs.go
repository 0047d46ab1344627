package server

import (
	"fmt"
	"html/template"
	"strings"
)

var funcs = template.FuncMap{
	"has": func(list []string, v string) bool {
		for _, x := range list {
			if x == v {
				return true
			}
		}
		return false
	},
	"pct": func(p float64, ok bool) string {
		if !ok {
			return "n/a"
		}
		return fmt.Sprintf("%.1f%%", p)
	},
	"f1":   func(x float64) string { return fmt.Sprintf("%.1f", x) },
	"f2":   func(x float64) string { return fmt.Sprintf("%.2f", x) },
	"orAll": func(list []string) string {
		if len(list) == 0 {
			return "All"
		}
		return strings.Join(list, ", ")
	},
}
