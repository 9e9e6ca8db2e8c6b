// Package web 内嵌页面模板
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates 解析全部页面模板，供 gin.Engine.SetHTMLTemplate 使用
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"clock": func(start, end string) string { return start + "〜" + end },
	}).ParseFS(templateFS, "templates/*.html")
}
