// Package web holds the server-rendered landing and signup pages.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates parses every page template.
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// Static serves the page assets.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err) // embedded path is fixed at compile time
	}
	return http.FS(sub)
}

// Feature is one card on the landing page.
type Feature struct {
	Title       string
	Description string
}

// LandingFeatures lists what the product offers.
var LandingFeatures = []Feature{
	{Title: "Upload your CV", Description: "PDF, Word or image files up to 10MB. We tailor the interview to your experience."},
	{Title: "Paste the job description", Description: "Questions follow the role you are actually applying for."},
	{Title: "Practice out loud", Description: "Answer technical, behavioral and experience questions at your own pace."},
	{Title: "Get feedback", Description: "Review every answer once the session is complete."},
}
