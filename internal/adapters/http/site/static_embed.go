package site

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed static/*
var staticFS embed.FS

//go:embed templates/*.html
var templateFS embed.FS

// assets is static/ re-rooted so files are addressed by bare name.
var assets fs.FS = func() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return staticFS
	}
	return sub
}()

// avatarName is the placeholder image inside assets.
const avatarName = "avatar.png"

// templates holds the board page and the cards fragment.
var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))
