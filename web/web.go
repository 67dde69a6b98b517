// Package web embeds the single-page trip form.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS
