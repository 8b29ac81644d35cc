package web

import "embed"

// Static embeds the single-page dashboard.
//
//go:embed static
var Static embed.FS
