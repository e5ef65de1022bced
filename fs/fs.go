// Package appfs embeds the static assets compiled into the binary.
package appfs

import "embed"

//go:embed migrations
var FS embed.FS
