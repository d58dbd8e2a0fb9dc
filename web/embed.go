// Package web provides the embedded drawing UI assets for pixelwall.
//
// This package uses Go's embed directive to include the drawing page at
// compile time, enabling single-binary deployment without external asset
// files.
//
// The embedded assets are served by the server package at the root path
// ("/"). Users of the pixelwall library should not need to interact with
// this package directly.
package web

import "embed"

// Assets is an embedded filesystem containing the drawing UI.
//
// The filesystem structure is:
//
//	assets/
//	  index.html    - Drawing page with inline CSS and JavaScript
//
//go:embed assets/*
var Assets embed.FS
