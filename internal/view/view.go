// Package view holds the templ components for server-rendered pages and the
// HTML fragments streamed to the browser over SSE.
package view

//go:generate templ generate
