// Package export renders recorded frames as standalone SVG documents.
package export
