// Package buffer implements the pure, grapheme-accurate document model that
// backs the editor shell.
//
// Coordinates are 0-based (Row, GraphemeCol) in grapheme clusters. A row is
// one block in annotation terms. Ranges are half-open: [Start, End).
package buffer
