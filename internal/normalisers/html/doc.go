// Package html provides a Normaliser implementation for HTML documents.
// It strips tags, scripts and styles, decodes entities and keeps block
// elements as separate paragraphs.
package html
