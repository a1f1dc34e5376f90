// Package normalisers turns uploaded files into document inputs.
// Each format normaliser extracts text and a title from a specific MIME type.
// The Registry picks the highest-priority normaliser for a document and
// applies caller-supplied metadata such as title or version on top.
package normalisers
