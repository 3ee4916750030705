// Package frontmatter splits the metadata header off a Markdown document.
//
// The header is a block of "key: value" lines enclosed by "---" delimiters:
//
//	---
//	title: Meu Título
//	date: 2025-09-01
//	tags: estudo, enem
//	---
//	Conteúdo em Markdown...
//
// Parsing never fails. A document without a complete header is returned as
// body only, and header lines without a colon are skipped.
package frontmatter

import "strings"

// Delimiter opens and closes the metadata block.
const Delimiter = "---"

// Document is a Markdown source split into metadata and body.
type Document struct {
	Meta    map[string]string
	Body    string
	HasMeta bool
}

// Parse splits raw into its metadata and body.
func Parse(raw string) Document {
	block, body, ok := Split(raw)
	if !ok {
		return Document{Meta: map[string]string{}, Body: raw}
	}
	return Document{Meta: ParseBlock(block), Body: body, HasMeta: true}
}

// Split returns the metadata block and the body of raw. When raw does not
// start with a delimiter, or the closing delimiter is missing, ok is false
// and body is the whole input.
func Split(raw string) (block, body string, ok bool) {
	if !strings.HasPrefix(strings.TrimSpace(raw), Delimiter) {
		return "", raw, false
	}

	parts := strings.SplitN(raw, Delimiter, 3)
	if len(parts) != 3 {
		return "", raw, false
	}
	return parts[1], parts[2], true
}

// ParseBlock reads one "key: value" pair per line. Keys are lower-cased,
// keys and values are trimmed and the last occurrence of a key wins.
func ParseBlock(block string) map[string]string {
	meta := make(map[string]string)
	for _, line := range strings.Split(strings.TrimSpace(block), "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		meta[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}
	return meta
}
