// Package present renders scraped entities for a human operator. Fields
// the schema knows about are printed in a fixed order; whatever else the
// server sent survives into an EXTRA DATA section so nothing is ever
// silently dropped.
package present

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// WriteScene prints a scraped scene report. It returns the raw image
// payload (a data: uri) when one was present, so the caller can offer a
// preview; the payload itself is never printed inline.
func WriteScene(w io.Writer, fields map[string]any) string {
	remaining := cloneFields(fields)

	title := take(remaining, "title")
	date := take(remaining, "date")
	details := take(remaining, "details")
	url := take(remaining, "url")
	image := take(remaining, "image")
	studio := take(remaining, "studio")
	tags := take(remaining, "tags")
	performers := take(remaining, "performers")
	movies := take(remaining, "movies")

	fmt.Fprintf(w, "Title: %s\n", quote(title))
	fmt.Fprintf(w, "Date: %s\n", quote(date))
	fmt.Fprintf(w, "Image: %s\n", presence(image))
	fmt.Fprintf(w, "URL: %s\n", quote(url))
	fmt.Fprintf(w, "Details: %s\n", detailsBlock(details))
	fmt.Fprintf(w, "Studio: %s\n", namedEntity(studio))
	fmt.Fprintf(w, "Tags (%d):\n  %s\n", listLen(tags), tagList(tags))
	fmt.Fprintf(w, "Performers (%d):\n  %s\n", listLen(performers), entityList(performers))
	fmt.Fprintf(w, "Movies (%d):\n  %s\n", listLen(movies), entityList(movies))

	writeExtra(w, remaining)

	payload, _ := image.(string)
	return payload
}

// WriteGallery prints a scraped gallery report. Galleries carry no image
// or movie fields.
func WriteGallery(w io.Writer, fields map[string]any) {
	remaining := cloneFields(fields)

	title := take(remaining, "title")
	date := take(remaining, "date")
	details := take(remaining, "details")
	url := take(remaining, "url")
	studio := take(remaining, "studio")
	tags := take(remaining, "tags")
	performers := take(remaining, "performers")

	fmt.Fprintf(w, "Title: %s\n", quote(title))
	fmt.Fprintf(w, "Date: %s\n", quote(date))
	fmt.Fprintf(w, "URL: %s\n", quote(url))
	fmt.Fprintf(w, "Details: %s\n", detailsBlock(details))
	fmt.Fprintf(w, "Studio: %s\n", namedEntity(studio))
	fmt.Fprintf(w, "Tags (%d):\n  %s\n", listLen(tags), tagList(tags))
	fmt.Fprintf(w, "Performers (%d):\n  %s\n", listLen(performers), entityList(performers))

	writeExtra(w, remaining)
}

func cloneFields(fields map[string]any) map[string]any {
	remaining := make(map[string]any, len(fields))
	for k, v := range fields {
		remaining[k] = v
	}
	return remaining
}

func take(fields map[string]any, name string) any {
	value := fields[name]
	delete(fields, name)
	return value
}

// quote renders a scalar the way the operator expects: single-quoted for
// strings, the literal None for null. Null is meaningful here, the server
// returns it for fields it scraped but found no value for.
func quote(v any) string {
	if v == nil {
		return "None"
	}
	if s, ok := v.(string); ok {
		escaped := strings.ReplaceAll(s, `\`, `\\`)
		escaped = strings.ReplaceAll(escaped, `'`, `\'`)
		return "'" + escaped + "'"
	}
	return fmt.Sprintf("%v", v)
}

func presence(v any) string {
	if s, ok := v.(string); ok && s != "" {
		return "Yes"
	}
	return "No"
}

// detailsBlock re-indents multi-line detail text inside a bracketed block
// so it reads offset from the label line.
func detailsBlock(v any) string {
	s, ok := v.(string)
	if !ok {
		return "None"
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return "{\n" + strings.Join(lines, "\n") + "\n}"
}

func namedEntity(v any) string {
	entity, ok := v.(map[string]any)
	if !ok {
		return "None"
	}
	return "(" + quote(entity["name"]) + ", " + quote(entity["url"]) + ")"
}

const tagsPerLine = 7

// tagList renders tag names comma-joined in groups of seven per line so
// long lists stay scannable.
func tagList(v any) string {
	items, ok := v.([]any)
	if !ok {
		return "None"
	}
	names := make([]string, len(items))
	for i, item := range items {
		entity, _ := item.(map[string]any)
		names[i] = quote(entity["name"])
	}

	var lines []string
	for _, group := range chunk(names, tagsPerLine) {
		lines = append(lines, strings.Join(group, ", "))
	}
	return strings.Join(lines, "\n  ")
}

// entityList renders one (name, url) pair per line.
func entityList(v any) string {
	items, ok := v.([]any)
	if !ok {
		return "None"
	}
	pairs := make([]string, len(items))
	for i, item := range items {
		pairs[i] = namedEntity(item)
	}
	return strings.Join(pairs, "\n  ")
}

func listLen(v any) int {
	items, ok := v.([]any)
	if !ok {
		return 0
	}
	return len(items)
}

func chunk[T any](items []T, size int) [][]T {
	var out [][]T
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		out = append(out, items[start:end])
	}
	return out
}

func writeExtra(w io.Writer, remaining map[string]any) {
	if len(remaining) == 0 {
		return
	}
	fmt.Fprintf(w, "\nEXTRA DATA:\n")
	dump, err := json.MarshalIndent(remaining, "", "  ")
	if err != nil {
		fmt.Fprintf(w, "%v\n", remaining)
		return
	}
	fmt.Fprintf(w, "%s\n", dump)
}
