package commands

import (
	"fmt"
	"os"
	"strings"
)

// collectURLs parses a newline-separated batch, either given inline or
// as a list file. Blank lines and surrounding whitespace are dropped.
func collectURLs(arg string, fromFile bool) ([]string, error) {
	text := arg
	if fromFile {
		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, fmt.Errorf("unable to read file %s: %w", arg, err)
		}
		text = string(data)
	}

	var urls []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			urls = append(urls, line)
		}
	}
	return urls, nil
}
