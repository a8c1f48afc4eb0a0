package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

func prompt(in *bufio.Reader, q string) (string, error) {
	fmt.Print(q)
	line, err := in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ask poses a yes/no question. An empty answer or the default letter
// keeps the default; only y and n are accepted otherwise.
func ask(in *bufio.Reader, q string, def bool) (bool, error) {
	defAnswer, defHint := "n", "[y/N]"
	if def {
		defAnswer, defHint = "y", "[Y/n]"
	}
	answer, err := prompt(in, fmt.Sprintf("%s %s >> ", q, defHint))
	if err != nil {
		return def, err
	}
	answer = strings.ToLower(answer)
	if answer == "" || answer == defAnswer {
		return def, nil
	}
	if answer != "y" && answer != "n" {
		return def, fmt.Errorf("invalid answer %q", answer)
	}
	return !def, nil
}
