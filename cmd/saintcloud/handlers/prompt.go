package handlers

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ask writes question to out and returns the next line read from in,
// without its line terminator. End of input counts as an empty answer.
func ask(in io.Reader, out io.Writer, question string) (string, error) {
	fmt.Fprint(out, question)
	if in == nil {
		return "", nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// confirmed reports whether answer approves the deletion. Only a literal
// "y" or "Y" does.
func confirmed(answer string) bool {
	return answer == "y" || answer == "Y"
}
