package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// confirmYes asks a yes/no question and returns the typed result. Used
// for irreversible-but-local actions like replacing a built routine with
// a template.
func confirmYes(in *bufio.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	answer, err := readLine(in)
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}

// confirmTyped guards destructive deletes that affect a second party:
// the caller must retype the identifying string exactly before the
// delete call is issued.
func confirmTyped(in *bufio.Reader, out io.Writer, what, expected string) (bool, error) {
	warnStyle.Fprintf(out, "This permanently deletes %s and cannot be undone.\n", what)
	fmt.Fprintf(out, "Type %q to confirm: ", expected)
	answer, err := readLine(in)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(answer) == expected, nil
}

// readLine reads one trimmed line. A final unterminated line is still
// returned; only a truly empty read surfaces the error.
func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
