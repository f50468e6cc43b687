package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// readLine reads a line from the reader, trimming line endings. The last
// line of input is returned together with io.EOF.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), err
}

// promptYesNo asks a yes/no question. Empty input takes the default and
// unrecognized input asks again until the reader runs dry.
func promptYesNo(reader *bufio.Reader, out io.Writer, label string, defaultYes bool) (bool, error) {
	suffix := "y/N"
	if defaultYes {
		suffix = "Y/n"
	}
	for {
		fmt.Fprintf(out, "%s [%s]: ", label, suffix)
		line, err := readLine(reader)
		if err != nil && err != io.EOF {
			return false, err
		}
		switch strings.TrimSpace(strings.ToLower(line)) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if err == io.EOF {
			return false, fmt.Errorf("invalid response %q", strings.TrimSpace(line))
		}
		fmt.Fprintln(out, "Please answer yes or no.")
	}
}
