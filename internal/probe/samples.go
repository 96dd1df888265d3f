package probe

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultStatements covers each tracked emotion plus degenerate input.
var DefaultStatements = []string{
	"I am so happy today!",
	"I am really mad about this.",
	"I feel disgusted just hearing about this.",
	"I am so sad about this.",
	"I am really afraid that this will happen.",
	"I think I am having fun.",
	"!!!",
	"   ",
	"",
}

// LoadStatements reads one statement per line from path. Blank lines are
// kept so the server's handling of empty input is exercised too.
func LoadStatements(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open statements: %w", err)
	}
	defer func() { _ = f.Close() }()
	return readStatements(f)
}

func readStatements(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		out = append(out, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read statements: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no statements found")
	}
	return out, nil
}
