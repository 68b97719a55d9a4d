package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// IO is a line-oriented prompt over any reader/writer pair: a terminal,
// or a chat channel that delivers one message per line.
type IO struct {
	in  *bufio.Reader
	out io.Writer
}

func New(r io.Reader, w io.Writer) *IO {
	return &IO{in: bufio.NewReader(r), out: w}
}

func (c *IO) Print(line string) {
	fmt.Fprintln(c.out, line)
}

// ReadLine shows prompt and returns the next trimmed line. A final line
// without a newline is still returned; io.EOF comes after it.
func (c *IO) ReadLine(prompt string) (string, error) {
	fmt.Fprintln(c.out, prompt)
	fmt.Fprint(c.out, "> ")
	line, err := c.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *IO) ReadNonEmptyLine(prompt string) (string, error) {
	for {
		line, err := c.ReadLine(prompt)
		if err != nil {
			return "", err
		}
		if line != "" {
			return line, nil
		}
		c.Print("Error: Input cannot be empty. Please try again.")
	}
}

func (c *IO) ReadIntInRange(prompt string, min, max int) (int, error) {
	for {
		line, err := c.ReadLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			c.Print("Invalid input. Please enter a valid number.")
			continue
		}
		if n < min || n > max {
			c.Print(fmt.Sprintf("Please enter a number between %d and %d.", min, max))
			continue
		}
		return n, nil
	}
}

// SelectOne lists options as a numbered menu and returns the chosen one.
func (c *IO) SelectOne(prompt string, options []string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("select %q: no options", prompt)
	}
	c.Print(prompt)
	for i, opt := range options {
		c.Print(fmt.Sprintf("  %d) %s", i+1, opt))
	}
	n, err := c.ReadIntInRange(fmt.Sprintf("  Enter your choice (1-%d):", len(options)), 1, len(options))
	if err != nil {
		return "", err
	}
	return options[n-1], nil
}
