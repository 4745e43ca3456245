// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxLineSize bounds a single transcript line.
const maxLineSize = 1 << 20

// Cursor walks a transcript one line at a time. Line returns the current
// line without consuming it; Advance moves to the next one. The trailing
// line terminator is stripped.
type Cursor struct {
	sc   *bufio.Scanner
	line string
	num  int
	done bool
	err  error
}

// NewCursor returns a cursor positioned on the first line of r. For empty
// input the cursor starts out Done.
func NewCursor(r io.Reader) *Cursor {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	c := &Cursor{sc: sc}
	c.Advance()
	return c
}

// Line returns the current line.
func (c *Cursor) Line() string {
	return c.line
}

// Number returns the 1-based number of the current line.
func (c *Cursor) Number() int {
	return c.num
}

// Done reports whether the input is exhausted.
func (c *Cursor) Done() bool {
	return c.done
}

// Advance moves to the next line and reports whether one was available.
func (c *Cursor) Advance() bool {
	if c.done {
		return false
	}
	if !c.sc.Scan() {
		c.done = true
		c.line = ""
		if err := c.sc.Err(); err != nil {
			c.err = fmt.Errorf("reading line %d: %w", c.num+1, err)
		}
		return false
	}
	c.num++
	c.line = strings.TrimRight(c.sc.Text(), "\r")
	return true
}

// Err returns the first read error encountered, if any.
func (c *Cursor) Err() error {
	return c.err
}
