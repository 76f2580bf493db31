package source

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"
)

var ErrEmpty = errors.New("input contains no equations")

// LineError reports a line that cannot be an equation because it has no
// "=". Line is the 1-based line number in the raw input, blank lines included.
type LineError struct {
	Line int
	Text string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d invalid: %q is missing '='", e.Line, e.Text)
}

type Line struct {
	Number int
	Text   string
}

// Document is checked equation text. Source is the input as read; Lines
// holds its non-blank lines, trimmed.
type Document struct {
	Name   string
	Source []byte
	Lines  []Line
}

// Prepare drops blank lines and checks that every remaining line contains
// "=".
func Prepare(data []byte) (*Document, error) {
	doc := &Document{Source: data}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	number := 0
	for scanner.Scan() {
		number++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if !strings.Contains(text, "=") {
			return nil, &LineError{Line: number, Text: text}
		}
		doc.Lines = append(doc.Lines, Line{Number: number, Text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(doc.Lines) == 0 {
		return nil, ErrEmpty
	}
	return doc, nil
}

// Bytes joins the trimmed non-blank lines with newlines.
func (d *Document) Bytes() []byte {
	texts := make([]string, len(d.Lines))
	for i, l := range d.Lines {
		texts[i] = l.Text
	}
	return []byte(strings.Join(texts, "\n"))
}

// DisplayName is the name to show in messages.
func (d *Document) DisplayName() string {
	return DisplayName(d.Name)
}
