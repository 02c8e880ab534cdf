package models

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMalformedSnapshot is returned when a snapshot file is missing its
// delimiters or a required header field.
var ErrMalformedSnapshot = errors.New("malformed snapshot")

const (
	delimiter      = "---"
	fieldSeparator = ": "

	FieldTest    = "test"
	FieldSnap    = "snap"
	FieldHash    = "hash"
	FieldDate    = "date"
	FieldContent = "content"
)

// Format of a snapshot file:
//
//	---
//	test: <test name>
//	snap: <snap name>
//	hash: <sha256 hex>
//	date: <RFC 3339 timestamp>
//	---
//	<content>
//	---
//
// The writer always appends a newline to the content before the closing
// delimiter and the reader strips exactly one.
//
// Content is not escaped: a body line that is exactly --- ends the body when
// the content is read back.

func encodeSnapshot(w io.Writer, rec *Record) error {
	if rec.content == nil {
		return fmt.Errorf("%w: record %s/%s has no content to serialize", ErrInvalidRecord, rec.testName, rec.snapName)
	}

	bw := bufio.NewWriter(w)
	_, _ = bw.WriteString(delimiter + "\n")
	for _, kv := range [][2]string{
		{FieldTest, rec.testName},
		{FieldSnap, rec.snapName},
		{FieldHash, rec.hash},
		{FieldDate, rec.createdAt},
	} {
		_, _ = bw.WriteString(kv[0] + fieldSeparator + kv[1] + "\n")
	}
	_, _ = bw.WriteString(delimiter + "\n")
	_, _ = bw.WriteString(*rec.content)
	_, _ = bw.WriteString("\n" + delimiter + "\n")
	return bw.Flush()
}

// decodeSnapshot parses the header fields of a snapshot. When withContent is
// false it stops right after the header delimiter and never touches the body.
// When withContent is true the stored hash is dropped and the body is
// returned under FieldContent.
func decodeSnapshot(r io.Reader, withContent bool) (map[string]string, error) {
	br := bufio.NewReader(r)

	line, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if trimEOL(line) != delimiter {
		return nil, fmt.Errorf("%w: missing opening delimiter", ErrMalformedSnapshot)
	}

	fields := make(map[string]string)
	for {
		line, err = br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		if line == "" {
			return nil, fmt.Errorf("%w: missing header delimiter", ErrMalformedSnapshot)
		}
		text := trimEOL(line)
		if text == delimiter {
			break
		}
		key, value, ok := strings.Cut(text, fieldSeparator)
		if !ok {
			return nil, fmt.Errorf("%w: header line %q is not a key: value pair", ErrMalformedSnapshot, text)
		}
		fields[key] = value
	}

	if !withContent {
		return fields, nil
	}

	var body strings.Builder
	closed := false
	for {
		line, err = br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		if line != "" && trimEOL(line) == delimiter {
			closed = true
			break
		}
		body.WriteString(line)
		if err != nil {
			break
		}
	}
	if !closed {
		return nil, fmt.Errorf("%w: missing closing delimiter", ErrMalformedSnapshot)
	}

	delete(fields, FieldHash)
	fields[FieldContent] = strings.TrimSuffix(body.String(), "\n")
	return fields, nil
}

func trimEOL(line string) string {
	return strings.TrimRight(line, "\r\n")
}
