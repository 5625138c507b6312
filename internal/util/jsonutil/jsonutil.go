package jsonutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// MarshalNoEscape encodes v into JSON without escaping <, >, & into \u003c, etc.
func MarshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	// Remove trailing newline from json.Encoder.Encode
	out := bytes.TrimRight(buf.Bytes(), "\n")
	return out, nil
}

// IndentNoEscape re-renders a JSON document with one entry per line. Unlike
// json.MarshalIndent on a decoded map it keeps object key order, number
// literals and non-ASCII text exactly as written in raw.
func IndentNoEscape(raw []byte, indent string) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	w := &indentWriter{dec: dec, indent: indent}
	if err := w.value(0); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("jsonutil: trailing data after document")
	}
	return w.buf.Bytes(), nil
}

type indentWriter struct {
	dec    *json.Decoder
	buf    bytes.Buffer
	indent string
}

func (w *indentWriter) value(depth int) error {
	tok, err := w.dec.Token()
	if err != nil {
		return err
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return w.container(depth, '}', true)
		case '[':
			return w.container(depth, ']', false)
		default:
			return fmt.Errorf("jsonutil: unexpected delimiter %q", rune(v))
		}
	case string:
		return w.str(v)
	case json.Number:
		w.buf.WriteString(v.String())
	case bool:
		w.buf.WriteString(strconv.FormatBool(v))
	case nil:
		w.buf.WriteString("null")
	default:
		return fmt.Errorf("jsonutil: unexpected token %T", tok)
	}
	return nil
}

func (w *indentWriter) container(depth int, closing byte, object bool) error {
	open := byte('[')
	if object {
		open = '{'
	}
	w.buf.WriteByte(open)
	n := 0
	for w.dec.More() {
		if n > 0 {
			w.buf.WriteByte(',')
		}
		w.newline(depth + 1)
		if object {
			tok, err := w.dec.Token()
			if err != nil {
				return err
			}
			key, ok := tok.(string)
			if !ok {
				return fmt.Errorf("jsonutil: object key is %T", tok)
			}
			if err := w.str(key); err != nil {
				return err
			}
			w.buf.WriteString(": ")
		}
		if err := w.value(depth + 1); err != nil {
			return err
		}
		n++
	}
	if _, err := w.dec.Token(); err != nil {
		return err
	}
	if n > 0 {
		w.newline(depth)
	}
	w.buf.WriteByte(closing)
	return nil
}

func (w *indentWriter) newline(depth int) {
	w.buf.WriteByte('\n')
	w.buf.WriteString(strings.Repeat(w.indent, depth))
}

func (w *indentWriter) str(s string) error {
	out, err := MarshalNoEscape(s)
	if err != nil {
		return err
	}
	w.buf.Write(out)
	return nil
}
