package s2v

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

const (
	semi   = ';'
	comma  = ','
	lparen = '('
	rparen = ')'
	nl     = '\n'
	cr     = '\r'
)

// Reader splits lines into fields. Fields are never quoted: a separator
// always ends a field.
type Reader struct {
	inner *bufio.Reader
	Comma byte

	atEOF bool
	line  int
}

func NewReader(r io.Reader) *Reader {
	rs := Reader{
		inner: bufio.NewReader(r),
		Comma: semi,
	}
	return &rs
}

func (r *Reader) done() bool {
	return r.atEOF
}

func (r *Reader) ReadAll() ([][]string, error) {
	var all [][]string
	for {
		rs, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		all = append(all, rs)
	}
	return all, nil
}

func (r *Reader) Read() ([]string, error) {
	if r.done() {
		return nil, io.EOF
	}
	line, err := r.inner.ReadBytes(nl)
	if len(line) == 0 && errors.Is(err, io.EOF) {
		r.atEOF = true
		return nil, err
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if errors.Is(err, io.EOF) {
		r.atEOF = true
	}
	r.line++

	line = bytes.TrimSuffix(line, []byte{nl})
	if n := len(line); n > 0 && line[n-1] == cr {
		line = line[:n-1]
	}
	if bytes.IndexByte(line, cr) >= 0 {
		return nil, fmt.Errorf("line %d: carriage return only allowed before newline", r.line)
	}
	var res []string
	for _, f := range bytes.Split(line, []byte{r.Comma}) {
		res = append(res, string(f))
	}
	return res, nil
}
