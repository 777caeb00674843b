package s2v

import (
	"bufio"
	"io"
)

type Writer struct {
	inner *bufio.Writer
	Comma byte
}

func NewWriter(w io.Writer) *Writer {
	ws := Writer{
		inner: bufio.NewWriter(w),
		Comma: semi,
	}
	return &ws
}

func (w *Writer) WriteAll(data [][]string) error {
	for _, d := range data {
		if err := w.Write(d); err != nil {
			return err
		}
	}
	return w.inner.Flush()
}

func (w *Writer) Write(line []string) error {
	var err error
	for i, str := range line {
		if i > 0 {
			if err = w.inner.WriteByte(w.Comma); err != nil {
				return err
			}
		}
		if _, err = w.inner.WriteString(str); err != nil {
			return err
		}
	}
	return w.inner.WriteByte(nl)
}
