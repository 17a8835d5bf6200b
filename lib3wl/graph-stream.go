package lib3wl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/2x3systems/go3wl/go3wl"
	"github.com/pkg/errors"
)

// GraphStream delivers parsed graphs in input order.
// Err is only valid once Outlet has been closed.
type GraphStream struct {
	Outlet chan *Graph
	err    error
}

// ReadGraphs parses one graph expression per line of in.
// Blank lines and lines starting with '#' are skipped.
func ReadGraphs(in io.Reader) *GraphStream {
	stream := &GraphStream{
		Outlet: make(chan *Graph, 1),
	}

	go func() {
		defer close(stream.Outlet)

		scanner := bufio.NewScanner(in)
		lineNum := 0
		for scanner.Scan() {
			lineNum++
			line := strings.TrimSpace(scanner.Text())
			if len(line) == 0 || line[0] == '#' {
				continue
			}
			X, err := NewGraphFromString(line)
			if err != nil {
				stream.err = errors.Wrapf(err, "line %d", lineNum)
				return
			}
			stream.Outlet <- X
		}
		stream.err = scanner.Err()
	}()

	return stream
}

// Err returns the first read or parse error, if any.
func (stream *GraphStream) Err() error {
	return stream.err
}

// Print echoes each graph passing through as "<label>,<seq>,<expr>".
func (stream *GraphStream) Print(out io.Writer, opts go3wl.PrintOpts) *GraphStream {
	next := &GraphStream{
		Outlet: make(chan *Graph, 1),
	}

	go func() {
		buf := strings.Builder{}
		buf.Grow(256)

		count := 0
		for X := range stream.Outlet {
			buf.WriteString(opts.Label)
			buf.WriteByte(',')

			count++
			fmt.Fprintf(&buf, "%06d,", count)
			X.WriteAsString(&buf)
			buf.WriteByte('\n')
			out.Write([]byte(buf.String()))
			buf.Reset()
			next.Outlet <- X
		}
		next.err = stream.err
		close(next.Outlet)
	}()

	return next
}

// PullAll drains the stream, returning its graphs or the error that stopped it.
func (stream *GraphStream) PullAll() ([]go3wl.Graph, error) {
	var db []go3wl.Graph
	for X := range stream.Outlet {
		db = append(db, X)
	}
	if stream.err != nil {
		return nil, stream.err
	}
	return db, nil
}
