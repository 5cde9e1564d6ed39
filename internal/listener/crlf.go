package listener

import (
	"bytes"
	"io"
)

// lineConn normalises line endings for terminal clients. Input lines end
// in "\n" whatever the client sent ("\r\n" from telnet, a bare "\r" from an
// ssh pty). Output "\n" becomes "\r\n".
type lineConn struct {
	rw io.ReadWriter
	// afterCR is set when the last byte read was a '\r' already turned
	// into '\n', so a '\n' that follows in the next read is dropped.
	afterCR bool
}

func newCRLFReadWriter(rw io.ReadWriter) io.ReadWriter {
	return &lineConn{rw: rw}
}

func (c *lineConn) Read(p []byte) (int, error) {
	for {
		n, err := c.rw.Read(p)
		out := 0
		for _, b := range p[:n] {
			switch {
			case b == '\n' && c.afterCR:
				c.afterCR = false
				continue
			case b == '\r':
				c.afterCR = true
				b = '\n'
			default:
				c.afterCR = false
			}
			p[out] = b
			out++
		}
		// A read holding only a dropped '\n' must not look like EOF.
		if out > 0 || err != nil || n == 0 {
			return out, err
		}
	}
}

func (c *lineConn) Write(p []byte) (int, error) {
	if _, err := c.rw.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	// Report the caller's length, not the expanded one.
	return len(p), nil
}
