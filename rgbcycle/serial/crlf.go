// Package serial adapts a UART to the line discipline the echo loop expects.
package serial

import (
	"bytes"
	"io"
)

// CRLF translates every '\n' written through it into "\r\n".
type CRLF struct {
	w io.Writer
}

// NewCRLF wraps w.
func NewCRLF(w io.Writer) *CRLF {
	return &CRLF{w: w}
}

// Write returns the number of bytes of p consumed, not the number written to
// the underlying writer.
func (c *CRLF) Write(p []byte) (int, error) {
	written := 0
	for len(p) > 0 {
		i := bytes.IndexByte(p, '\n')
		if i < 0 {
			n, err := c.w.Write(p)
			return written + n, err
		}
		if i > 0 {
			n, err := c.w.Write(p[:i])
			written += n
			if err != nil {
				return written, err
			}
		}
		if _, err := c.w.Write(crlf); err != nil {
			return written, err
		}
		written++
		p = p[i+1:]
	}
	return written, nil
}

var crlf = []byte{'\r', '\n'}

// UART is the subset of *machine.UART used by Port.
type UART interface {
	io.Writer
	io.ByteReader
	Buffered() int
}

// Port reads straight from the UART and writes through a CRLF translator.
type Port struct {
	uart UART
	out  *CRLF
}

// NewPort wraps uart.
func NewPort(uart UART) *Port {
	return &Port{uart: uart, out: NewCRLF(uart)}
}

func (p *Port) Write(b []byte) (int, error) { return p.out.Write(b) }

func (p *Port) ReadByte() (byte, error) { return p.uart.ReadByte() }

// Buffered returns the number of received bytes waiting to be read.
func (p *Port) Buffered() int { return p.uart.Buffered() }
