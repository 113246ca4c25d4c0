package serial

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCRLFWrite(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"no newline", "byte read 65", "byte read 65"},
		{"trailing newline", "byte read 65\n", "byte read 65\r\n"},
		{"only newline", "\n", "\r\n"},
		{"several lines", "a\nb\n\nc", "a\r\nb\r\n\r\nc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			n, err := NewCRLF(&buf).Write([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, len(tt.in), n)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

type failAfter struct {
	n int
}

func (f *failAfter) Write(p []byte) (int, error) {
	if f.n <= 0 {
		return 0, errors.New("tx fifo stuck")
	}
	f.n--
	return len(p), nil
}

func TestCRLFWriteError(t *testing.T) {
	// First write ("ab") succeeds, the CRLF write fails.
	n, err := NewCRLF(&failAfter{n: 1}).Write([]byte("ab\ncd"))
	require.Error(t, err)
	assert.Equal(t, 2, n)
}

type fakeUART struct {
	rx  []byte
	out bytes.Buffer
}

func (u *fakeUART) Write(p []byte) (int, error) { return u.out.Write(p) }

func (u *fakeUART) ReadByte() (byte, error) {
	if len(u.rx) == 0 {
		return 0, io.EOF
	}
	b := u.rx[0]
	u.rx = u.rx[1:]
	return b, nil
}

func (u *fakeUART) Buffered() int { return len(u.rx) }

func TestPort(t *testing.T) {
	u := &fakeUART{rx: []byte{0x41}}
	p := NewPort(u)

	assert.Equal(t, 1, p.Buffered())
	b, err := p.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x41), b)
	assert.Equal(t, 0, p.Buffered())

	_, err = p.Write([]byte("hi\n"))
	require.NoError(t, err)
	assert.Equal(t, "hi\r\n", u.out.String())
}
