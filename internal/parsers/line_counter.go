package parsers

import (
	"bytes"
	"io"
)

const countBufferSize = 1024 * 1024

// CountLines counts newline characters in r. A final line without a trailing newline
// is not counted, which is good enough for progress estimation.
func CountLines(r io.Reader) (int, error) {
	buf := make([]byte, countBufferSize)
	lines := 0
	for {
		n, err := r.Read(buf)
		lines += bytes.Count(buf[:n], []byte{'\n'})
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return lines, err
		}
	}
}
