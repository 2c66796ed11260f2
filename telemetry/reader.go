package telemetry

import (
	"bufio"
	"io"
)

// Reader pulls samples out of a byte stream, skipping garbage until a frame
// with a valid CRC is found. Joining the stream mid-frame loses at most the
// partial frame.
type Reader struct {
	br *bufio.Reader
}

func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReaderSize(r, 4*FrameSize)}
}

// Next blocks until the next valid frame and returns its sample. It only
// returns an error when the underlying stream does.
func (r *Reader) Next() (Sample, error) {
	var frame [FrameSize]byte
	for {
		b, err := r.br.ReadByte()
		if err != nil {
			return Sample{}, err
		}
		if b != syncByte {
			continue
		}

		rest, err := r.br.Peek(FrameSize - 1)
		if err != nil {
			return Sample{}, err
		}
		frame[0] = syncByte
		copy(frame[1:], rest)

		s, err := Decode(frame[:])
		if err != nil {
			// Likely a sync byte inside another frame's payload. Keep
			// scanning from the next byte.
			continue
		}
		if _, err := r.br.Discard(FrameSize - 1); err != nil {
			return Sample{}, err
		}
		return s, nil
	}
}
