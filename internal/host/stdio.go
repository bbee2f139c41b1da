// Package host carries protocol messages over the native-messaging stdio
// transport and an optional localhost HTTP bridge.
package host

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/aomurata/wordbridge/internal/command"
)

// MaxMessageSize caps one inbound frame. Browsers limit messages to the
// native host to 1 MiB.
const MaxMessageSize = 1 << 20

// Stdio reads framed messages from the browser, dispatches them one at a
// time and writes framed responses back. Frames are a little-endian
// uint32 byte length followed by the JSON body.
type Stdio struct {
	in         io.Reader
	out        io.Writer
	dispatcher *command.Dispatcher
	logger     zerolog.Logger
}

// NewStdio creates a Stdio transport over in and out.
func NewStdio(in io.Reader, out io.Writer, dispatcher *command.Dispatcher, logger zerolog.Logger) *Stdio {
	return &Stdio{in: in, out: out, dispatcher: dispatcher, logger: logger}
}

// Run processes messages until the browser closes stdin or ctx is
// cancelled. Each message is fully answered before the next is read, so
// requests never interleave.
func (s *Stdio) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw, err := ReadFrame(s.in)
		if errors.Is(err, io.EOF) {
			s.logger.Info().Msg("stdin closed, shutting down")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		response := s.dispatcher.Handle(ctx, raw)
		payload, err := json.Marshal(response)
		if err != nil {
			return fmt.Errorf("marshal response: %w", err)
		}
		if err := WriteFrame(s.out, payload); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
}

// ReadFrame reads one length-prefixed message.
func ReadFrame(r io.Reader) ([]byte, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, err
	}
	size := binary.LittleEndian.Uint32(header[:])
	if size == 0 {
		return nil, errors.New("empty frame")
	}
	if size > MaxMessageSize {
		return nil, fmt.Errorf("frame of %d bytes exceeds the %d byte limit", size, MaxMessageSize)
	}
	body := make([]byte, size)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("short frame: %w", err)
	}
	return body, nil
}

// WriteFrame writes one length-prefixed message.
func WriteFrame(w io.Writer, payload []byte) error {
	var header [4]byte
	binary.LittleEndian.PutUint32(header[:], uint32(len(payload)))
	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}
