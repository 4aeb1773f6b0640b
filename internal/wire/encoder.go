package wire

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// Encoder serializes Values into the five reply grammars of the protocol.
// Ported from the teacher's resp.Encoder, adapted to the non-standard bulk
// and array framing this protocol requires.
type Encoder struct {
	w *bufio.Writer
}

// NewEncoder wraps w in a buffered writer.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

// Write serializes v and flushes it to the underlying stream.
func (e *Encoder) Write(v Value) error {
	if err := e.writeUnflushed(v); err != nil {
		return err
	}
	return e.w.Flush()
}

// WriteNoFlush serializes v without flushing, for pipelined batches where
// the caller flushes once after draining the input buffer.
func (e *Encoder) WriteNoFlush(v Value) error {
	return e.writeUnflushed(v)
}

func (e *Encoder) writeUnflushed(v Value) error {
	switch v.Kind {
	case KindStatus:
		return e.writeLine('+', v.Str)
	case KindError:
		return e.writeLine('-', v.Str)
	case KindInteger:
		return e.writeIntLine(':', v.Int)
	case KindBulk:
		if v.Null {
			_, err := e.w.WriteString("$-1\r\n")
			return err
		}
		return e.writeLine('+', v.Str)
	case KindArray:
		if err := e.writeIntLine('*', int64(len(v.Items))); err != nil {
			return err
		}
		for _, item := range v.Items {
			if err := e.writeLine('+', []byte(item)); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("wire: unknown value kind %q", byte(v.Kind))
	}
}

// Flush pushes any buffered bytes to the underlying writer.
func (e *Encoder) Flush() error {
	return e.w.Flush()
}

func (e *Encoder) writeLine(prefix byte, b []byte) error {
	if err := e.w.WriteByte(prefix); err != nil {
		return err
	}
	if _, err := e.w.Write(b); err != nil {
		return err
	}
	_, err := e.w.WriteString("\r\n")
	return err
}

func (e *Encoder) writeIntLine(prefix byte, n int64) error {
	if err := e.w.WriteByte(prefix); err != nil {
		return err
	}
	buf := e.w.AvailableBuffer()
	buf = strconv.AppendInt(buf, n, 10)
	if _, err := e.w.Write(buf); err != nil {
		return err
	}
	_, err := e.w.WriteString("\r\n")
	return err
}

// FormatScore renders a float64 score as the protocol's fixed six-decimal
// ASCII form, e.g. "1.000000", "-3.500000". Negative zero prints as
// "0.000000".
func FormatScore(score float64) string {
	if score == 0 {
		score = 0 // collapses -0 to +0 before formatting
	}
	return strconv.FormatFloat(score, 'f', 6, 64)
}
