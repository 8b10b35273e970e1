package devprint

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
)

// MaxLineSize is the default limit for a line to be rendered. Longer lines are
// printed unparsed.
const MaxLineSize = 16 << 20

const readBufferSize = 64 << 10

// ErrTransport marks failures reading input or writing output.
var ErrTransport = errors.New("devprint: transport failure")

// Run renders every line of r to w until r is exhausted. Trailing carriage returns
// are stripped from input lines. A line that fails to render is reported to the
// diagnostics logger and skipped, and a line over the size limit is copied through
// unparsed; either way the stream continues with the next line.
//
// Output is flushed after every line. Run returns a wrapped ErrTransport when
// reading or writing fails, or ctx.Err() when ctx is done between lines.
func (p *Printer) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	reader := bufio.NewReaderSize(r, min(readBufferSize, p.maxLine))
	out := bufio.NewWriter(w)
	var line []byte

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		chunk, err := reader.ReadSlice('\n')
		line = append(line, chunk...)

		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			if len(line) < p.maxLine {
				continue
			}
			if err := p.passOversized(reader, line, out); err != nil {
				return err
			}
			line = line[:0]
			continue
		case errors.Is(err, io.EOF):
			if len(line) == 0 {
				return nil
			}
			return p.emitLine(trimEOL(line), out)
		case err != nil:
			return p.transportFailure("read", err)
		}

		if err := p.emitLine(trimEOL(line), out); err != nil {
			return err
		}
		line = line[:0]
	}
}

func (p *Printer) emitLine(line []byte, out *bufio.Writer) error {
	var (
		rendered string
		ok       bool
	)
	if len(line) > p.maxLine {
		p.diag.Warn().Int("size", len(line)).Int("limit", p.maxLine).Msg("line too long, printed unparsed")
		rendered, ok = p.passThrough(line), true
	} else {
		rendered, ok = p.renderSafe(line)
	}
	if !ok {
		return nil
	}

	if _, err := out.WriteString(rendered); err != nil {
		return p.transportFailure("write", err)
	}
	if err := out.Flush(); err != nil {
		return p.transportFailure("flush", err)
	}
	return nil
}

// passOversized copies a line that outgrew the limit to out, starting with the
// part already read and streaming the rest without buffering it.
func (p *Printer) passOversized(reader *bufio.Reader, head []byte, out *bufio.Writer) error {
	p.diag.Warn().Int("limit", p.maxLine).Msg("line too long, printed unparsed")
	if _, err := out.Write(head); err != nil {
		return p.transportFailure("write", err)
	}

	for {
		chunk, err := reader.ReadSlice('\n')
		if errors.Is(err, bufio.ErrBufferFull) {
			if _, werr := out.Write(chunk); werr != nil {
				return p.transportFailure("write", werr)
			}
			continue
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return p.transportFailure("read", err)
		}

		if _, werr := out.Write(trimEOL(chunk)); werr != nil {
			return p.transportFailure("write", werr)
		}
		if _, werr := out.WriteString(p.eol); werr != nil {
			return p.transportFailure("write", werr)
		}
		if ferr := out.Flush(); ferr != nil {
			return p.transportFailure("flush", ferr)
		}
		return nil
	}
}

// renderSafe renders one line, converting a panic from a style or the renderer
// into a skipped line.
func (p *Printer) renderSafe(line []byte) (rendered string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			p.diag.Error().
				Interface("panic", r).
				Str("line", string(line)).
				Msg("failed to render line")
			rendered, ok = "", false
		}
	}()
	return p.Render(line)
}

func (p *Printer) transportFailure(op string, err error) error {
	p.diag.Error().Err(err).Str("op", op).Msg("transport failure")
	return fmt.Errorf("%w: %s: %w", ErrTransport, op, err)
}

func trimEOL(line []byte) []byte {
	line = bytes.TrimSuffix(line, []byte{'\n'})
	return bytes.TrimSuffix(line, []byte{'\r'})
}
