package bulkimport

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// maxLineSize bounds a single NDJSON line.
const maxLineSize = 1024 * 1024

// rawRecord is an undecoded record with its 1-based position in the file.
// Err is set when the record itself could not be parsed.
type rawRecord struct {
	Index int
	Data  json.RawMessage
	Err   error
}

// ErrUnreadable indicates the input could not be read as a whole.
var ErrUnreadable = errors.New("import file unreadable")

// readRecords streams records from r to out. A top-level JSON array is read
// element by element; anything else is treated as newline-delimited JSON.
// out is closed when reading ends.
func readRecords(ctx context.Context, r io.Reader, out chan<- rawRecord) error {
	defer close(out)

	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	if first == '[' {
		return readArray(ctx, br, out)
	}
	return readLines(ctx, br, out)
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// peekNonSpace drops a leading UTF-8 BOM and whitespace and returns the next
// byte without consuming it.
func peekNonSpace(br *bufio.Reader) (byte, error) {
	if prefix, _ := br.Peek(len(utf8BOM)); bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		if err := br.UnreadByte(); err != nil {
			return 0, err
		}
		return b, nil
	}
}

func readArray(ctx context.Context, r io.Reader, out chan<- rawRecord) error {
	dec := json.NewDecoder(r)
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	for i := 1; dec.More(); i++ {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			// 配列の途中で壊れている場合は以降を読めない
			return fmt.Errorf("%w: record %d: %w", ErrUnreadable, i, err)
		}
		if err := send(ctx, out, rawRecord{Index: i, Data: raw}); err != nil {
			return err
		}
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	return nil
}

func readLines(ctx context.Context, r io.Reader, out chan<- rawRecord) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	i := 0
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		i++

		rec := rawRecord{Index: i}
		if json.Valid(line) {
			rec.Data = append(json.RawMessage(nil), line...)
		} else {
			rec.Err = fmt.Errorf("line is not valid JSON")
		}
		if err := send(ctx, out, rec); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	return nil
}

func send(ctx context.Context, out chan<- rawRecord, rec rawRecord) error {
	select {
	case out <- rec:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
