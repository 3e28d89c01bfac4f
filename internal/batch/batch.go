// Package batch appends decoded Style Code fields to the rows of a delimited file.
package batch

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/anfive/servizio-cli/internal/stylecode"
)

// DefaultPlaceholder fills every appended column of a row whose code does not decode.
const DefaultPlaceholder = "<invalid code>"

// ErrSameFile is returned when input and output name the same file.
var ErrSameFile = errors.New("reading and writing to the same file is not supported")

// Options controls how rows are read and which column holds the code.
type Options struct {
	Delimiter  rune
	HasHeaders bool
	// Column is the zero-based index of the code column; negative selects
	// the last column of the first row.
	Column      int
	Placeholder string
	Logger      *slog.Logger
}

// DefaultOptions returns comma-separated, headerless options reading the last column.
func DefaultOptions() Options {
	return Options{
		Delimiter:   ',',
		Column:      -1,
		Placeholder: DefaultPlaceholder,
	}
}

// Stats counts processed rows. The header row is not counted.
type Stats struct {
	Rows    int `json:"rows"`
	Decoded int `json:"decoded"`
	Invalid int `json:"invalid"`
}

// Processor transforms records one at a time. It is not safe for concurrent use.
type Processor struct {
	opts          Options
	headerPending bool
	column        int
	stats         Stats
}

// NewProcessor creates a Processor for opts.
func NewProcessor(opts Options) *Processor {
	if opts.Placeholder == "" {
		opts.Placeholder = DefaultPlaceholder
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Processor{opts: opts, headerPending: opts.HasHeaders, column: opts.Column}
}

// Stats returns the counts accumulated so far.
func (p *Processor) Stats() Stats { return p.stats }

// Record returns rec with the ten field columns appended: labels for the
// header row, decoded values for a valid code, placeholders otherwise.
func (p *Processor) Record(rec []string) ([]string, error) {
	if len(rec) == 0 {
		return nil, errors.New("empty record")
	}
	if p.column < 0 {
		p.column = len(rec) - 1
	}

	out := make([]string, len(rec), len(rec)+len(stylecode.Fields))
	copy(out, rec)

	if p.headerPending {
		p.headerPending = false
		for _, f := range stylecode.Fields {
			out = append(out, f.Label())
		}
		return out, nil
	}

	if p.column >= len(rec) {
		return nil, fmt.Errorf("column %d out of range for a row of %d fields", p.column+1, len(rec))
	}
	p.stats.Rows++

	code := strings.TrimSpace(rec[p.column])
	v, err := stylecode.Decode(code)
	if err != nil {
		p.stats.Invalid++
		p.opts.Logger.Debug("invalid style code", "code", code, "row", p.stats.Rows)
		for range stylecode.Fields {
			out = append(out, p.opts.Placeholder)
		}
		return out, nil
	}
	p.stats.Decoded++
	return append(out, v.Values()...), nil
}

// Process reads delimited records from r and writes the transformed records to w.
func Process(ctx context.Context, r io.Reader, w io.Writer, opts Options) (Stats, error) {
	p := NewProcessor(opts)

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.FieldsPerRecord = -1
	writer := csv.NewWriter(w)
	writer.Comma = opts.Delimiter

	for line := 1; ; line++ {
		if err := ctx.Err(); err != nil {
			return p.Stats(), err
		}
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return p.Stats(), fmt.Errorf("batch.Process: read line %d: %w", line, err)
		}
		out, err := p.Record(rec)
		if err != nil {
			return p.Stats(), fmt.Errorf("batch.Process: line %d: %w", line, err)
		}
		if err := writer.Write(out); err != nil {
			return p.Stats(), fmt.Errorf("batch.Process: write line %d: %w", line, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return p.Stats(), fmt.Errorf("batch.Process: flush: %w", err)
	}
	return p.Stats(), nil
}

// ProcessFile transforms the file at in and writes the result to out.
func ProcessFile(ctx context.Context, in, out string, opts Options) (Stats, error) {
	same, err := sameFile(in, out)
	if err != nil {
		return Stats{}, fmt.Errorf("batch.ProcessFile: %w", err)
	}
	if same {
		return Stats{}, fmt.Errorf("batch.ProcessFile: %s: %w", in, ErrSameFile)
	}

	src, err := os.Open(in)
	if err != nil {
		return Stats{}, fmt.Errorf("batch.ProcessFile: open input: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(out)
	if err != nil {
		return Stats{}, fmt.Errorf("batch.ProcessFile: create output: %w", err)
	}

	stats, err := Process(ctx, src, dst, opts)
	if cerr := dst.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("batch.ProcessFile: close output: %w", cerr)
	}
	return stats, err
}

func sameFile(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	if absA == absB {
		return true, nil
	}
	infoA, errA := os.Stat(absA)
	infoB, errB := os.Stat(absB)
	if errA != nil || errB != nil {
		return false, nil
	}
	return os.SameFile(infoA, infoB), nil
}
