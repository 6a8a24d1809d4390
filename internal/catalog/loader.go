package catalog

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Paintersrp/tome/internal/facet"
)

const (
	fieldSep  = '@'
	detailSep = ";"
)

// FormatError reports a malformed record line.
type FormatError struct {
	Line   int
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("catalog: line %d: %s", e.Line, e.Reason)
}

// Parse reads records in the form name@bits@info@description, one per line,
// from r. Facet bit strings are parsed at width n. Blank lines are skipped
// and the last record may omit its newline.
func Parse(ctx context.Context, r io.Reader, n int) ([]Record, error) {
	br := bufio.NewReader(r)
	var (
		records []Record
		offset  int64
		lineNo  int
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("catalog: read: %w", err)
		}
		if line == "" && errors.Is(err, io.EOF) {
			break
		}
		lineNo++
		start := offset
		offset += int64(len(line))

		body := strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(body) != "" {
			rec, perr := parseRecord(body, start, n)
			if perr != nil {
				perr.Line = lineNo
				return nil, perr
			}
			rec.ID = len(records)
			records = append(records, rec)
		}
		if errors.Is(err, io.EOF) {
			break
		}
	}
	return records, nil
}

func parseRecord(body string, start int64, n int) (Record, *FormatError) {
	parts := strings.SplitN(body, string(fieldSep), 4)
	if len(parts) < 4 {
		return Record{}, &FormatError{Reason: fmt.Sprintf("expected 4 '@' separated fields, found %d", len(parts))}
	}
	name, bits, info := parts[0], parts[1], parts[2]
	if name == "" {
		return Record{}, &FormatError{Reason: "empty record name"}
	}
	infoAt := start + int64(len(name)+1+len(bits)+1)
	return Record{
		Name: name,
		Bits: facet.ParseBitset(bits, n),
		Loc: Locator{
			Info: infoAt,
			Text: infoAt + int64(len(info)+1),
		},
	}, nil
}

// readField reads from off up to, not including, delim or the end of the
// source.
func readField(src Source, off int64, delim byte) (string, error) {
	if off < 0 || off > src.Size() {
		return "", fmt.Errorf("catalog: offset %d outside source of %d bytes", off, src.Size())
	}
	br := bufio.NewReader(io.NewSectionReader(src, off, src.Size()-off))
	s, err := br.ReadString(delim)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	s = strings.TrimSuffix(s, string(delim))
	return strings.TrimRight(s, "\r"), nil
}
