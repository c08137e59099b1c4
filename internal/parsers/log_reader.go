package parsers

import (
	"bufio"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"log-analyzer/internal/models"
	"log-analyzer/internal/shared/loggers"
	"log-analyzer/internal/sources"

	"github.com/klauspost/compress/gzip"
)

// MalformedPolicy decides what happens to lines that do not fit the layout.
type MalformedPolicy string

const (
	PolicySkip MalformedPolicy = "skip"
	PolicyFail MalformedPolicy = "fail"
)

const (
	readBufferSize = 64 * 1024
	maxLineLength  = 1024 * 1024

	// only the first skipped lines are logged individually
	maxLoggedMalformed = 20
)

type Options struct {
	Policy MalformedPolicy
}

// LogReader streams LogEntry values out of one access log file. It owns the
// file handle until Close; a fresh read needs a new Open.
type LogReader struct {
	path    string
	policy  MalformedPolicy
	file    *os.File
	gz      *gzip.Reader
	br      *bufio.Reader
	buf     []byte
	logger  *loggers.Logger

	lineNumber int64
	stats      models.ParseStats
	closed     bool
}

// Open opens path for streaming. Files ending in .gz are decompressed.
// The logger in ctx receives a warning per skipped line.
func Open(ctx context.Context, path string, opts Options) (*LogReader, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, sources.ErrSourceNotFound(path, err)
		}
		return nil, errInternalReadFailed(path, err)
	}

	var r io.Reader = file
	var gz *gzip.Reader
	if strings.HasSuffix(path, sources.ExtCompressed) {
		gz, err = gzip.NewReader(file)
		if err != nil {
			_ = file.Close()
			return nil, errInternalReadFailed(path, err)
		}
		r = gz
	}

	policy := opts.Policy
	if policy == "" {
		policy = PolicySkip
	}

	return &LogReader{
		path:    path,
		policy:  policy,
		file:    file,
		gz:      gz,
		br:      bufio.NewReaderSize(r, readBufferSize),
		logger:  loggers.Ctx(ctx),
	}, nil
}

// Next returns the next entry in file order, or io.EOF once the file is
// exhausted. Blank lines are ignored. Malformed lines, including lines longer
// than maxLineLength, are skipped and counted under PolicySkip and returned as
// PRS_1000 under PolicyFail.
func (r *LogReader) Next() (models.LogEntry, error) {
	if r.closed {
		return models.LogEntry{}, ErrReaderClosed
	}

	for {
		line, tooLong, err := r.readLine()
		if errors.Is(err, io.EOF) {
			return models.LogEntry{}, io.EOF
		}
		if err != nil {
			return models.LogEntry{}, errInternalReadFailed(r.path, err)
		}
		r.lineNumber++
		r.stats.Lines++

		var entry models.LogEntry
		if tooLong {
			err = ErrLineTooLong
		} else {
			if strings.TrimSpace(line) == "" {
				continue
			}
			entry, err = ParseLine(line)
		}
		if err != nil {
			if r.policy == PolicyFail {
				return models.LogEntry{}, errMalformedLogLine(r.path, r.lineNumber, line, err)
			}
			r.skip(line, err)
			continue
		}

		r.stats.Parsed++
		return entry, nil
	}
}

// readLine returns the next line without its terminator. A line longer than
// maxLineLength is drained to its end; only its first maxLineLength bytes are
// kept and tooLong is set.
func (r *LogReader) readLine() (string, bool, error) {
	r.buf = r.buf[:0]
	tooLong := false
	for {
		chunk, isPrefix, err := r.br.ReadLine()
		if err != nil {
			return "", false, err
		}
		if !tooLong {
			if len(r.buf)+len(chunk) > maxLineLength {
				tooLong = true
				r.buf = append(r.buf, chunk[:maxLineLength-len(r.buf)]...)
			} else {
				r.buf = append(r.buf, chunk...)
			}
		}
		if !isPrefix {
			return string(r.buf), tooLong, nil
		}
	}
}

func (r *LogReader) skip(line string, cause error) {
	r.stats.Skipped++
	if r.stats.Skipped > maxLoggedMalformed {
		return
	}
	r.logger.Warn().
		Err(cause).
		Str(loggers.FieldFile, r.path).
		Int64(loggers.FieldLineNumber, r.lineNumber).
		Str(loggers.FieldLine, truncateLine(line)).
		Msg("skipping malformed log line")
}

// Stats returns the line counters so far.
func (r *LogReader) Stats() models.ParseStats {
	return r.stats
}

// Close releases the file. It is safe to call more than once.
func (r *LogReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	metricLinesTotal.WithLabelValues(resultParsed).Add(float64(r.stats.Parsed))
	metricLinesTotal.WithLabelValues(resultSkipped).Add(float64(r.stats.Skipped))

	var gzErr error
	if r.gz != nil {
		gzErr = r.gz.Close()
	}
	return errors.Join(gzErr, r.file.Close())
}

// CheckMalformedRatio fails with PRS_1001 when the share of skipped lines
// exceeds limit. A limit of 0 disables the check.
func (r *LogReader) CheckMalformedRatio(limit float64) error {
	if limit <= 0 {
		return nil
	}
	if ratio := r.stats.MalformedRatio(); ratio > limit {
		return ErrMalformedRatioExceeded(r.path, ratio, limit)
	}
	return nil
}
