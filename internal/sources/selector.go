package sources

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"log-analyzer/internal/shared/loggers"
)

// Selector picks the access log a run should analyze.
type Selector interface {
	// Latest returns the log file in dir with the most recent date token.
	// ok is false when dir holds no candidate files; that is not an error.
	Latest(ctx context.Context, dir string) (file LogFile, ok bool, err error)
}

type selector struct{}

func NewSelector() Selector {
	return &selector{}
}

func (s *selector) Latest(ctx context.Context, dir string) (LogFile, bool, error) {
	logger := loggers.Ctx(ctx)

	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return LogFile{}, false, ErrSourceNotFound(dir, err)
		}
		return LogFile{}, false, errInternalSourceListFailed(err)
	}
	if !info.IsDir() {
		return LogFile{}, false, ErrSourceNotFound(dir, nil)
	}

	// ReadDir returns entries sorted by filename
	entries, err := os.ReadDir(dir)
	if err != nil {
		return LogFile{}, false, errInternalSourceListFailed(err)
	}

	var latest LogFile
	found := false
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !isCandidate(name) {
			continue
		}
		date, err := ParseDateToken(name)
		if err != nil {
			return LogFile{}, false, errMalformedFilename(dir, name, err)
		}
		// Equal dates: the lexicographically greatest name wins.
		if !found || !date.Before(latest.Date) {
			latest = LogFile{
				Path:       filepath.Join(dir, name),
				Name:       name,
				Date:       date,
				Compressed: strings.HasSuffix(name, ExtCompressed),
			}
			found = true
		}
	}

	if !found {
		logger.Warn().Str(loggers.FieldFile, dir).Msg("no access logs found in the log directory")
		metricSourceSelectedTotal.WithLabelValues(resultNoCandidates).Inc()
		return LogFile{}, false, nil
	}

	logger.Debug().Str(loggers.FieldFile, latest.Path).Msgf("selected log dated %s", latest.Date.Format("2006-01-02"))
	metricSourceSelectedTotal.WithLabelValues(resultSelected).Inc()
	return latest, true, nil
}
