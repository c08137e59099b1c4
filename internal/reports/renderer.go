package reports

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"log-analyzer/internal/models"
	"log-analyzer/internal/shared/filestorages"
	"log-analyzer/internal/shared/loggers"
	"log-analyzer/internal/shared/metrics"
	"log-analyzer/internal/shared/svcerrors"
)

const (
	PlaceholderTable = "$table_json"
	PlaceholderMeta  = "$meta_json"

	defaultExt     = "html"
	keyPrefix      = "report-"
	keyDateLayout  = "2006.01.02"
	builtinTmplSrc = "builtin:report.html"
)

//go:embed templates/report.html
var defaultTemplate string

type RenderResult struct {
	Key  string
	Path string
	Rows int
}

type Options struct {
	// TemplatePath overrides the embedded HTML template. Its extension becomes
	// the report extension.
	TemplatePath string
	Overwrite    bool
}

//go:generate mockgen -source=renderer.go -destination=./mocks/renderer_mock.go -package=mocks
type Renderer interface {
	// Render writes report-YYYY.MM.DD.<ext>, dated by the report's generation time.
	Render(ctx context.Context, report *models.Report) (*RenderResult, error)
}

type renderer struct {
	storage  filestorages.FileStorage
	template string
	ext      string
	opts     Options
}

// NewRenderer loads and checks the template once. A template without the
// table placeholder is rejected with RPT_1001.
func NewRenderer(storage filestorages.FileStorage, opts Options) (Renderer, error) {
	tmpl, source, err := loadTemplate(opts.TemplatePath)
	if err != nil {
		return nil, err
	}
	if !strings.Contains(tmpl, PlaceholderTable) {
		return nil, errTemplateInvalid(source, fmt.Errorf("missing placeholder %s", PlaceholderTable))
	}

	ext := defaultExt
	if opts.TemplatePath != "" {
		if e := strings.TrimPrefix(filepath.Ext(opts.TemplatePath), "."); e != "" {
			ext = e
		}
	}

	return &renderer{storage: storage, template: tmpl, ext: ext, opts: opts}, nil
}

func loadTemplate(path string) (string, string, error) {
	if path == "" {
		return defaultTemplate, builtinTmplSrc, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", path, errTemplateInvalid(path, err)
	}
	return string(content), path, nil
}

// ReportKey returns the file name of the report for date.
func ReportKey(date time.Time, ext string) string {
	return keyPrefix + date.Format(keyDateLayout) + "." + ext
}

func (r *renderer) Render(ctx context.Context, report *models.Report) (*RenderResult, error) {
	result, err := r.render(ctx, report)
	code := metrics.ValueNoError
	if err != nil {
		if svcErr, ok := svcerrors.AsServiceError(err); ok {
			code = svcErr.Code
		}
	}
	metricReportsRenderedTotal.WithLabelValues(code).Inc()
	return result, err
}

func (r *renderer) render(ctx context.Context, report *models.Report) (*RenderResult, error) {
	logger := loggers.Ctx(ctx)
	key := ReportKey(report.Meta.GeneratedAt, r.ext)

	tableJSON, err := MarshalRows(report.Rows)
	if err != nil {
		return nil, errInternalWriteFailed(key, err)
	}
	metaJSON, err := json.Marshal(report.Meta)
	if err != nil {
		return nil, errInternalWriteFailed(key, err)
	}

	content := strings.NewReplacer(
		PlaceholderTable, string(tableJSON),
		PlaceholderMeta, string(metaJSON),
	).Replace(r.template)

	put, err := r.storage.Put(ctx, key, bytes.NewBufferString(content), filestorages.PutOptions{AllowOverwrite: r.opts.Overwrite})
	if err != nil {
		if errors.Is(err, filestorages.ErrFileAlreadyExists) {
			return nil, errReportAlreadyExists(key)
		}
		return nil, errInternalWriteFailed(key, err)
	}

	metricReportRowsLast.Set(float64(len(report.Rows)))
	logger.Info().
		Str(loggers.FieldFile, put.Path).
		Msgf("report rendered with %d rows", len(report.Rows))

	return &RenderResult{Key: put.FileKey, Path: put.Path, Rows: len(report.Rows)}, nil
}
