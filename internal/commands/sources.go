package commands

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/akasprzok/chartkit/internal/prometheus"
	"github.com/akasprzok/chartkit/internal/source"
)

var (
	ErrNoSources          = errors.New("no sources given, use --query or --file")
	ErrNoPrometheusURL    = errors.New("--query needs a Prometheus URL")
	ErrUnsupportedFileExt = errors.New("unsupported file type")
)

// SourceFlags are the flags shared by every command that loads charts.
type SourceFlags struct {
	PrometheusURL string        `help:"URL of the Prometheus endpoint." short:"p" env:"CHARTKIT_PROMETHEUS_URL" name:"prometheus-url"`
	Query         []string      `name:"query" short:"q" help:"Range query to chart. Repeat for several charts."`
	File          []string      `name:"file" short:"f" type:"path" help:"YAML, JSON or XLSX dataset file. Repeat for several charts."`
	Sheet         string        `name:"sheet" help:"Worksheet of XLSX files. Defaults to the first sheet."`
	Range         time.Duration `name:"range" short:"r" help:"Range of queries. Defaults to the configured range or 1h."`
	Step          time.Duration `name:"step" short:"s" help:"Step of queries. Defaults to the configured step or 15s."`
}

// Sources builds one source per query and file, queries first.
func (f *SourceFlags) Sources(ctx *Context) ([]source.Source, error) {
	if len(f.Query) == 0 && len(f.File) == 0 {
		return nil, ErrNoSources
	}

	var sources []source.Source
	if len(f.Query) > 0 {
		qs, err := f.querySources(ctx)
		if err != nil {
			return nil, err
		}
		sources = append(sources, qs...)
	}
	for _, path := range f.File {
		s, err := fileSource(path, f.Sheet)
		if err != nil {
			return nil, err
		}
		sources = append(sources, s)
	}
	return sources, nil
}

func (f *SourceFlags) querySources(ctx *Context) ([]source.Source, error) {
	url := f.PrometheusURL
	if url == "" {
		url = ctx.Config.Prometheus.URL
	}
	if url == "" {
		return nil, ErrNoPrometheusURL
	}
	client, err := prometheus.NewClient(url)
	if err != nil {
		return nil, err
	}

	rng, step, err := ctx.Config.PrometheusRange()
	if err != nil {
		return nil, err
	}
	if f.Range > 0 {
		rng = f.Range
	}
	if f.Step > 0 {
		step = f.Step
	}

	sources := make([]source.Source, 0, len(f.Query))
	for _, q := range f.Query {
		if err := prometheus.ValidateQuery(q); err != nil {
			return nil, err
		}
		sources = append(sources, &source.Prometheus{
			Client: client,
			Query:  q,
			Range:  rng,
			Step:   step,
			Log:    ctx.Log,
		})
	}
	return sources, nil
}

func fileSource(path, sheet string) (source.Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return &source.File{Path: path}, nil
	case ".xlsx":
		return &source.XLSX{Path: path, Sheet: sheet}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileExt, path)
	}
}
