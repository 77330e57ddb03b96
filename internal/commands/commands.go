package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/akasprzok/chartkit/internal/config"
	"github.com/sirupsen/logrus"
)

type Context struct {
	Timeout time.Duration
	Config  *config.Config
	Log     *logrus.Logger
	Out     io.Writer
}

type CLI struct {
	Timeout  time.Duration `help:"Timeout for loading chart sources." default:"60s"`
	Config   string        `help:"Path to a YAML configuration file." type:"path" env:"CHARTKIT_CONFIG"`
	LogFile  string        `help:"Write logs to this file." type:"path" name:"log-file"`
	LogLevel string        `help:"Log level." default:"info" enum:"trace,debug,info,warn,error" name:"log-level"`

	View        ViewCmd        `cmd:"" help:"Interactive chart viewer with a crosshair."`
	Interpolate InterpolateCmd `cmd:"" help:"Print the value of every dataset at an X value."`
	Export      ExportCmd      `cmd:"" help:"Render charts to PNG or SVG."`
	Schemes     SchemesCmd     `cmd:"" help:"List the available color schemes."`
	FormatQuery FormatQueryCmd `cmd:"" help:"Format query."`
}

// NewContext loads the configuration file and sets up logging. The caller
// closes the returned closer once the command has finished.
func (c *CLI) NewContext() (*Context, io.Closer, error) {
	log, closer, err := NewLogger(c.LogFile, c.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(c.Config)
	if err != nil {
		closer.Close()
		return nil, nil, err
	}
	if err := cfg.RegisterSchemes(); err != nil {
		closer.Close()
		return nil, nil, err
	}
	return &Context{Timeout: c.Timeout, Config: cfg, Log: log, Out: os.Stdout}, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewLogger returns a logrus logger writing to path, or to stderr when path
// is empty.
func NewLogger(path, level string) (*logrus.Logger, io.Closer, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}
	log.SetLevel(lvl)

	if path == "" {
		log.SetOutput(os.Stderr)
		return log, nopCloser{}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	log.SetOutput(f)
	return log, f, nil
}
