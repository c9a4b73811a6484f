package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ppiankov/gapdash/internal/dataset"
	"github.com/ppiankov/gapdash/internal/model"
	"github.com/ppiankov/gapdash/internal/util"
)

var (
	// ErrNoSource is returned when neither a path nor a URL is configured
	ErrNoSource = errors.New("no dataset source configured")
	// ErrDisallowed is returned when robots.txt forbids the dataset URL
	ErrDisallowed = errors.New("dataset URL disallowed by robots.txt")
)

// Loader reads the dataset once at startup, from a local file or over HTTP
type Loader struct {
	cfg     model.DatasetConfig
	fetcher *Fetcher
	robots  *util.RobotsChecker
	log     logrus.FieldLogger
	now     func() time.Time
}

// NewLoader creates a Loader from the dataset and HTTP config
func NewLoader(cfg *model.Config, log logrus.FieldLogger) *Loader {
	fetcher := NewFetcher(cfg.HTTP)

	var robots *util.RobotsChecker
	if cfg.Dataset.RespectRobots {
		robots = util.NewRobotsChecker(fetcher.Client(), cfg.HTTP.UserAgent)
	}

	return &Loader{
		cfg:     cfg.Dataset,
		fetcher: fetcher,
		robots:  robots,
		log:     log,
		now:     time.Now,
	}
}

// Load reads and parses the dataset. A local path wins over a URL.
func (l *Loader) Load(ctx context.Context) (*dataset.Dataset, *model.DatasetInfo, error) {
	switch {
	case l.cfg.Path != "":
		return l.loadFile(l.cfg.Path)
	case l.cfg.URL != "":
		return l.loadURL(ctx, l.cfg.URL)
	default:
		return nil, nil, ErrNoSource
	}
}

func (l *Loader) loadFile(path string) (*dataset.Dataset, *model.DatasetInfo, error) {
	log := l.log.WithField("path", path)
	log.Debug("reading dataset file")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read dataset: %w", err)
	}

	ds, err := dataset.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}

	info := &model.DatasetInfo{
		Source:   path,
		LoadedAt: l.now().UTC(),
		Rows:     ds.Len(),
		Bytes:    len(data),
	}
	log.WithField("rows", info.Rows).Info("dataset loaded")
	return ds, info, nil
}

func (l *Loader) loadURL(ctx context.Context, rawURL string) (*dataset.Dataset, *model.DatasetInfo, error) {
	log := l.log.WithField("url", rawURL)

	if l.robots != nil {
		allowed, delay, err := l.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return nil, nil, fmt.Errorf("check robots.txt: %w", err)
		}
		if !allowed {
			return nil, nil, fmt.Errorf("%w: %s", ErrDisallowed, rawURL)
		}
		if delay > 0 {
			log.WithField("crawl_delay", delay).Debug("robots.txt sets a crawl delay")
		}
	}

	log.Info("downloading dataset")
	result, err := l.fetcher.FetchWithRetry(ctx, rawURL)
	if err != nil {
		return nil, nil, fmt.Errorf("download dataset: %w", err)
	}

	ds, err := dataset.Parse(bytes.NewReader(result.Body))
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", result.FinalURL, err)
	}

	meta := result.Meta
	info := &model.DatasetInfo{
		Source:   result.FinalURL,
		LoadedAt: l.now().UTC(),
		Rows:     ds.Len(),
		Bytes:    len(result.Body),
		Fetch:    &meta,
	}
	log.WithFields(logrus.Fields{
		"rows":  info.Rows,
		"bytes": info.Bytes,
	}).Info("dataset loaded")
	return ds, info, nil
}
