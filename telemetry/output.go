package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/neurosoup/config"
)

// csvSink appends gocsv rows to one file, writing the header with the first rows.
type csvSink struct {
	name   string
	f      *os.File
	header bool
}

func openSink(dir, name string) (*csvSink, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvSink{name: name, f: f}, nil
}

// write marshals rows, a slice of csv-tagged structs.
func (s *csvSink) write(rows any) error {
	marshal := gocsv.MarshalWithoutHeaders
	if !s.header {
		marshal = gocsv.Marshal
	}
	if err := marshal(rows, s.f); err != nil {
		return fmt.Errorf("writing %s: %w", s.name, err)
	}
	s.header = true
	return nil
}

func (s *csvSink) close() error {
	if s == nil {
		return nil
	}
	return s.f.Close()
}

// OutputManager writes one run's CSV files and config snapshot into a directory.
// A nil *OutputManager discards everything.
type OutputManager struct {
	dir       string
	telemetry *csvSink
	perf      *csvSink
	bookmarks *csvSink
	lifetimes *csvSink

	// Finished lives are buffered and written once per stats window.
	pendingLives []LifetimeRecord
}

// NewOutputManager creates the output directory and its CSV files.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	sinks := []struct {
		name string
		dst  **csvSink
	}{
		{"telemetry.csv", &om.telemetry},
		{"perf.csv", &om.perf},
		{"bookmarks.csv", &om.bookmarks},
		{"lifetimes.csv", &om.lifetimes},
	}
	for _, s := range sinks {
		sink, err := openSink(dir, s.name)
		if err != nil {
			om.Close()
			return nil, err
		}
		*s.dst = sink
	}
	return om, nil
}

// WriteConfig saves the effective configuration as config.yaml.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry appends a window to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	return om.telemetry.write([]WindowStats{stats})
}

// WritePerf appends a perf summary to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, runID string, windowEnd int32) error {
	if om == nil {
		return nil
	}
	return om.perf.write([]PerfStatsCSV{stats.ToCSV(runID, windowEnd)})
}

// WriteBookmark appends a bookmark to bookmarks.csv.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	return om.bookmarks.write([]Bookmark{b})
}

// RecordLifetime queues a finished life for lifetimes.csv.
func (om *OutputManager) RecordLifetime(rec LifetimeRecord) {
	if om == nil {
		return
	}
	om.pendingLives = append(om.pendingLives, rec)
}

// FlushLifetimes writes queued lives to lifetimes.csv.
func (om *OutputManager) FlushLifetimes() error {
	if om == nil || len(om.pendingLives) == 0 {
		return nil
	}
	err := om.lifetimes.write(om.pendingLives)
	om.pendingLives = om.pendingLives[:0]
	return err
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes queued lives, closes all files and returns the first error.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	if om.lifetimes != nil {
		firstErr = om.FlushLifetimes()
	}
	for _, s := range []*csvSink{om.telemetry, om.perf, om.bookmarks, om.lifetimes} {
		if err := s.close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
