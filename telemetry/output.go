package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/sparks/config"
)

// csvStream is one CSV file that gets its header on the first write.
type csvStream struct {
	name          string
	file          *os.File
	headerWritten bool
}

func write[T any](s *csvStream, records []T) error {
	var err error
	if !s.headerWritten {
		// First write includes headers
		err = gocsv.Marshal(records, s.file)
		s.headerWritten = err == nil
	} else {
		err = gocsv.MarshalWithoutHeaders(records, s.file)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", s.name, err)
	}
	return nil
}

// OutputManager handles structured run output with CSV logging.
// A nil *OutputManager is valid and discards everything.
type OutputManager struct {
	dir       string
	telemetry *csvStream
	perf      *csvStream
	emitters  *csvStream
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	for _, s := range []struct {
		dst  **csvStream
		name string
	}{
		{&om.telemetry, "telemetry.csv"},
		{&om.perf, "perf.csv"},
		{&om.emitters, "emitters.csv"},
	} {
		f, err := os.Create(filepath.Join(dir, s.name))
		if err != nil {
			om.Close()
			return nil, fmt.Errorf("creating %s: %w", s.name, err)
		}
		*s.dst = &csvStream{name: s.name, file: f}
	}

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry appends a window stats record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	return write(om.telemetry, []WindowStats{stats})
}

// WritePerf appends a performance record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int64) error {
	if om == nil {
		return nil
	}
	return write(om.perf, []PerfStatsCSV{stats.ToCSV(windowEnd)})
}

// WriteEmitter appends a completed emitter record to emitters.csv.
func (om *OutputManager) WriteEmitter(r *EmitterRecord) error {
	if om == nil || r == nil {
		return nil
	}
	return write(om.emitters, []*EmitterRecord{r})
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var errs []error
	for _, s := range []*csvStream{om.telemetry, om.perf, om.emitters} {
		if s == nil {
			continue
		}
		if err := s.file.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing %s: %w", s.name, err))
		}
	}
	return errors.Join(errs...)
}
