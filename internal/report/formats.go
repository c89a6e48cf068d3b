// Package report renders diagnosis results into their output formats.
package report

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rabi3laser/visibility-doctor/internal/doctor"
	"github.com/rabi3laser/visibility-doctor/pkg/logger"
)

// Format represents a report generation strategy.
type Format interface {
	// Generate writes the report for a diagnosis result to outputPath.
	Generate(result *doctor.Result, outputPath string) error
	// Name returns the format identifier (e.g., "json", "plan", "text").
	Name() string
	// Description returns a human-readable description of the format.
	Description() string
}

// FormatFactory creates instances of report formats.
type FormatFactory func(log logger.Logger) (Format, error)

var (
	formatRegistry = make(map[string]FormatFactory)
	registryMutex  sync.RWMutex
)

// RegisterFormat registers a new report format factory.
func RegisterFormat(name string, factory FormatFactory) {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	if factory == nil {
		panic(fmt.Sprintf("report: RegisterFormat factory is nil for format %q", name))
	}
	if _, dup := formatRegistry[name]; dup {
		panic(fmt.Sprintf("report: RegisterFormat called twice for format %q", name))
	}
	formatRegistry[name] = factory
}

// GetFormat creates an instance of the specified report format.
func GetFormat(name string, log logger.Logger) (Format, error) {
	registryMutex.RLock()
	factory, exists := formatRegistry[name]
	registryMutex.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unknown report format: %s", name)
	}

	return factory(log)
}

// ListFormats returns a sorted list of all registered format names.
func ListFormats() []string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	formats := make([]string, 0, len(formatRegistry))
	for name := range formatRegistry {
		formats = append(formats, name)
	}
	sort.Strings(formats)
	return formats
}

func init() {
	RegisterFormat("json", func(log logger.Logger) (Format, error) {
		return &jsonFormat{logger: log}, nil
	})
	RegisterFormat("plan", func(log logger.Logger) (Format, error) {
		return &planFormat{logger: log}, nil
	})
	RegisterFormat("text", func(log logger.Logger) (Format, error) {
		return &textFormat{logger: log}, nil
	})
}
