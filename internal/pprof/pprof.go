// Package pprof writes CPU and heap profiles of a calculator run to files.
package pprof

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"sync"
)

// Config holds the profile destinations. Empty paths disable the profile.
type Config struct {
	CPUProfile  string
	HeapProfile string
}

// Enabled reports whether any profile is requested.
func (c Config) Enabled() bool {
	return c.CPUProfile != "" || c.HeapProfile != ""
}

// Handler manages one profiling session.
type Handler struct {
	config  Config
	cpuFile *os.File

	mu      sync.Mutex
	stopped bool
}

func NewHandler(config Config) *Handler {
	return &Handler{config: config}
}

// Start begins CPU profiling if configured.
func (h *Handler) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.config.CPUProfile == "" {
		return nil
	}
	f, err := create(h.config.CPUProfile)
	if err != nil {
		return fmt.Errorf("failed to create CPU profile file: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to start CPU profiling: %w", err)
	}
	h.cpuFile = f
	return nil
}

// Stop ends CPU profiling and writes the heap profile. Calls after the first
// do nothing.
func (h *Handler) Stop() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stopped {
		return nil
	}
	h.stopped = true

	var errs []error
	if h.cpuFile != nil {
		pprof.StopCPUProfile()
		if err := h.cpuFile.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close CPU profile: %w", err))
		}
		h.cpuFile = nil
	}

	if h.config.HeapProfile != "" {
		if err := writeHeapProfile(h.config.HeapProfile); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func writeHeapProfile(path string) error {
	f, err := create(path)
	if err != nil {
		return fmt.Errorf("failed to create heap profile file: %w", err)
	}
	defer f.Close()

	// up-to-date allocation statistics
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("failed to write heap profile: %w", err)
	}
	return nil
}

func create(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.Create(path)
}
