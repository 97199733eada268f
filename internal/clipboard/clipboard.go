// Package clipboard provides the text clipboard used by the copy and paste
// functions.
package clipboard

import (
	"fmt"
	"sync"

	sysclip "golang.design/x/clipboard"
)

// Clipboard reads and writes plain text.
type Clipboard interface {
	Get() (string, error)
	Set(text string) error
}

var (
	initOnce sync.Once
	initErr  error
)

// System is the operating system clipboard.
type System struct{}

// NewSystem initializes the system clipboard. It fails on headless machines
// without a display server.
func NewSystem() (*System, error) {
	initOnce.Do(func() {
		initErr = sysclip.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize clipboard: %w", initErr)
	}
	return &System{}, nil
}

func (*System) Get() (string, error) {
	return string(sysclip.Read(sysclip.FmtText)), nil
}

func (*System) Set(text string) error {
	sysclip.Write(sysclip.FmtText, []byte(text))
	return nil
}

// Memory is a process-local clipboard for tests and machines without a
// system clipboard.
type Memory struct {
	mu   sync.Mutex
	text string
}

// NewMemory returns a Memory clipboard holding text.
func NewMemory(text string) *Memory {
	return &Memory{text: text}
}

func (m *Memory) Get() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

func (m *Memory) Set(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// Open returns the system clipboard, or a Memory clipboard when the system
// one is unavailable. The error reports why the fallback was taken.
func Open() (Clipboard, error) {
	sys, err := NewSystem()
	if err != nil {
		return NewMemory(""), err
	}
	return sys, nil
}
