// Package history keeps a bounded, file-backed record of entered command
// lines.
package history

import (
	"bufio"
	"fmt"
	"os"
	"sync"
)

const defaultLimit = 1000

// History is safe for concurrent use. Every Add persists the whole record,
// so a crashed shell loses at most the line being written.
type History struct {
	mu    sync.Mutex
	file  string
	limit int
	items []string
}

// New loads existing history from file, which need not exist yet.
func New(file string) (*History, error) {
	h := &History{
		file:  file,
		limit: defaultLimit,
	}
	if err := h.load(); err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return h, nil
}

// Add appends a command line, trims to the limit, and persists. A failed
// write is not fatal to the shell; the in-memory record stays intact.
func (h *History) Add(line string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.items = append(h.items, line)
	if len(h.items) > h.limit {
		h.items = h.items[len(h.items)-h.limit:]
	}
	_ = h.save()
}

// All returns a copy of the recorded lines, oldest first.
func (h *History) All() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]string{}, h.items...)
}

func (h *History) load() error {
	file, err := os.Open(h.file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		h.items = append(h.items, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if len(h.items) > h.limit {
		h.items = h.items[len(h.items)-h.limit:]
	}
	return nil
}

func (h *History) save() error {
	file, err := os.Create(h.file)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, line := range h.items {
		if _, err := writer.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return writer.Flush()
}
