package proxypool

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
)

// FilePool is a Pool backed by a line-delimited file. The file is read once
// at construction; every rotation or removal rewrites it so the on-disk
// order always matches the in-memory order. Unaffected lines keep their
// relative order; the rotated entry is appended at the end.
type FilePool struct {
	mu        sync.Mutex
	path      string
	endpoints []string
}

// NewFilePool loads the proxy file at path. Blank lines are skipped,
// surrounding whitespace is trimmed, duplicates are preserved.
func NewFilePool(path string) (*FilePool, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("proxypool: open %s: %w", path, err)
	}
	defer file.Close()

	var endpoints []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		endpoints = append(endpoints, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("proxypool: read %s: %w", path, err)
	}

	return &FilePool{path: path, endpoints: endpoints}, nil
}

func (p *FilePool) Peek() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.endpoints) == 0 {
		return "", errEmptyPool()
	}
	return p.endpoints[0], nil
}

func (p *FilePool) Rotate(endpoint string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.endpoints = rotate(p.endpoints, endpoint)
	return p.rewrite()
}

func (p *FilePool) Remove(endpoint string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.endpoints = remove(p.endpoints, endpoint)
	return p.rewrite()
}

func (p *FilePool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.endpoints)
}

// Endpoints returns a copy of the current pool order.
func (p *FilePool) Endpoints() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	eps := make([]string, len(p.endpoints))
	copy(eps, p.endpoints)
	return eps
}

// rewrite persists the current order. Caller must hold p.mu.
func (p *FilePool) rewrite() error {
	var sb strings.Builder
	for _, e := range p.endpoints {
		sb.WriteString(e)
		sb.WriteString("\n")
	}
	if err := os.WriteFile(p.path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("proxypool: rewrite %s: %w", p.path, err)
	}
	return nil
}
