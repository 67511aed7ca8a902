// Package proxypool holds an ordered collection of egress proxy endpoints
// shared by every concurrent fetch. Rotation moves a failed endpoint to the
// tail so the next attempt sees a fresh head.
package proxypool

import (
	"sync"

	"github.com/akimerslys/hltv-go/models"
)

// Pool is an ordered proxy collection. Implementations serialize Peek,
// Rotate and Remove behind a single lock; duplicates are permitted and
// preserved.
type Pool interface {
	// Peek returns the current head without mutating the pool.
	// It fails with a CONFIGURATION_ERROR when the pool is empty.
	Peek() (string, error)

	// Rotate removes the first occurrence of endpoint and appends it at
	// the tail. Unknown endpoints leave the pool unchanged.
	Rotate(endpoint string) error

	// Remove deletes the first occurrence of endpoint.
	Remove(endpoint string) error

	// Len returns the current pool size.
	Len() int
}

// MemoryPool is an in-memory Pool.
type MemoryPool struct {
	mu        sync.Mutex
	endpoints []string
}

// NewMemoryPool creates a MemoryPool with the given endpoints in order.
func NewMemoryPool(endpoints []string) *MemoryPool {
	eps := make([]string, len(endpoints))
	copy(eps, endpoints)
	return &MemoryPool{endpoints: eps}
}

func (p *MemoryPool) Peek() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.endpoints) == 0 {
		return "", errEmptyPool()
	}
	return p.endpoints[0], nil
}

func (p *MemoryPool) Rotate(endpoint string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.endpoints = rotate(p.endpoints, endpoint)
	return nil
}

func (p *MemoryPool) Remove(endpoint string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.endpoints = remove(p.endpoints, endpoint)
	return nil
}

func (p *MemoryPool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.endpoints)
}

// Endpoints returns a copy of the current pool order.
func (p *MemoryPool) Endpoints() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	eps := make([]string, len(p.endpoints))
	copy(eps, p.endpoints)
	return eps
}

// rotate moves the first occurrence of endpoint to the tail.
func rotate(endpoints []string, endpoint string) []string {
	for i, e := range endpoints {
		if e == endpoint {
			return append(append(endpoints[:i], endpoints[i+1:]...), endpoint)
		}
	}
	return endpoints
}

// remove deletes the first occurrence of endpoint.
func remove(endpoints []string, endpoint string) []string {
	for i, e := range endpoints {
		if e == endpoint {
			return append(endpoints[:i], endpoints[i+1:]...)
		}
	}
	return endpoints
}

func errEmptyPool() error {
	return models.NewFetchError(models.ErrCodeConfiguration,
		"proxy pool is empty while proxy mode is enabled", nil)
}
