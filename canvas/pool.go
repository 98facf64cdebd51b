package canvas

import (
	"image"
	"sync"
)

// Pool recycles offscreen contexts by pixel size. It is safe for concurrent
// use. The zero value is ready to use.
type Pool struct {
	mu     sync.Mutex
	free   map[image.Point][]*Context
	closed bool
}

// Get returns a blank context with a default state.
func (p *Pool) Get(width, height int) *Context {
	key := image.Pt(max(width, 1), max(height, 1))
	p.mu.Lock()
	list := p.free[key]
	if n := len(list); n > 0 {
		c := list[n-1]
		p.free[key] = list[:n-1]
		p.mu.Unlock()
		c.Reset()
		return c
	}
	p.mu.Unlock()
	return New(key.X, key.Y)
}

// Put returns c to the pool. Contexts put after Close are dropped.
func (p *Pool) Put(c *Context) {
	if c == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	if p.free == nil {
		p.free = make(map[image.Point][]*Context)
	}
	key := image.Pt(c.Width(), c.Height())
	p.free[key] = append(p.free[key], c)
}

// Len reports the number of idle contexts.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, list := range p.free {
		n += len(list)
	}
	return n
}

// Close releases the idle contexts and stops pooling.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.free = nil
	p.closed = true
}
