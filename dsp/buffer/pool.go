package buffer

import "sync"

// Pool provides sync.Pool-based Block reuse for renderers that need a scratch
// block per call.
type Pool struct {
	pool     sync.Pool
	channels int
}

// NewPool returns a Pool of blocks with a fixed channel count.
func NewPool(channels int) *Pool {
	p := &Pool{channels: channels}
	p.pool.New = func() any {
		return New(p.channels, 0)
	}
	return p
}

// Get returns a zeroed Block with the requested frame count.
// Callers must return it via Put when done.
func (p *Pool) Get(frames int) *Block {
	b := p.pool.Get().(*Block)
	b.Resize(frames)
	b.Clear()
	return b
}

// Put returns a Block to the pool for reuse.
// The caller must not use the block after calling Put.
func (p *Pool) Put(b *Block) {
	if b == nil || b.NumChannels() != p.channels {
		return
	}
	p.pool.Put(b)
}
