package codec

import "sync"

// scratchPool is a thread-safe pool of working images.
//
// Images are grouped by dimensions so conversions of same-sized bitmaps,
// such as the levels of many mip chains, reuse their float buffers.
type scratchPool struct {
	mu      sync.Mutex
	buckets map[scratchKey][]*floatImage
	maxSize int // max images per bucket
}

type scratchKey struct {
	width  int
	height int
}

func newScratchPool(maxPerBucket int) *scratchPool {
	return &scratchPool{
		buckets: make(map[scratchKey][]*floatImage),
		maxSize: maxPerBucket,
	}
}

// get returns a zeroed working image of the given size.
func (p *scratchPool) get(width, height int) *floatImage {
	key := scratchKey{width: width, height: height}

	p.mu.Lock()
	bucket := p.buckets[key]
	if n := len(bucket); n > 0 {
		img := bucket[n-1]
		p.buckets[key] = bucket[:n-1]
		p.mu.Unlock()

		clear(img.pix)
		return img
	}
	p.mu.Unlock()

	return &floatImage{
		width:  width,
		height: height,
		pix:    make([]float32, width*height*4),
	}
}

// put returns img to the pool. Images beyond the bucket limit are dropped.
func (p *scratchPool) put(img *floatImage) {
	if img == nil {
		return
	}
	key := scratchKey{width: img.width, height: img.height}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, img)
}

// count returns the number of pooled images for a size.
func (p *scratchPool) count(width, height int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buckets[scratchKey{width: width, height: height}])
}

var defaultScratch = newScratchPool(4)
