// Package blockcache answers min/max and energy queries over arbitrary
// sample ranges, summarizing fixed-size blocks lazily as queries touch them.
package blockcache

import (
	"fmt"
	"math"

	"github.com/olivier-w/wavview/internal/samples"
)

// BlockSize is the number of sample indices summarized by one block.
const BlockSize = 1024

// sampleScale converts a 16-bit sample to [-1.0, 1.0].
const sampleScale = 32768.0

const (
	maxSample = math.MaxInt16
	minSample = math.MinInt16
)

type peakStat struct {
	filled   bool
	min, max int
}

type energyStat struct {
	filled bool
	sum    float64
}

type block struct {
	peak   [samples.Channels]peakStat
	energy [samples.Channels]energyStat
}

// Stats counts the work done by a Cache.
type Stats struct {
	PeakFills   int
	EnergyFills int
	RawScans    int
}

// Cache summarizes a Store in blocks. It is not safe for concurrent use.
type Cache struct {
	store  *samples.Store
	blocks []block
	stats  Stats
}

// New allocates an unfilled cache for store.
func New(store *samples.Store) *Cache {
	n := (store.NumSamples() + BlockSize - 1) / BlockSize
	return &Cache{
		store:  store,
		blocks: make([]block, n),
	}
}

// NumBlocks returns the number of blocks covering the store.
func (c *Cache) NumBlocks() int { return len(c.blocks) }

// Stats returns the fill and scan counters.
func (c *Cache) Stats() Stats { return c.stats }

// Filled reports which statistics of block b are cached for channel ch.
func (c *Cache) Filled(ch samples.Channel, b int) (peak, energy bool) {
	c.checkBlock(b)
	blk := &c.blocks[b]
	return blk.peak[ch].filled, blk.energy[ch].filled
}

// Warmth returns the fraction of peak entries filled across both channels.
func (c *Cache) Warmth() float64 {
	if len(c.blocks) == 0 {
		return 1
	}
	filled := 0
	for i := range c.blocks {
		for ch := 0; ch < samples.Channels; ch++ {
			if c.blocks[i].peak[ch].filled {
				filled++
			}
		}
	}
	return float64(filled) / float64(len(c.blocks)*samples.Channels)
}

func (c *Cache) checkBlock(b int) {
	if b < 0 || b >= len(c.blocks) {
		panic(fmt.Sprintf("blockcache: block %d out of range [0,%d)", b, len(c.blocks)))
	}
}

// clampRange limits count to the end of the store. ok is false when nothing
// is left to read.
func (c *Cache) clampRange(start, count int) (int, bool) {
	n := c.store.NumSamples()
	if count > n-start {
		count = n - start
	}
	return count, count > 0 && start >= 0
}

// blockBounds returns the first and last sample index of block b.
func (c *Cache) blockBounds(b int) (first, last int) {
	first = b * BlockSize
	last = (b+1)*BlockSize - 1
	if n := c.store.NumSamples(); last >= n {
		last = n - 1
	}
	return first, last
}
