package blockcache

import (
	"math"

	"github.com/olivier-w/wavview/internal/samples"
)

// SumOfSquaresRaw sums the squares of count normalized samples from start
// without consulting the cache.
func (c *Cache) SumOfSquaresRaw(ch samples.Channel, start, count int) float64 {
	if count <= 0 {
		return 0
	}
	c.stats.RawScans++

	var total float64
	for i := start; i < start+count; i++ {
		f := float64(c.store.At(ch, i)) / sampleScale
		total += f * f
	}
	return total
}

func (c *Cache) sumSpan(ch samples.Channel, first, last int) float64 {
	return c.SumOfSquaresRaw(ch, first, last-first+1)
}

// fillEnergy sums block [first, last] in index order so the stored total
// does not depend on which query triggered the fill. common is the part of
// the sum that falls inside [start, end].
func (c *Cache) fillEnergy(ch samples.Channel, first, last, start, end int) (blockTotal, common float64) {
	c.stats.RawScans++
	lo, hi := max(first, start), min(last, end)
	for i := first; i <= last; i++ {
		f := float64(c.store.At(ch, i)) / sampleScale
		sq := f * f
		blockTotal += sq
		if i >= lo && i <= hi {
			common += sq
		}
	}
	return blockTotal, common
}

// SumOfSquares returns the sum of squared normalized samples over count
// samples from start, clipped to the end of the store.
func (c *Cache) SumOfSquares(ch samples.Channel, start, count int) float64 {
	count, ok := c.clampRange(start, count)
	if !ok {
		return 0
	}
	end := start + count - 1
	firstBlock := start / BlockSize
	lastBlock := end / BlockSize
	c.checkBlock(firstBlock)
	c.checkBlock(lastBlock)

	var total float64
	for b := firstBlock; b <= lastBlock; b++ {
		first, last := c.blockBounds(b)
		stat := &c.blocks[b].energy[ch]

		switch {
		case !stat.filled:
			blockTotal, common := c.fillEnergy(ch, first, last, start, end)
			total += common

			stat.sum = blockTotal
			stat.filled = true
			c.stats.EnergyFills++

		case first >= start && last <= end:
			total += stat.sum

		default:
			total += c.sumSpan(ch, max(first, start), min(last, end))
		}
	}
	return total
}

// RMS returns the root-mean-square of count samples from start, normalized
// to full scale 1.0. Callers pass count >= 1; anything less yields 0.
func (c *Cache) RMS(ch samples.Channel, start, count int) float64 {
	if count <= 0 {
		return 0
	}
	return math.Sqrt(c.SumOfSquares(ch, start, count) / float64(count))
}
