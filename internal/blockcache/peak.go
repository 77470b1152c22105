package blockcache

import "github.com/olivier-w/wavview/internal/samples"

// MinMaxRaw scans count samples from start without consulting the cache.
// Samples are compared in pairs, first against each other and then against
// the running extremes. An empty range reads as silence.
func (c *Cache) MinMaxRaw(ch samples.Channel, start, count int) (lo, hi int) {
	if count <= 0 {
		return 0, 0
	}
	c.stats.RawScans++

	lo, hi = maxSample, minSample
	if count&1 == 1 {
		lo = int(c.store.At(ch, start))
		hi = lo
		start++
		count--
	}
	for i := 0; i < count; i += 2 {
		a := int(c.store.At(ch, start+i))
		b := int(c.store.At(ch, start+i+1))
		if b < a {
			a, b = b, a
		}
		if a < lo {
			lo = a
		}
		if b > hi {
			hi = b
		}
	}
	return lo, hi
}

// minMaxSpan is MinMaxRaw over the inclusive range [first, last].
func (c *Cache) minMaxSpan(ch samples.Channel, first, last int) (int, int) {
	return c.MinMaxRaw(ch, first, last-first+1)
}

// MinMax returns the smallest and largest sample among count samples from
// start. The range is clipped to the end of the store; a range with nothing
// left in it reads as silence.
func (c *Cache) MinMax(ch samples.Channel, start, count int) (lo, hi int) {
	count, ok := c.clampRange(start, count)
	if !ok {
		return 0, 0
	}
	end := start + count - 1
	firstBlock := start / BlockSize
	lastBlock := end / BlockSize
	c.checkBlock(firstBlock)
	c.checkBlock(lastBlock)

	lo, hi = maxSample, minSample
	for b := firstBlock; b <= lastBlock; b++ {
		first, last := c.blockBounds(b)
		stat := &c.blocks[b].peak[ch]

		switch {
		case !stat.filled:
			// Summarize the whole block while we are here, but only the
			// overlap counts toward this query.
			blockLo, blockHi := maxSample, minSample
			if first < start {
				blockLo, blockHi = c.minMaxSpan(ch, first, start-1)
			}
			if last > end {
				l, h := c.minMaxSpan(ch, end+1, last)
				blockLo = min(blockLo, l)
				blockHi = max(blockHi, h)
			}
			l, h := c.minMaxSpan(ch, max(first, start), min(last, end))
			lo = min(lo, l)
			hi = max(hi, h)

			stat.min = min(blockLo, l)
			stat.max = max(blockHi, h)
			stat.filled = true
			c.stats.PeakFills++

		case first >= start && last <= end:
			lo = min(lo, stat.min)
			hi = max(hi, stat.max)

		default:
			// Cached values describe the whole block; scan just the overlap.
			l, h := c.minMaxSpan(ch, max(first, start), min(last, end))
			lo = min(lo, l)
			hi = max(hi, h)
		}
	}
	return lo, hi
}
