package blockcache

import (
	"math"
	"math/rand"
	"testing"

	"github.com/olivier-w/wavview/internal/samples"
)

func noiseStore(n int, seed int64) *samples.Store {
	rng := rand.New(rand.NewSource(seed))
	vals := make([]int16, n*2)
	for i := range vals {
		vals[i] = int16(rng.Intn(65536) - 32768)
	}
	return samples.New(vals)
}

// scanMinMax is an independent per-sample reference.
func scanMinMax(s *samples.Store, ch samples.Channel, start, count int) (int, int) {
	if count > s.NumSamples()-start {
		count = s.NumSamples() - start
	}
	if count <= 0 {
		return 0, 0
	}
	lo, hi := math.MaxInt, math.MinInt
	for i := start; i < start+count; i++ {
		v := int(s.At(ch, i))
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

func TestMinMaxMatchesDirectScan(t *testing.T) {
	store := noiseStore(5000, 1)
	c := New(store)
	rng := rand.New(rand.NewSource(2))

	for i := 0; i < 2000; i++ {
		ch := samples.Channel(rng.Intn(2))
		start := rng.Intn(5200)
		count := rng.Intn(3000)
		gotLo, gotHi := c.MinMax(ch, start, count)
		wantLo, wantHi := scanMinMax(store, ch, start, count)
		if gotLo != wantLo || gotHi != wantHi {
			t.Fatalf("MinMax(%d, %d, %d) = (%d, %d), want (%d, %d)", ch, start, count, gotLo, gotHi, wantLo, wantHi)
		}
	}
}

func TestMinMaxRawOddAndEvenCounts(t *testing.T) {
	store := samples.New([]int16{5, 0, -3, 0, 9, 0, 1, 0, -7, 0})
	c := New(store)

	tests := []struct {
		start, count int
		lo, hi       int
	}{
		{0, 0, 0, 0},
		{0, 1, 5, 5},
		{0, 2, -3, 5},
		{0, 3, -3, 9},
		{1, 4, -7, 9},
		{3, 2, -7, 1},
	}
	for _, tt := range tests {
		lo, hi := c.MinMaxRaw(samples.Left, tt.start, tt.count)
		if lo != tt.lo || hi != tt.hi {
			t.Fatalf("MinMaxRaw(%d, %d) = (%d, %d), want (%d, %d)", tt.start, tt.count, lo, hi, tt.lo, tt.hi)
		}
	}
}

func TestMinMaxOutOfRangeIsSilence(t *testing.T) {
	c := New(noiseStore(100, 3))
	if lo, hi := c.MinMax(samples.Left, 100, 50); lo != 0 || hi != 0 {
		t.Fatalf("expected silence past the end, got (%d, %d)", lo, hi)
	}
	if lo, hi := c.MinMax(samples.Right, 500, 10); lo != 0 || hi != 0 {
		t.Fatalf("expected silence far past the end, got (%d, %d)", lo, hi)
	}
	if c.Stats().PeakFills != 0 {
		t.Fatalf("expected no fills for empty ranges, got %d", c.Stats().PeakFills)
	}
}

func TestHugeCountClampsToEnd(t *testing.T) {
	store := noiseStore(5000, 9)
	c := New(store)

	lo, hi := c.MinMax(samples.Left, 10, math.MaxInt)
	wantLo, wantHi := scanMinMax(store, samples.Left, 10, 4990)
	if int(lo) != wantLo || int(hi) != wantHi {
		t.Fatalf("MinMax(10, MaxInt) = (%d, %d), want (%d, %d)", lo, hi, wantLo, wantHi)
	}

	got := c.SumOfSquares(samples.Right, 10, math.MaxInt)
	want := c.SumOfSquaresRaw(samples.Right, 10, 4990)
	if math.Abs(got-want) > 1e-9*want {
		t.Fatalf("SumOfSquares(10, MaxInt) = %v, want %v", got, want)
	}

	if rms := c.RMS(samples.Right, 10, math.MaxInt); rms < 0 || math.IsNaN(rms) {
		t.Fatalf("RMS(10, MaxInt) = %v, want a finite non-negative value", rms)
	}
}

func TestSinglePeakScenario(t *testing.T) {
	vals := make([]int16, 4096*2)
	vals[2000*2] = 32767
	c := New(samples.New(vals))

	if lo, hi := c.MinMax(samples.Left, 0, 4096); lo != 0 || hi != 32767 {
		t.Fatalf("expected (0, 32767), got (%d, %d)", lo, hi)
	}
	if lo, hi := c.MinMax(samples.Left, 0, 1024); lo != 0 || hi != 0 {
		t.Fatalf("expected (0, 0) before the peak, got (%d, %d)", lo, hi)
	}
	if lo, hi := c.MinMax(samples.Right, 0, 4096); lo != 0 || hi != 0 {
		t.Fatalf("expected silent right channel, got (%d, %d)", lo, hi)
	}
}

func TestRepeatedQueriesReuseCache(t *testing.T) {
	c := New(noiseStore(10*BlockSize+17, 4))

	lo1, hi1 := c.MinMax(samples.Left, 0, 10*BlockSize+17)
	rms1 := c.RMS(samples.Left, 0, 10*BlockSize+17)
	before := c.Stats()

	lo2, hi2 := c.MinMax(samples.Left, 0, 10*BlockSize+17)
	rms2 := c.RMS(samples.Left, 0, 10*BlockSize+17)
	after := c.Stats()

	if lo1 != lo2 || hi1 != hi2 {
		t.Fatalf("min/max changed between calls: (%d, %d) vs (%d, %d)", lo1, hi1, lo2, hi2)
	}
	if math.Float64bits(rms1) != math.Float64bits(rms2) {
		t.Fatalf("rms not bit-identical: %v vs %v", rms1, rms2)
	}
	if after != before {
		t.Fatalf("expected no recomputation on repeat, stats went %+v -> %+v", before, after)
	}
}

func TestRepeatedPartialQueryIsBitIdentical(t *testing.T) {
	c := New(noiseStore(4*BlockSize, 5))

	first := c.RMS(samples.Right, 300, 2500)
	second := c.RMS(samples.Right, 300, 2500)
	if math.Float64bits(first) != math.Float64bits(second) {
		t.Fatalf("rms not bit-identical: %v vs %v", first, second)
	}
}

func TestRMSMatchesDirectComputation(t *testing.T) {
	store := noiseStore(6000, 6)
	c := New(store)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		ch := samples.Channel(rng.Intn(2))
		start := rng.Intn(5900)
		count := 1 + rng.Intn(6000-start-1)
		var sum float64
		for i := start; i < start+count; i++ {
			f := float64(store.At(ch, i)) / 32768.0
			sum += f * f
		}
		want := math.Sqrt(sum / float64(count))
		got := c.RMS(ch, start, count)
		if math.Abs(got-want) > 1e-9*want {
			t.Fatalf("RMS(%d, %d, %d) = %v, want %v", ch, start, count, got, want)
		}
	}
}

func TestRMSZeroCountIsZero(t *testing.T) {
	c := New(noiseStore(10, 8))
	if got := c.RMS(samples.Left, 0, 0); got != 0 {
		t.Fatalf("expected 0 for empty window, got %v", got)
	}
}

func TestFillDoesNotTouchNeighbours(t *testing.T) {
	c := New(noiseStore(3*BlockSize, 9))

	c.MinMax(samples.Left, BlockSize+10, 20)
	c.SumOfSquares(samples.Left, BlockSize+10, 20)

	for b := 0; b < c.NumBlocks(); b++ {
		for _, ch := range []samples.Channel{samples.Left, samples.Right} {
			peak, energy := c.Filled(ch, b)
			want := b == 1 && ch == samples.Left
			if peak != want || energy != want {
				t.Fatalf("block %d channel %d: filled (%v, %v), want %v", b, ch, peak, energy, want)
			}
		}
	}

	snapshot := c.blocks[0]
	c.MinMax(samples.Left, 2*BlockSize, BlockSize)
	if c.blocks[0] != snapshot {
		t.Fatal("filling block 2 changed block 0")
	}
}

func TestPartialFillStoresWholeBlock(t *testing.T) {
	store := noiseStore(2*BlockSize, 10)
	c := New(store)

	c.MinMax(samples.Left, 100, 10)
	c.SumOfSquares(samples.Left, 100, 10)

	wantLo, wantHi := scanMinMax(store, samples.Left, 0, BlockSize)
	stat := c.blocks[0].peak[samples.Left]
	if stat.min != wantLo || stat.max != wantHi {
		t.Fatalf("cached block (%d, %d), want whole-block (%d, %d)", stat.min, stat.max, wantLo, wantHi)
	}

	fresh := New(store)
	full := fresh.SumOfSquares(samples.Left, 0, BlockSize)
	if got := c.blocks[0].energy[samples.Left].sum; got != full {
		t.Fatalf("cached energy %v, want %v regardless of fill order", got, full)
	}
}

func TestShortFinalBlock(t *testing.T) {
	store := noiseStore(BlockSize+3, 11)
	c := New(store)
	if c.NumBlocks() != 2 {
		t.Fatalf("expected 2 blocks, got %d", c.NumBlocks())
	}
	lo, hi := c.MinMax(samples.Right, BlockSize, 100)
	wantLo, wantHi := scanMinMax(store, samples.Right, BlockSize, 3)
	if lo != wantLo || hi != wantHi {
		t.Fatalf("got (%d, %d), want (%d, %d)", lo, hi, wantLo, wantHi)
	}
}

func TestWarmth(t *testing.T) {
	c := New(noiseStore(4*BlockSize, 12))
	if c.Warmth() != 0 {
		t.Fatalf("expected cold cache, got %v", c.Warmth())
	}
	c.MinMax(samples.Left, 0, 4*BlockSize)
	if got := c.Warmth(); got != 0.5 {
		t.Fatalf("expected half warm, got %v", got)
	}
}

func TestCheckBlockPanics(t *testing.T) {
	c := New(noiseStore(10, 13))
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range block")
		}
	}()
	c.Filled(samples.Left, 5)
}
