package cache

import (
	"math/rand"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/IvanBrykalov/bitmapcache/bitmap"
)

// benchmarkMix exercises a read/write mix of thumbnails against a warm cache.
// Every call serializes on the one cache lock, so this measures contention
// as much as the hot path.
func benchmarkMix(b *testing.B, readsPct int) {
	thumb := &bitmap.Bitmap{Width: 64, Height: 64} // 16 KiB, no pixels allocated
	c, err := New(Options[*bitmap.Bitmap]{
		MaxSize: 32_768 * bitmap.Bytes(thumb),
		SizeOf:  bitmap.Bytes,
	})
	if err != nil {
		b.Fatal(err)
	}

	// Preload half the budget to get a realistic hit-rate.
	for i := 0; i < 16_384; i++ {
		_ = c.Set(Key("img:"+strconv.Itoa(i), Variant{Width: 64, Height: 64}), thumb)
	}

	b.ReportAllocs()
	b.ResetTimer()

	var seed int64 = 1
	keyMask := (1 << 16) - 1

	b.RunParallel(func(pb *testing.PB) {
		r := rand.New(rand.NewSource(atomic.AddInt64(&seed, 1)))
		i := 0
		for pb.Next() {
			k := "img:" + strconv.Itoa(i&keyMask) + "\nresize:64x64\n"
			if r.Intn(100) < readsPct {
				_, _, _ = c.Get(k)
			} else {
				_ = c.Set(k, thumb)
			}
			i++
		}
	})
}

func BenchmarkCache_90r10w(b *testing.B) { benchmarkMix(b, 90) }
func BenchmarkCache_50r50w(b *testing.B) { benchmarkMix(b, 50) }

// BenchmarkCache_InvalidatePrefix measures the full scan done per invalidation.
func BenchmarkCache_InvalidatePrefix(b *testing.B) {
	c, err := New(Options[[]byte]{MaxSize: 1 << 30, SizeOf: byteSize})
	if err != nil {
		b.Fatal(err)
	}
	val := payload(1)
	for i := 0; i < 10_000; i++ {
		_ = c.Set("img:"+strconv.Itoa(i)+"\nv\n", val)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res := "img:" + strconv.Itoa(i%10_000)
		c.InvalidatePrefix(res)
		_ = c.Set(res+"\nv\n", val)
	}
}
