//go:build go1.18

package cache

import (
	"strings"
	"testing"
)

// Fuzz Set/Get/InvalidatePrefix under arbitrary keys and sizes.
// Guards against panics and checks the size invariant after each step.
func FuzzCache_SetGetInvalidate(f *testing.F) {
	f.Add("a", 1, "a")
	f.Add("img1\nsmall", 40, "img1")
	f.Add("\n", 0, "")
	f.Add("αβγ\nδ", 99, "αβγ")
	f.Add("emoji🙂\n🙂", 100, "emoji")
	f.Add(strings.Repeat("x", 1024), 7, "x")

	f.Fuzz(func(t *testing.T, k string, n int, prefix string) {
		const limit = 1 << 12
		if len(k) > limit {
			k = k[:limit]
		}
		if n < 0 {
			n = -n
		}
		n %= 256

		c := newBytes(t, 100)

		err := c.Set(k, payload(n))
		if k == "" {
			if !IsInvalidArgument(err) {
				t.Fatalf("empty key: want InvalidInput, got %v", err)
			}
			return
		}
		if err != nil {
			t.Fatalf("Set: %v", err)
		}

		v, ok, err := c.Get(k)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if n > 100 {
			if ok || c.Size() != 0 {
				t.Fatalf("oversized value must not be stored (ok=%v size=%d)", ok, c.Size())
			}
			return
		}
		if !ok || len(v) != n || c.Size() != int64(n) {
			t.Fatalf("after Set/Get: ok=%v len=%d size=%d want %d", ok, len(v), c.Size(), n)
		}

		removed := c.InvalidatePrefix(prefix)
		if want := hasResource(k, prefix); (removed == 1) != want {
			t.Fatalf("InvalidatePrefix(%q) on %q removed %d, want match=%v", prefix, k, removed, want)
		}
		if got := sumSizes(t, c); got != c.Size() {
			t.Fatalf("size %d != sum %d", c.Size(), got)
		}
		if c.EvictionCount() != 0 {
			t.Fatalf("invalidation counted as eviction")
		}
	})
}
