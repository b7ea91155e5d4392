// Command bench runs a synthetic image-request workload against the cache and
// exposes optional pprof/Prometheus endpoints.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"os"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/IvanBrykalov/bitmapcache/bitmap"
	"github.com/IvanBrykalov/bitmapcache/cache"
	pmet "github.com/IvanBrykalov/bitmapcache/metrics/prom"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "bench:", err)
		os.Exit(1)
	}
}

func run() error {
	// ---- Flags ----
	var (
		profile = flag.String("config", "", "YAML workload profile; flags set explicitly override it")
		maxSize = flag.Int64("max_size", 0, "cache budget in bytes (0 = derive from memory limit)")

		workers  = flag.Int("workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
		duration = flag.Duration("duration", 10*time.Second, "benchmark duration")
		readPct  = flag.Int("reads", 80, "read percentage [0..100]")
		invPct   = flag.Int("invalidate", 1, "invalidation percentage [0..100]")

		resources = flag.Int("resources", 100_000, "number of distinct images")
		variants  = flag.Int("variants", 3, "sizes requested per image")
		side      = flag.Int("side", 128, "thumbnail side in pixels (variant i is side<<i)")
		zipfS     = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew)")
		zipfV     = flag.Float64("zipf_v", 1.0, "Zipf v")
		seed      = flag.Int64("seed", time.Now().UnixNano(), "random seed")

		pprofAddr   = flag.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", ":8080", "serve Prometheus metrics at addr; empty = disabled")
		logJSON     = flag.Bool("log_json", false, "log as JSON instead of text")
		verbose     = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	cfg := defaultConfig()
	if *profile != "" {
		var err error
		if cfg, err = loadConfig(*profile); err != nil {
			return err
		}
	}
	// Explicit flags win over the profile.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "max_size":
			cfg.MaxSize = *maxSize
		case "workers":
			cfg.Workers = *workers
		case "duration":
			cfg.Duration = *duration
		case "reads":
			cfg.ReadPct = *readPct
		case "invalidate":
			cfg.InvalidatePct = *invPct
		case "resources":
			cfg.Resources = *resources
		case "variants":
			cfg.Variants = *variants
		case "side":
			cfg.Side = *side
		case "zipf_s":
			cfg.ZipfS = *zipfS
		case "zipf_v":
			cfg.ZipfV = *zipfV
		}
	})
	if err := cfg.validate(); err != nil {
		return err
	}

	logger := newLogger(*logJSON, *verbose)
	logger.Info("starting", "config", cfg)

	// ---- pprof server (on DefaultServeMux) ----
	if *pprofAddr != "" {
		go func() {
			logger.Info("pprof: serving", "addr", *pprofAddr)
			logger.Error("pprof server stopped", "err", http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	// ---- Prometheus metrics (on DefaultServeMux) ----
	metrics := pmet.New(nil, "bitmapcache", "bench", nil)
	if *metricsAddr != "" {
		http.Handle("/metrics", promhttp.Handler())
		go func() {
			logger.Info("metrics: serving", "addr", *metricsAddr)
			logger.Error("metrics server stopped", "err", http.ListenAndServe(*metricsAddr, nil))
		}()
	}

	// ---- Build cache ----
	opt := cache.Options[*bitmap.Bitmap]{
		SizeOf:  bitmap.Bytes,
		Metrics: metrics,
		Logger:  logger,
	}
	var budget cache.MemoryBudget
	if cfg.MaxSize > 0 {
		budget = func() int64 { return cfg.MaxSize }
	}
	c, err := cache.NewFromBudget(budget, opt)
	if err != nil {
		return err
	}
	logger.Info("cache ready", "max_size", c.MaxSize())

	// Bitmaps only carry dimensions: the cache accounts bytes, nothing is
	// actually decoded or allocated per request.
	thumbs := make([]*bitmap.Bitmap, cfg.Variants)
	for i := range thumbs {
		s := cfg.Side << i
		thumbs[i] = &bitmap.Bitmap{Width: s, Height: s}
	}

	// ---- Load generation ----
	var reads, writes, invalidations, hits, total uint64
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Duration)
	defer cancel()

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < cfg.Workers; w++ {
		g.Go(func() error {
			// Each worker gets its own RNG + Zipf (rand.Rand is NOT goroutine-safe).
			r := rand.New(rand.NewSource(*seed + int64(w)*9973))
			zipf := rand.NewZipf(r, cfg.ZipfS, cfg.ZipfV, uint64(cfg.Resources-1))

			for {
				select {
				case <-ctx.Done():
					return nil
				default:
				}

				atomic.AddUint64(&total, 1)
				res := "bench://img/" + strconv.FormatUint(zipf.Uint64(), 10)
				vi := r.Intn(cfg.Variants)
				key := cache.Key(res, cache.Variant{Width: thumbs[vi].Width, Height: thumbs[vi].Height})

				switch p := r.Intn(100); {
				case p < cfg.InvalidatePct:
					atomic.AddUint64(&invalidations, 1)
					c.InvalidatePrefix(res)
				case p < cfg.InvalidatePct+cfg.ReadPct:
					atomic.AddUint64(&reads, 1)
					_, ok, err := c.Get(key)
					if err != nil {
						return err
					}
					if ok {
						atomic.AddUint64(&hits, 1)
					}
				default:
					atomic.AddUint64(&writes, 1)
					if err := c.Set(key, thumbs[vi]); err != nil {
						return err
					}
				}
			}
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	// ---- Report ----
	ops := atomic.LoadUint64(&total)
	readsN := atomic.LoadUint64(&reads)
	hitRate := 0.0
	if readsN > 0 {
		hitRate = float64(atomic.LoadUint64(&hits)) / float64(readsN) * 100
	}
	s := c.Stats()

	fmt.Printf("workers=%d resources=%d variants=%d dur=%v seed=%d\n",
		cfg.Workers, cfg.Resources, cfg.Variants, elapsed, *seed)
	fmt.Printf("ops=%d (%.0f ops/s)  reads=%d  writes=%d  invalidations=%d\n",
		ops, float64(ops)/elapsed.Seconds(), readsN, atomic.LoadUint64(&writes), atomic.LoadUint64(&invalidations))
	fmt.Printf("hit-rate=%.2f%%  size=%d/%d  entries=%d  puts=%d  evictions=%d\n",
		hitRate, s.Size, s.MaxSize, s.Entries, s.Puts, s.Evictions)
	return nil
}

func newLogger(json, verbose bool) *slog.Logger {
	lvl := slog.LevelInfo
	if verbose {
		lvl = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if json {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
