// Package driver orchestrates compilation of specification files: loading,
// expansion, parallel directory walks and the compile cache.
package driver

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"vizc/internal/compositemark"
	"vizc/internal/config"
	"vizc/internal/diag"
	"vizc/internal/observ"
	"vizc/internal/spec"
)

// SpecSuffix marks the input files a directory walk picks up.
const SpecSuffix = ".vl.json"

// Result is the outcome of compiling one specification file.
type Result struct {
	Path   string
	Output []byte // compiled layered spec; nil when Err is set
	Bag    *diag.Bag
	Err    error
	Cached bool
}

// Options controls a compile run.
type Options struct {
	Config         *config.Config
	MaxDiagnostics int
	Jobs           int        // parallel workers for directory walks; 0 means NumCPU
	Cache          *DiskCache // nil disables caching
	Timer          *observ.Timer
}

func (o *Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return 100
	}
	return o.MaxDiagnostics
}

func (o *Options) jobs() int {
	if o.Jobs <= 0 {
		return runtime.NumCPU()
	}
	return o.Jobs
}

// ExpandBytes compiles one specification document. Non-composite unit specs
// pass through unchanged with an info diagnostic; the bag always carries
// whatever diagnostics the run produced, even alongside an error.
func ExpandBytes(data []byte, opts *Options) ([]byte, *diag.Bag, error) {
	bag := diag.NewBag(opts.maxDiagnostics())
	reporter := diag.NewDedupReporter(diag.NewBagReporter(bag))

	u, err := spec.ParseUnit(data)
	if err != nil {
		code := diag.DocBadJSON
		if errors.Is(err, spec.ErrNotUnit) {
			code = diag.DocNotUnit
		}
		diag.ReportError(reporter, code, "", err.Error()).Emit()
		return nil, bag, err
	}

	if !compositemark.IsComposite(u) {
		diag.ReportInfo(reporter, diag.DrvInfo, "mark",
			"mark needs no expansion; document passed through").Emit()
		out, err := json.MarshalIndent(u, "", "  ")
		return out, bag, err
	}

	layered, err := compositemark.Expand(u, opts.Config, reporter)
	if err != nil {
		return nil, bag, err
	}
	out, err := json.MarshalIndent(layered, "", "  ")
	return out, bag, err
}

// ExpandFile compiles one file, consulting the cache when enabled.
func ExpandFile(path string, opts *Options) Result {
	res := Result{Path: path, Bag: diag.NewBag(opts.maxDiagnostics())}

	data, err := os.ReadFile(path)
	if err != nil {
		diag.ReportError(diag.NewBagReporter(res.Bag), diag.DocUnreadable, "", err.Error()).Emit()
		res.Err = err
		return res
	}

	var key Digest
	if opts.Cache != nil {
		key = CacheKey(data, opts.Config.Fingerprint())
		payload, status := opts.Cache.Load(key)
		switch status {
		case CacheHit:
			res.Output = payload.Output
			res.Cached = true
			replayDiags(payload.Diags, res.Bag)
			return res
		case CacheStale:
			diag.ReportInfo(diag.NewBagReporter(res.Bag), diag.DrvCacheStale, "",
				"cache entry invalidated; recompiling").Emit()
		case CacheMiss:
			diag.ReportInfo(diag.NewBagReporter(res.Bag), diag.DrvCacheMiss, "",
				"compile cache miss").Emit()
		}
	}

	var t int
	if opts.Timer != nil {
		t = opts.Timer.Begin("expand " + filepath.Base(path))
	}
	out, bag, err := ExpandBytes(data, opts)
	if opts.Timer != nil {
		opts.Timer.End(t, "")
	}
	res.Output = out
	res.Bag.Merge(bag)
	res.Err = err

	if err == nil && opts.Cache != nil {
		// Cache failures are not compile failures.
		_ = opts.Cache.Store(key, &DiskPayload{
			Output: out,
			Diags:  cacheDiags(bag),
		})
	}
	return res
}

// listSpecFiles returns the sorted list of all spec files under dir.
func listSpecFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SpecSuffix) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Sort for a deterministic result order.
	sort.Strings(files)
	return files, nil
}

// ExpandPath compiles path, which may name a single file or a directory of
// spec files. Directory entries compile in parallel; results come back in
// deterministic path order.
func ExpandPath(ctx context.Context, path string, opts *Options) ([]Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []Result{ExpandFile(path, opts)}, nil
	}

	files, err := listSpecFiles(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("no " + SpecSuffix + " files under " + path)
	}

	results := make([]Result, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs())
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = ExpandFile(file, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
