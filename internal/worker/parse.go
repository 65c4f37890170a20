package worker

import (
	"sort"

	"github.com/lgbarn/cgtcase/internal/config"
	"github.com/lgbarn/cgtcase/internal/parser"
	"github.com/lgbarn/cgtcase/internal/registry"
)

// ParseFileFunc returns a ProcessFunc that parses each item's file with a
// parser of its own. Workers share only reg, which must be frozen.
func ParseFileFunc(reg *registry.Registry, cfg *config.Config) ProcessFunc {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return func(item WorkItem) ProcessResult {
		res := ProcessResult{Path: item.Path, Index: item.Index}

		fileCfg := cfg.Clone()
		fileCfg.CurrentInputFile = item.Path

		p, err := parser.FromFile(item.Path, reg, fileCfg)
		if err != nil {
			res.Err = err
			return res
		}
		res.Cases, res.Err = p.ParseAll()
		res.WarnedVersion = p.WarnedWrongVersion()
		if err := p.Close(); err != nil && res.Err == nil {
			res.Err = err
		}
		return res
	}
}

// ParseFiles runs process over paths with the given number of workers and
// returns the results in path order.
func ParseFiles(paths []string, process ProcessFunc, workers int) []ProcessResult {
	pool := NewPool(process, WithWorkers(workers), WithBufferSize(2*workers))
	pool.Start()

	go func() {
		for i, path := range paths {
			pool.Submit(WorkItem{Path: path, Index: i})
		}
		pool.Close()
	}()

	results := make([]ProcessResult, 0, len(paths))
	for res := range pool.Results() {
		results = append(results, res)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })
	return results
}
