package pipeline

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"irkit/internal/diag"
	"irkit/internal/ir"
	"irkit/internal/observ"
)

// Pass is one named transformation over a module root. A pass mutates the
// module in place through the rewrite machinery and reports failure through
// its error.
type Pass struct {
	Name string
	Run  func(ctx context.Context, module *ir.Operation) error
}

// Pipeline runs passes over a module in order, verifying between passes when
// a registry is supplied.
type Pipeline struct {
	passes   []Pass
	registry *ir.Registry
	timer    *observ.Timer
	reporter diag.Reporter
}

// New builds a pipeline over the given passes.
func New(passes ...Pass) *Pipeline {
	return &Pipeline{passes: passes}
}

// WithVerifier makes the pipeline verify the module after every pass using
// the registry's kind hooks.
func (p *Pipeline) WithVerifier(r *ir.Registry) *Pipeline {
	p.registry = r
	return p
}

// WithTimer makes the pipeline record per-pass timings.
func (p *Pipeline) WithTimer(t *observ.Timer) *Pipeline {
	p.timer = t
	return p
}

// WithReporter makes the pipeline report pass and verification failures as
// diagnostics in addition to returning them. RunAll callers must hand in a
// concurrency-safe reporter such as diag.SyncReporter.
func (p *Pipeline) WithReporter(r diag.Reporter) *Pipeline {
	p.reporter = r
	return p
}

// Run executes every pass in order on the module. The first failing pass or
// inter-pass verification stops the run; the module is left in whatever
// state the failing step produced.
func (p *Pipeline) Run(ctx context.Context, module *ir.Operation) error {
	for _, pass := range p.passes {
		if err := ctx.Err(); err != nil {
			return err
		}

		idx := -1
		if p.timer != nil {
			idx = p.timer.Begin(pass.Name)
		}
		err := pass.Run(ctx, module)
		if p.timer != nil {
			p.timer.End(idx, "")
		}
		if err != nil {
			err = fmt.Errorf("pass %s: %w", pass.Name, err)
			diag.ReportError(p.reporter, diag.PipePassFailed, module.Ref(), err.Error())
			return err
		}

		if p.registry != nil {
			if err := ir.Verify(module); err != nil {
				err = fmt.Errorf("pass %s left the module inconsistent: %w", pass.Name, err)
				diag.ReportError(p.reporter, diag.IRVerifyFailed, module.Ref(), err.Error())
				return err
			}
		}
	}
	return nil
}

// RunAll runs the pipeline over independent modules in parallel. Each module
// is owned by exactly one goroutine for the duration of its run; nothing is
// shared between them, so no locking is needed. The first error cancels the
// remaining runs.
func (p *Pipeline) RunAll(ctx context.Context, modules []*ir.Operation, jobs int) error {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(modules)))

	for _, module := range modules {
		module := module
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			return p.Run(gctx, module)
		})
	}

	return g.Wait()
}
