package pfqcore

import (
	"time"

	"github.com/pfq-lang/pfqcore/internal/descr"
	"github.com/pfq-lang/pfqcore/internal/eval"
	"github.com/pfq-lang/pfqcore/internal/group"
	"github.com/pfq-lang/pfqcore/internal/interfaces"
	"github.com/pfq-lang/pfqcore/internal/link"
	"github.com/pfq-lang/pfqcore/internal/logging"
	"github.com/pfq-lang/pfqcore/internal/mpdb"
	"github.com/pfq-lang/pfqcore/internal/node"
	"github.com/pfq-lang/pfqcore/internal/symtab"
)

// Options configures an Engine. The zero value is usable: a reference
// symbol table, a fresh group registry, the default logger, and in-process
// Metrics.
type Options struct {
	// Symbols resolves descriptor symbols at validate/link time. Nil
	// installs the built-in reference table.
	Symbols SymbolTable

	// Logger backs the advisory log_* combinators and install-path
	// diagnostics. Nil falls back to logging.Default().
	Logger *logging.Logger

	// Observer receives run and queue signals. Nil wires the Engine's own
	// Metrics instance.
	Observer Observer
}

// Engine owns the pieces a packet pipeline is assembled from: the symbol
// table, the group registry, metrics, and logging. One Engine typically
// lives for the whole capture session; groups and pipelines come and go
// underneath it.
type Engine struct {
	symbols SymbolTable
	groups  *group.Registry
	log     *logging.Logger
	obs     Observer
	metrics *Metrics
}

// NewEngine builds an Engine from opts; a nil opts takes every default.
func NewEngine(opts *Options) *Engine {
	if opts == nil {
		opts = &Options{}
	}
	e := &Engine{
		groups:  group.NewRegistry(),
		log:     opts.Logger,
		metrics: NewMetrics(),
	}
	if e.log == nil {
		e.log = logging.Default()
	}
	e.symbols = opts.Symbols
	if e.symbols == nil {
		e.symbols = symtab.Reference(e.log)
	}
	e.obs = opts.Observer
	if e.obs == nil {
		e.obs = NewMetricsObserver(e.metrics)
	}
	return e
}

// Metrics returns the Engine's in-process metrics. When a custom Observer
// was supplied, these counters stay at zero.
func (e *Engine) Metrics() *Metrics { return e.metrics }

// AddGroup registers a capture group and returns its fresh context. The
// context carries the sparse counters the inc/dec combinators update.
func (e *Engine) AddGroup(id string, classMask uint32) *GroupContext {
	return e.groups.Add(id, classMask)
}

// Pipeline is one installed computation, bound to the group it was
// installed for. It is immutable after Install; Run may be called from
// arbitrarily many goroutines concurrently.
type Pipeline struct {
	groupID string
	comp    *node.Computation
	eval    *eval.Evaluator
	obs     Observer
}

// Install validates c, links it into an evaluable computation, runs its
// init hooks, and returns the ready Pipeline. Any validation, symbol,
// memory, or init-hook failure surfaces as a *Error and leaves no hooks
// initialized.
func (e *Engine) Install(groupID string, c *ComputationDescr) (*Pipeline, error) {
	if err := descr.Validate(c, e.symbols); err != nil {
		e.log.Warnf("install rejected for group %s: %v", groupID, err)
		return nil, err
	}
	comp, err := link.Build(c, e.symbols)
	if err != nil {
		e.log.Warnf("link failed for group %s: %v", groupID, err)
		return nil, err
	}
	e.log.Debugf("installed computation for group %s: %d nodes", groupID, len(comp.Nodes))
	return &Pipeline{
		groupID: groupID,
		comp:    comp,
		eval:    eval.New(comp, e.groups),
		obs:     e.obs,
	}, nil
}

// Run evaluates one packet through the pipeline. It returns nil when the
// group is unknown or a node yields a null buffer; otherwise the buffer in
// its final state, which may carry a drop action.
func (p *Pipeline) Run(b *Buf) *Buf {
	start := time.Now()
	out := p.eval.Run(p.groupID, b)
	latency := uint64(time.Since(start).Nanoseconds())
	p.obs.ObserveRun(latency, out != nil && out.State.Action == ActionDrop)
	return out
}

// Teardown runs every node's fini hook and releases the computation. The
// caller owns quiescence: no Run may be in flight or started afterwards.
func (p *Pipeline) Teardown() {
	link.Teardown(p.comp)
}

// NewQueue allocates an MPDB queue wired to the Engine's observer and
// logger.
func (e *Engine) NewQueue(params QueueParams) (*Queue, error) {
	return mpdb.New(params, e.obs, e.log)
}

var _ interfaces.Logger = (*logging.Logger)(nil)
