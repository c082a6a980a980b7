package driver

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"bcplc/internal/ast"
	"bcplc/internal/diag"
	"bcplc/internal/observ"
	"bcplc/internal/parser"
	"bcplc/internal/source"
	"bcplc/internal/trace"
)

// FatalError stops a session before any file is compiled.
type FatalError struct {
	Msg string
}

func (e *FatalError) Error() string { return "fatal error: " + e.Msg }

type SessionOptions struct {
	// ProgramName is used as the prefix of fatal messages.
	ProgramName string
	Output      string
	Kind        BuildKind
	Tags        []string
	// Jobs bounds the number of files parsed at once; <= 0 means GOMAXPROCS.
	Jobs int
	// MaxWarnings caps the warnings kept per file; 0 means unlimited.
	MaxWarnings int
	// Cache, when set, lets files that parsed cleanly before be skipped.
	// Skipped files contribute no items to the program.
	Cache    Cache
	Progress ProgressSink
	// GOOS overrides runtime.GOOS for output naming.
	GOOS string
}

// Session is one compiler invocation: its sources, build settings and the
// program tree shared by every file.
type Session struct {
	opts    SessionOptions
	fs      *source.FileSet
	sources []string
	program *ast.Program
	timer   *observ.Timer
}

func NewSession(opts SessionOptions) *Session {
	if opts.ProgramName == "" {
		opts.ProgramName = "bcplc"
	}
	return &Session{
		opts:    opts,
		fs:      source.NewFileSet(),
		program: ast.NewProgram(),
		timer:   observ.NewTimer(),
	}
}

// AddSources appends files to compile, in order.
func (s *Session) AddSources(paths ...string) {
	s.sources = append(s.sources, paths...)
}

// DefineTag records a build tag.
func (s *Session) DefineTag(tag string) {
	s.opts.Tags = append(s.opts.Tags, tag)
}

func (s *Session) Tags() []string           { return s.opts.Tags }
func (s *Session) Sources() []string        { return s.sources }
func (s *Session) Kind() BuildKind          { return s.opts.Kind }
func (s *Session) ProgramName() string      { return s.opts.ProgramName }
func (s *Session) FileSet() *source.FileSet { return s.fs }
func (s *Session) Program() *ast.Program    { return s.program }
func (s *Session) Timings() observ.Report   { return s.timer.Report() }
func (s *Session) TimingSummary() string    { return s.timer.Summary() }

// OutputFile is the name of the artifact this session would produce.
func (s *Session) OutputFile() (string, error) {
	goos := s.opts.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	return OutputName(s.opts.Output, s.opts.Kind, goos)
}

// Outcome is the result of compiling one file.
type Outcome struct {
	Path string
	// File is the loaded file, or an unreadable placeholder when loading failed.
	File     source.FileID
	Items    []ast.ItemID
	Names    []string
	Err      *diag.Diagnostic
	Warnings []*diag.Diagnostic
	Cached   bool
	Elapsed  time.Duration
}

func (o *Outcome) OK() bool { return o.Err == nil }

// Report collects one outcome per source, in input order.
type Report struct {
	Outcomes []Outcome
}

// Failed reports whether any file produced a fatal diagnostic.
func (r *Report) Failed() bool {
	for i := range r.Outcomes {
		if r.Outcomes[i].Err != nil {
			return true
		}
	}
	return false
}

// Diagnostics lists every diagnostic file by file: the fatal one first,
// then the warnings.
func (r *Report) Diagnostics() []*diag.Diagnostic {
	var out []*diag.Diagnostic
	for i := range r.Outcomes {
		o := &r.Outcomes[i]
		if o.Err != nil {
			out = append(out, o.Err)
		}
		out = append(out, o.Warnings...)
	}
	return out
}

// Counts returns the number of failed files and of warnings.
func (r *Report) Counts() (failed, warnings int) {
	for i := range r.Outcomes {
		if r.Outcomes[i].Err != nil {
			failed++
		}
		warnings += len(r.Outcomes[i].Warnings)
	}
	return failed, warnings
}

// Compile parses every source. A file that fails does not stop the others;
// the returned error is only set for fatal session errors or cancellation.
// Items of successful files are added to the program in input order.
func (s *Session) Compile(ctx context.Context) (*Report, error) {
	if len(s.sources) == 0 {
		return nil, &FatalError{Msg: "no input files."}
	}
	ctx, span := trace.StartSpan(ctx, trace.ScopeDriver, "compile")

	for _, path := range s.sources {
		emit(s.opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	outcomes := s.load()

	phase := s.timer.Begin("parse")
	if err := s.parseAll(ctx, outcomes); err != nil {
		s.timer.End(phase, "cancelled")
		span.End("cancelled")
		return nil, err
	}
	s.timer.End(phase, fmt.Sprintf("%d file(s)", len(outcomes)))

	link := s.timer.Begin("program")
	items := 0
	for i := range outcomes {
		items += len(outcomes[i].Items)
	}
	s.timer.End(link, fmt.Sprintf("%d item(s)", items))

	report := &Report{Outcomes: outcomes}
	failed, warnings := report.Counts()
	span.WithExtra("files", fmt.Sprint(len(outcomes))).
		WithExtra("failed", fmt.Sprint(failed)).
		WithExtra("warnings", fmt.Sprint(warnings)).
		End("")
	status := StatusDone
	if failed > 0 {
		status = StatusError
	}
	emit(s.opts.Progress, Event{Stage: StageParse, Status: status})
	return report, nil
}

// load reads the sources sequentially; the file set is not safe for
// concurrent additions.
func (s *Session) load() []Outcome {
	idx := s.timer.Begin("load")
	outcomes := make([]Outcome, len(s.sources))
	for i, path := range s.sources {
		outcomes[i].Path = path
		id, err := s.fs.Load(path)
		if err != nil {
			id = s.fs.AddUnreadable(path)
			outcomes[i].Err = diag.NewError(diag.IOLoadFailed, source.Location{File: id}, fmt.Sprintf("cannot read %s: %v", path, err))
			emit(s.opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError})
		}
		outcomes[i].File = id
	}
	s.timer.End(idx, fmt.Sprintf("%d file(s)", len(outcomes)))
	return outcomes
}

func (s *Session) parseAll(ctx context.Context, outcomes []Outcome) error {
	jobs := s.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([][]ast.Item, len(outcomes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(outcomes))))
	for i := range outcomes {
		if outcomes[i].Err != nil {
			continue
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.compileFile(gctx, &outcomes[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// The shared program is filled after all workers finished so item ids
	// follow the input order whatever the scheduling was.
	for i := range outcomes {
		if len(results[i]) > 0 {
			outcomes[i].Items = s.program.Add(results[i]...)
		}
	}
	return nil
}

func (s *Session) compileFile(ctx context.Context, out *Outcome) []ast.Item {
	started := time.Now()
	file := s.fs.Get(out.File)
	emit(s.opts.Progress, Event{File: out.Path, Stage: StageParse, Status: StatusWorking})

	if s.opts.Cache != nil {
		if entry, ok := s.opts.Cache.Lookup(CacheKey(file)); ok {
			out.Cached = true
			out.Names = entry.Names
			out.Warnings = entry.replay(out.File)
			out.Elapsed = time.Since(started)
			trace.Point(trace.FromContext(ctx), trace.ScopeFile, "cache-hit", out.Path)
			emit(s.opts.Progress, Event{File: out.Path, Stage: StageCache, Status: StatusDone, Elapsed: out.Elapsed, Warnings: len(out.Warnings)})
			return nil
		}
	}

	res := parser.ParseFile(ctx, s.fs, out.File, parser.Options{MaxWarnings: s.opts.MaxWarnings})
	out.Err = res.Err
	out.Warnings = res.Warnings
	out.Elapsed = time.Since(started)
	if res.Err != nil {
		emit(s.opts.Progress, Event{File: out.Path, Stage: StageParse, Status: StatusError, Elapsed: out.Elapsed, Warnings: len(out.Warnings)})
		return nil
	}

	out.Names = make([]string, len(res.Items))
	for i := range res.Items {
		out.Names[i] = res.Items[i].Name.Value
	}
	if s.opts.Cache != nil {
		if err := s.opts.Cache.Store(CacheKey(file), newCachedFile(out.Path, out.Names, res.Warnings)); err != nil {
			trace.Point(trace.FromContext(ctx), trace.ScopeFile, "cache-store-failed", err.Error())
		}
	}
	emit(s.opts.Progress, Event{File: out.Path, Stage: StageParse, Status: StatusDone, Elapsed: out.Elapsed, Warnings: len(out.Warnings)})
	return res.Items
}
