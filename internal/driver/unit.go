package driver

import (
	"fmt"
	"strconv"

	"fortio.org/safecast"

	"errcode/internal/ast"
	"errcode/internal/diag"
	"errcode/internal/errcode"
	"errcode/internal/format"
	"errcode/internal/lexer"
	"errcode/internal/observ"
	"errcode/internal/parser"
	"errcode/internal/source"
	"errcode/internal/trace"

	"golang.org/x/text/unicode/norm"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// UnitOptions configure one pass over one unit.
type UnitOptions struct {
	Commit string
	// Gateway receives every issued code; nil means dry run.
	Gateway        errcode.Gateway
	MaxDiagnostics int
	Tracer         trace.Tracer
	ParentSpan     uint64
	// Timer, when set, receives parse/rewrite/print phases.
	Timer *observ.Timer
}

// UnitResult is one transformed unit.
type UnitResult struct {
	Path        string
	LogicalPath string
	FileSet     *source.FileSet
	File        *source.File
	Bag         *diag.Bag
	// Output is the rewritten text; the original bytes when nothing matched.
	Output  []byte
	Changed bool
	Sites   []errcode.Site
	// Skipped counts constructions already carrying a code.
	Skipped int
}

// TransformSource runs the pass over content. path is used for diagnostics,
// logical for hashing. A BOM is kept and line endings are left as they are.
func TransformSource(path, logical string, content []byte, opts UnitOptions) (*UnitResult, error) {
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	timer := opts.Timer
	if timer == nil {
		timer = observ.NewTimer()
	}
	logical = norm.NFC.String(logical)

	body, flags := source.Prepare(content)
	hadBOM := flags&source.FileHadBOM != 0
	fs := source.NewFileSet()
	sf := fs.Get(fs.Add(path, body, flags))
	res := &UnitResult{
		Path:        path,
		LogicalPath: logical,
		FileSet:     fs,
		File:        sf,
		Bag:         diag.NewBag(maxDiagnostics(opts.MaxDiagnostics)),
	}

	var builder *ast.Builder
	var fileID ast.FileID
	err := timePass(timer, tracer, opts.ParentSpan, "parse", func(uint64) error {
		var err error
		builder, fileID, err = parseInto(sf, res.Bag)
		return err
	})
	if err != nil {
		return nil, err
	}
	if res.Bag.HasErrors() {
		return res, &SyntaxError{Path: path, FileSet: fs, Bag: res.Bag}
	}

	var stats errcode.Stats
	err = timePass(timer, tracer, opts.ParentSpan, "rewrite", func(span uint64) error {
		gen := errcode.NewGenerator(opts.Commit, logical, opts.Gateway)
		rw := errcode.NewRewriter(builder, gen, errcode.RewriteOptions{Tracer: tracer, ParentSpan: span})
		var err error
		stats, err = rw.RewriteFile(fileID)
		return err
	})
	res.Sites, res.Skipped = stats.Sites, stats.Skipped
	if err != nil {
		return res, err
	}

	if len(stats.Sites) == 0 {
		res.Output = content
		return res, nil
	}
	err = timePass(timer, tracer, opts.ParentSpan, "print", func(uint64) error {
		out, err := format.FormatFile(sf, builder, fileID)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if hadBOM {
			out = append(append(make([]byte, 0, len(out)+len(utf8BOM)), utf8BOM...), out...)
		}
		res.Output = out
		return nil
	})
	if err != nil {
		return res, err
	}
	res.Changed = true
	return res, nil
}

// DefaultMaxDiagnostics applies when no limit is configured.
const DefaultMaxDiagnostics = 100

func maxDiagnostics(n int) int {
	if n <= 0 {
		return DefaultMaxDiagnostics
	}
	return n
}

func parseInto(sf *source.File, bag *diag.Bag) (*ast.Builder, ast.FileID, error) {
	maxErrors, err := safecast.Conv[uint](bag.Cap())
	if err != nil {
		return nil, ast.NoFileID, err
	}
	reporter := &diag.BagReporter{Bag: bag}
	builder := ast.NewBuilder(ast.Hints{}, nil)
	lx := lexer.New(sf, lexer.Options{Reporter: reporter})
	result := parser.ParseFile(lx, builder, parser.Options{Reporter: reporter, MaxErrors: maxErrors})
	return builder, result.File, nil
}

// timePass is a timer phase and a ScopePass span around fn.
func timePass(timer *observ.Timer, tracer trace.Tracer, parent uint64, name string, fn func(span uint64) error) error {
	span := trace.Begin(tracer, trace.ScopePass, name, parent)
	idx := timer.Begin(name)
	err := fn(span.ID())
	note := ""
	if err != nil {
		note = "failed"
	}
	timer.End(idx, note)
	span.WithExtra("ok", strconv.FormatBool(err == nil)).End(note)
	return err
}
