// Command bf drives the parse → RLE → peephole → flatten pipeline and its
// terminal executors (the four interpreters and the native JIT) from the
// command line: a flag-driven front end over a library package, a
// trailing positional file-argument list, and a single top-level recover
// guard that turns an unexpected panic into a reported error instead of a
// Go stack trace.
package main

import (
	"flag"
	"fmt"
	"os"

	"bf/ast"
	"bf/bytecode"
	"bf/core"
	"bf/jit"
	"bf/rle"
	"bf/tir"
)

const version = "bf 1.0.0"

func main() {
	os.Exit(run())
}

// run does the real work and returns an exit code, keeping main itself
// trivial so the recover guard below wraps everything meaningful.
func run() (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, "internal error:", r)
			code = 3
		}
	}()

	var (
		flagAST       bool
		flagRLE       bool
		flagPeep      bool
		flagByte      bool
		flagJIT       bool
		flagUnchecked bool
		flagSize      int
		flagInline    string
		flagHelp      bool
		flagVersion   bool
	)

	fs := flag.NewFlagSet("bf", flag.ContinueOnError)
	fs.BoolVar(&flagAST, "ast", false, "run the tree-walking AST interpreter")
	fs.BoolVar(&flagRLE, "rle", false, "run the run-length-encoded interpreter")
	fs.BoolVar(&flagPeep, "peep", false, "run the peephole (TIR) interpreter")
	fs.BoolVar(&flagByte, "byte", false, "run the flat bytecode interpreter (default)")
	fs.BoolVar(&flagJIT, "jit", false, "compile and run the native x86-64 JIT")
	fs.BoolVar(&flagUnchecked, "unchecked", false, "disable JIT bounds checks (only with -jit)")
	fs.IntVar(&flagSize, "s", tapeDefaultSize, "tape capacity in cells")
	fs.IntVar(&flagSize, "size", tapeDefaultSize, "tape capacity in cells")
	fs.StringVar(&flagInline, "e", "", "inline source code, instead of reading file arguments")
	fs.BoolVar(&flagHelp, "h", false, "show usage")
	fs.BoolVar(&flagHelp, "help", false, "show usage")
	fs.BoolVar(&flagVersion, "V", false, "show version")
	fs.BoolVar(&flagVersion, "version", false, "show version")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return 1
	}
	if flagHelp {
		printUsage(fs)
		return 0
	}
	if flagVersion {
		fmt.Println(version)
		return 0
	}
	if flagSize < 1 {
		fmt.Fprintln(os.Stderr, "bf: -size must be >= 1")
		return 1
	}

	src, err := readSource(flagInline, fs.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, "bf:", err)
		return 1
	}

	astProg, err := ast.Parse(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bf:", err)
		return 2
	}

	prog, err := buildProgram(astProg, stage{
		ast: flagAST, rle: flagRLE, peep: flagPeep, byt: flagByte, jit: flagJIT,
	}, flagUnchecked)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bf:", err)
		return 1
	}
	if rel, ok := prog.(releaser); ok {
		defer rel.Release()
	}

	if err := prog.RunStdio(flagSize); err != nil {
		fmt.Fprintln(os.Stderr, "bf:", err)
		if isRuntimeError(err) {
			return 3
		}
		return 1
	}
	return 0
}

const tapeDefaultSize = 30000

type releaser interface{ Release() error }

// stage picks exactly one terminal pipeline stage; when none is set the
// flat bytecode interpreter runs, as the most-optimized non-native form.
type stage struct {
	ast, rle, peep, byt, jit bool
}

func buildProgram(p ast.Program, s stage, unchecked bool) (core.Program, error) {
	switch {
	case s.ast:
		return p, nil
	case s.rle:
		return rle.Compile(p, rle.WidthNative), nil
	case s.peep:
		return tir.Compile(rle.Compile(p, rle.WidthNative)), nil
	case s.jit:
		mode := jit.Checked
		if unchecked {
			mode = jit.Unchecked
		}
		return jit.Compile(tir.Compile(rle.Compile(p, rle.WidthNative)), mode)
	default:
		return bytecode.Compile(tir.Compile(rle.Compile(p, rle.WidthNative)), bytecode.WidthNative)
	}
}

// isRuntimeError reports whether err is one of the two runtime-category
// error kinds (pointer under/overflow) rather than, say, an I/O failure.
func isRuntimeError(err error) bool {
	e, ok := err.(*core.Error)
	if !ok {
		return false
	}
	return e.Kind == core.PointerUnderflow || e.Kind == core.PointerOverflow
}

func readSource(inline string, files []string) ([]byte, error) {
	if inline != "" {
		return []byte(inline), nil
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no source given: pass -e CODE or one or more file paths")
	}
	var out []byte
	for _, f := range files {
		b, err := os.ReadFile(f)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintln(os.Stderr, "usage: bf [flags] [file ...]")
	fs.PrintDefaults()
}
