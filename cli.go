package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mananbhimjiyani/kathiyawadscript-playground/ast"
	"github.com/mananbhimjiyani/kathiyawadscript-playground/compiler"
	"github.com/mananbhimjiyani/kathiyawadscript-playground/diagnostics"
	"github.com/mananbhimjiyani/kathiyawadscript-playground/project"
	"github.com/mananbhimjiyani/kathiyawadscript-playground/repl"
	"github.com/mananbhimjiyani/kathiyawadscript-playground/runner"
	"github.com/mananbhimjiyani/kathiyawadscript-playground/tools"
)

// cli holds the streams commands talk to. Each command returns the process
// exit code.
type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	// dir is where init creates projects; empty means the working directory.
	dir string
}

func (c *cli) showUsage() {
	fmt.Fprintf(c.stderr, `KathiyawadScript - A modern programming language with Gujarati keywords

Usage:
    ks <command> [arguments]

Commands:
    compile, c <file>     Compile a .ks file to JavaScript
    run, r <file>         Compile and run a .ks file with node
    repl                  Start the interactive REPL
    format, fmt <file>    Print the formatted JavaScript for a .ks file
    analyze <file>        Analyze code quality
    test [dir]            Run Markdown test cases (default: test)
    init [name]           Create a new project
    version, v            Show version
    help, h               Show this help message

Examples:
    ks run hello.ks
    ks compile -o app.js app.ks
    ks repl
    ks init my-app

Use "ks <command> -h" for more information about a command.
`)
}

// newFlagSet builds a subcommand flag set that prints usage the same way
// for every command.
func (c *cli) newFlagSet(name, usage, description string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.Usage = func() {
		fmt.Fprintf(c.stderr, "Usage: ks %s\n", usage)
		fmt.Fprintf(c.stderr, "%s\n\n", description)
		fmt.Fprintf(c.stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	return fs
}

// parseFlags parses args. When the command must stop, ok is false and code
// is its exit code: 0 after -h, 1 for a bad flag.
func parseFlags(fs *flag.FlagSet, args []string) (code int, ok bool) {
	err := fs.Parse(args)
	switch {
	case err == nil:
		return 0, true
	case errors.Is(err, flag.ErrHelp):
		return 0, false
	default:
		return 1, false
	}
}

// fileArg parses args and returns the single file argument.
func (c *cli) fileArg(fs *flag.FlagSet, args []string) (string, int, bool) {
	if code, ok := parseFlags(fs, args); !ok {
		return "", code, false
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(c.stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		return "", 1, false
	}
	return fs.Arg(0), 0, true
}

// compileFile reads and compiles filename, reporting failures on stderr.
func (c *cli) compileFile(filename string) (compiler.Result, string, bool) {
	sourceBytes, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(c.stderr, "Error reading file %s: %v\n", filename, err)
		return compiler.Result{}, "", false
	}
	source := string(sourceBytes)

	result := compiler.Compile(source)
	if !result.Success {
		c.reportCompileError(source, result)
		return result, source, false
	}
	return result, source, true
}

func (c *cli) reportCompileError(source string, result compiler.Result) {
	fmt.Fprintf(c.stderr, "Compilation failed: ")
	var ce diagnostics.Error
	if errors.As(result.Err, &ce) {
		diagnostics.Display(c.stderr, source, ce)
		return
	}
	fmt.Fprintln(c.stderr, result.Error)
	if result.Stack != "" {
		fmt.Fprintln(c.stderr, result.Stack)
	}
}

func (c *cli) compileCommand(args []string) int {
	fs := c.newFlagSet("compile", "compile [-o output] [-json] [-ast] [-v] <file>", "Compile a .ks file to JavaScript")
	output := fs.String("o", "", "Output file path (default: <filename>.js, - for stdout)")
	asJSON := fs.Bool("json", false, "Print the full compile result as JSON instead of writing a file")
	showAST := fs.Bool("ast", false, "Print the AST as an S-expression")
	verbose := fs.Bool("v", false, "Show verbose compilation details")

	filename, code, ok := c.fileArg(fs, args)
	if !ok {
		return code
	}

	outputFile := *output
	if outputFile == "" {
		outputFile = strings.TrimSuffix(filename, ".ks") + ".js"
	}
	if *verbose {
		fmt.Fprintf(c.stdout, "Compiling %s to %s...\n", filename, outputFile)
	}

	if *asJSON {
		sourceBytes, err := os.ReadFile(filename)
		if err != nil {
			fmt.Fprintf(c.stderr, "Error reading file %s: %v\n", filename, err)
			return 1
		}
		result := compiler.Compile(string(sourceBytes))
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			fmt.Fprintf(c.stderr, "Error encoding result: %v\n", err)
			return 1
		}
		fmt.Fprintf(c.stdout, "%s\n", data)
		if !result.Success {
			return 1
		}
		return 0
	}

	result, _, ok := c.compileFile(filename)
	if !ok {
		return 1
	}
	if *showAST {
		fmt.Fprintf(c.stdout, "%s\n", ast.ToSExpr(result.AST))
	}

	if outputFile == "-" {
		fmt.Fprintf(c.stdout, "%s\n", result.Code)
		return 0
	}
	if err := os.WriteFile(outputFile, []byte(result.Code+"\n"), 0644); err != nil {
		fmt.Fprintf(c.stderr, "Error writing JavaScript file %s: %v\n", outputFile, err)
		return 1
	}

	fmt.Fprintf(c.stdout, "Compiled %s -> %s\n", filename, outputFile)
	fmt.Fprintf(c.stdout, "Tokens: %d, AST nodes: %d\n", result.Metadata.TokenCount, result.Metadata.ASTNodeCount)
	if len(result.Metadata.Features) > 0 {
		fmt.Fprintf(c.stdout, "Features used: %s\n", strings.Join(result.Metadata.Features, ", "))
	}
	return 0
}

func (c *cli) runCommand(args []string) int {
	fs := c.newFlagSet("run", "run [-timeout d] [-v] <file>", "Compile and run a .ks file with node")
	timeout := fs.Duration("timeout", 10*time.Second, "Maximum execution time (0 for no limit)")
	verbose := fs.Bool("v", false, "Show verbose compilation details")

	filename, code, ok := c.fileArg(fs, args)
	if !ok {
		return code
	}

	if *verbose {
		fmt.Fprintf(c.stdout, "Compiling %s...\n", filename)
	}
	result, _, ok := c.compileFile(filename)
	if !ok {
		return 1
	}
	if *verbose {
		fmt.Fprintf(c.stdout, "Generated %d bytes of JavaScript\n", len(result.Code))
		fmt.Fprintf(c.stdout, "Executing...\n")
	}

	r := runner.Runner{Timeout: *timeout}
	out, err := r.Run(context.Background(), result.Code)
	fmt.Fprint(c.stdout, out.Stdout)
	fmt.Fprint(c.stderr, out.Stderr)
	if err != nil {
		fmt.Fprintf(c.stderr, "Execution failed: %v\n", err)
		return 1
	}
	return 0
}

func (c *cli) replCommand(args []string) int {
	fs := c.newFlagSet("repl", "repl [-timeout d]", "Start the interactive REPL")
	timeout := fs.Duration("timeout", 10*time.Second, "Maximum execution time per line (0 for no limit)")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	r := runner.Runner{Timeout: *timeout}
	fmt.Fprintf(c.stdout, "KathiyawadScript REPL v%s\n", version)
	fmt.Fprintf(c.stdout, "Type \"exit\" to quit, \"help\" for commands\n\n")
	if !r.Available() {
		fmt.Fprintf(c.stderr, "Warning: %s not found on PATH; lines will compile but not run\n", runner.DefaultCommand)
	}

	session := repl.NewSession(r)
	if err := session.Loop(context.Background(), c.stdin, c.stdout, c.stderr); err != nil {
		fmt.Fprintf(c.stderr, "Error reading input: %v\n", err)
		return 1
	}
	return 0
}

func (c *cli) formatCommand(args []string) int {
	fs := c.newFlagSet("format", "format [-w] <file>", "Print the formatted JavaScript for a .ks file")
	write := fs.Bool("w", false, "Write the result to <filename>.js instead of stdout")

	filename, code, ok := c.fileArg(fs, args)
	if !ok {
		return code
	}

	sourceBytes, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(c.stderr, "Error reading file %s: %v\n", filename, err)
		return 1
	}
	formatted, err := tools.Format(string(sourceBytes))
	if err != nil {
		fmt.Fprintf(c.stderr, "Compilation failed: %v\n", err)
		return 1
	}

	if !*write {
		fmt.Fprintf(c.stdout, "%s\n", formatted)
		return 0
	}
	outputFile := strings.TrimSuffix(filename, ".ks") + ".js"
	if err := os.WriteFile(outputFile, []byte(formatted+"\n"), 0644); err != nil {
		fmt.Fprintf(c.stderr, "Error writing %s: %v\n", outputFile, err)
		return 1
	}
	fmt.Fprintf(c.stdout, "Formatted: %s\n", outputFile)
	return 0
}

func (c *cli) analyzeCommand(args []string) int {
	fs := c.newFlagSet("analyze", "analyze [-json] <file>", "Analyze code quality")
	asJSON := fs.Bool("json", false, "Print the analysis as JSON")

	filename, code, ok := c.fileArg(fs, args)
	if !ok {
		return code
	}

	sourceBytes, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(c.stderr, "Error reading file %s: %v\n", filename, err)
		return 1
	}
	analysis, err := tools.Analyze(string(sourceBytes))
	if err != nil {
		fmt.Fprintf(c.stderr, "Analysis failed: %v\n", err)
		return 1
	}

	if *asJSON {
		data, err := json.MarshalIndent(analysis, "", "  ")
		if err != nil {
			fmt.Fprintf(c.stderr, "Error encoding analysis: %v\n", err)
			return 1
		}
		fmt.Fprintf(c.stdout, "%s\n", data)
		return 0
	}

	fmt.Fprintf(c.stdout, "Code Analysis for %s:\n", filename)
	fmt.Fprintf(c.stdout, "   Lines: %d\n", analysis.Metrics.Lines)
	fmt.Fprintf(c.stdout, "   Tokens: %d\n", analysis.Metrics.Tokens)
	fmt.Fprintf(c.stdout, "   AST Nodes: %d\n", analysis.Metrics.ASTNodes)
	fmt.Fprintf(c.stdout, "   Complexity: %d\n", analysis.Complexity)
	fmt.Fprintf(c.stdout, "   Features: %s\n", strings.Join(analysis.Metrics.Features, ", "))
	if len(analysis.Suggestions) > 0 {
		fmt.Fprintf(c.stdout, "\nSuggestions:\n")
		for _, s := range analysis.Suggestions {
			fmt.Fprintf(c.stdout, "   [%s] %s\n", s.Type, s.Message)
			fmt.Fprintf(c.stdout, "      %s\n", s.Suggestion)
		}
	}
	return 0
}

func (c *cli) testCommand(args []string) int {
	fs := c.newFlagSet("test", "test [-run substr] [-v] [dir]", "Run Markdown test cases from <dir>/*_test.md (default: test)")
	filter := fs.String("run", "", "Only run test cases whose name contains this text")
	verbose := fs.Bool("v", false, "List every test case")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() > 1 {
		fmt.Fprintf(c.stderr, "Error: expected at most one directory argument\n")
		fs.Usage()
		return 1
	}
	dir := "test"
	if fs.NArg() == 1 {
		dir = fs.Arg(0)
	}

	files, err := loadSpecFiles(dir)
	if err != nil {
		fmt.Fprintf(c.stderr, "Error loading tests: %v\n", err)
		return 1
	}

	var engine repl.Executor
	if r := (runner.Runner{Timeout: 10 * time.Second}); r.Available() {
		engine = r
	}

	ctx := context.Background()
	passed, failed, skipped := 0, 0, 0
	for _, file := range files {
		for _, tc := range file.Cases {
			if *filter != "" && !strings.Contains(tc.Name, *filter) {
				continue
			}
			compiled := compileCase(tc)
			var failures []string
			caseSkipped := false
			for _, a := range tc.Assertions {
				err := checkAssertion(ctx, compiled, a, engine)
				switch {
				case errors.Is(err, errNoEngine):
					caseSkipped = true
				case err != nil:
					failures = append(failures, fmt.Sprintf("    line %d (%s): %v", a.Line, a.Type, err))
				}
			}

			name := fmt.Sprintf("%s: %s", filepath.Base(file.Path), tc.Name)
			switch {
			case len(failures) > 0:
				failed++
				fmt.Fprintf(c.stdout, "FAIL %s\n%s\n", name, strings.Join(failures, "\n"))
			case caseSkipped:
				skipped++
				if *verbose {
					fmt.Fprintf(c.stdout, "SKIP %s (%v)\n", name, errNoEngine)
				}
			default:
				passed++
				if *verbose {
					fmt.Fprintf(c.stdout, "PASS %s\n", name)
				}
			}
		}
	}

	fmt.Fprintf(c.stdout, "%d passed, %d failed, %d skipped\n", passed, failed, skipped)
	if failed > 0 {
		return 1
	}
	return 0
}

func (c *cli) initCommand(args []string) int {
	fs := c.newFlagSet("init", "init [name]", "Create a new KathiyawadScript project")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() > 1 {
		fmt.Fprintf(c.stderr, "Error: expected at most one project name\n")
		fs.Usage()
		return 1
	}

	dir := c.dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(c.stderr, "Error: %v\n", err)
			return 1
		}
		dir = wd
	}

	layout, err := project.Init(dir, fs.Arg(0))
	if err != nil {
		fmt.Fprintf(c.stderr, "Error creating project: %v\n", err)
		return 1
	}

	fmt.Fprintf(c.stdout, "Created new KathiyawadScript project: %s\n\n", layout.Name)
	fmt.Fprintf(c.stdout, "Project structure:\n")
	fmt.Fprintf(c.stdout, "   %s/\n", layout.Name)
	fmt.Fprintf(c.stdout, "   ├── src/\n")
	fmt.Fprintf(c.stdout, "   │   └── main.ks\n")
	fmt.Fprintf(c.stdout, "   ├── tests/\n")
	fmt.Fprintf(c.stdout, "   ├── package.json\n")
	fmt.Fprintf(c.stdout, "   └── README.md\n\n")
	fmt.Fprintf(c.stdout, "Get started:\n")
	fmt.Fprintf(c.stdout, "   cd %s\n", layout.Name)
	fmt.Fprintf(c.stdout, "   ks run src/main.ks\n")
	return 0
}

func (c *cli) versionCommand() int {
	fmt.Fprintf(c.stdout, "KathiyawadScript v%s\n", version)
	fmt.Fprintf(c.stdout, "A modern programming language with Gujarati keywords\n")
	return 0
}

// run dispatches args (without the program name) and returns the exit code.
func (c *cli) run(args []string) int {
	if len(args) < 1 {
		c.showUsage()
		return 1
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "compile", "c":
		return c.compileCommand(args)
	case "run", "r":
		return c.runCommand(args)
	case "repl":
		return c.replCommand(args)
	case "format", "fmt":
		return c.formatCommand(args)
	case "analyze":
		return c.analyzeCommand(args)
	case "test":
		return c.testCommand(args)
	case "init":
		return c.initCommand(args)
	case "version", "v":
		return c.versionCommand()
	case "help", "h", "-h", "--help":
		c.showUsage()
		return 0
	default:
		fmt.Fprintf(c.stderr, "Unknown command: %s\n\n", command)
		c.showUsage()
		return 1
	}
}
