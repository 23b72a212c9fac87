// Command extract_tests turns KathiyawadScript example files into Markdown
// test cases whose js, features and metadata fences record what the
// compiler currently produces. Review the output before committing it.
//
//	go run ./scripts 'examples/*.ks' > test/examples_test.md
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mananbhimjiyani/kathiyawadscript-playground/compiler"
	"github.com/mananbhimjiyani/kathiyawadscript-playground/sexy"
)

type TestCase struct {
	Name       string
	Input      string
	Code       string
	Features   []string
	Metadata   *compiler.Metadata
	SourceFile string
}

type Extractor struct {
	cases  []TestCase
	failed []string
}

func NewExtractor() *Extractor {
	return &Extractor{cases: make([]TestCase, 0)}
}

func (e *Extractor) extractFromFiles(pattern string) error {
	files, err := filepath.Glob(pattern)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files match %s", pattern)
	}

	for _, file := range files {
		if err := e.visitFile(file); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to process %s: %v\n", file, err)
			e.failed = append(e.failed, file)
		}
	}

	return nil
}

func (e *Extractor) visitFile(filename string) error {
	src, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	result := compiler.Compile(string(src))
	if !result.Success {
		return fmt.Errorf("compilation failed: %s", result.Error)
	}

	e.cases = append(e.cases, TestCase{
		Name:       strings.TrimSuffix(filepath.Base(filename), ".ks"),
		Input:      strings.TrimRight(string(src), "\n"),
		Code:       result.Code,
		Features:   result.Metadata.Features,
		Metadata:   result.Metadata,
		SourceFile: filename,
	})
	return nil
}

func (e *Extractor) generateSexyMarkdown() string {
	sort.Slice(e.cases, func(i, j int) bool {
		return e.cases[i].SourceFile < e.cases[j].SourceFile
	})

	var sb strings.Builder
	sb.WriteString("# Example programs\n\n")
	sb.WriteString("Generated from example .ks files.\n\n")

	for _, tc := range e.cases {
		sb.WriteString(fmt.Sprintf("## Test: %s\n", tc.Name))
		sb.WriteString(fmt.Sprintf("```%s\n", sexy.InputTypeProgram))
		sb.WriteString(tc.Input)
		sb.WriteString("\n```\n")
		sb.WriteString(fmt.Sprintf("```%s\n", sexy.AssertionTypeJS))
		sb.WriteString(tc.Code)
		sb.WriteString("\n```\n")
		sb.WriteString(fmt.Sprintf("```%s\n", sexy.AssertionTypeFeatures))
		sb.WriteString(featuresSexy(tc.Features).String())
		sb.WriteString("\n```\n")
		sb.WriteString(fmt.Sprintf("```%s\n", sexy.AssertionTypeMetadata))
		sb.WriteString(metadataSexy(tc.Metadata).String())
		sb.WriteString("\n```\n\n")
	}

	return sb.String()
}

func featuresSexy(features []string) *sexy.Node {
	items := make([]*sexy.Node, len(features))
	for i, f := range features {
		items[i] = sexy.NewSymbol(f)
	}
	return sexy.NewArray(items)
}

func metadataSexy(m *compiler.Metadata) *sexy.Node {
	return sexy.NewMap(
		[]string{"tokenCount", "astNodeCount"},
		[]*sexy.Node{
			sexy.NewNumber(fmt.Sprint(m.TokenCount)),
			sexy.NewNumber(fmt.Sprint(m.ASTNodeCount)),
		},
	)
}

func main() {
	pattern := "examples/*.ks"
	if len(os.Args) > 1 {
		pattern = os.Args[1]
	}

	extractor := NewExtractor()
	if err := extractor.extractFromFiles(pattern); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(extractor.generateSexyMarkdown())

	if len(extractor.failed) > 0 {
		fmt.Fprintf(os.Stderr, "%d file(s) failed to compile\n", len(extractor.failed))
		os.Exit(1)
	}
}
