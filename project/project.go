// Package project scaffolds a new KathiyawadScript project directory.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultName is used when Init is given an empty name.
const DefaultName = "my-kathiyawadscript-project"

// MainSource is the sample program written to src/main.ks.
const MainSource = `# KathiyawadScript Project
# Welcome to your new project!

dekhad "Hello from KathiyawadScript!"

# Example function
karyo greet(name) {
  return "Namaste, " + name + "!"
}

# Example usage
le message = greet("Developer")
dekhad message

# Example loop
dekhad "Counting to 5:"
fero i in 1..5 {
  dekhad "Count: " + i
}
`

// Layout describes a scaffolded project. Paths are absolute or relative to
// the same base as the parent directory given to Init.
type Layout struct {
	Name    string
	Dir     string
	Main    string
	Tests   string
	Package string
	Readme  string
}

type packageJSON struct {
	Name        string            `json:"name"`
	Version     string            `json:"version"`
	Description string            `json:"description"`
	Main        string            `json:"main"`
	Scripts     map[string]string `json:"scripts"`
	Keywords    []string          `json:"keywords"`
	Author      string            `json:"author"`
	License     string            `json:"license"`
}

// ErrExists is returned when the project directory is already present.
var ErrExists = errors.New("directory already exists")

// Init creates parentDir/name with a sample program, an empty tests
// directory, package.json and README.md.
func Init(parentDir, name string) (Layout, error) {
	if name == "" {
		name = DefaultName
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return Layout{}, fmt.Errorf("invalid project name %q", name)
	}

	dir := filepath.Join(parentDir, name)
	l := Layout{
		Name:    name,
		Dir:     dir,
		Main:    filepath.Join(dir, "src", "main.ks"),
		Tests:   filepath.Join(dir, "tests"),
		Package: filepath.Join(dir, "package.json"),
		Readme:  filepath.Join(dir, "README.md"),
	}

	if _, err := os.Stat(dir); err == nil {
		return Layout{}, fmt.Errorf("%s: %w", name, ErrExists)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Layout{}, err
	}

	if err := os.Mkdir(dir, 0o755); err != nil {
		return Layout{}, fmt.Errorf("failed to create project directory: %w", err)
	}
	for _, sub := range []string{filepath.Dir(l.Main), l.Tests} {
		if err := os.Mkdir(sub, 0o755); err != nil {
			return Layout{}, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	pkg, err := json.MarshalIndent(packageJSON{
		Name:        name,
		Version:     "1.0.0",
		Description: "A KathiyawadScript project",
		Main:        "src/main.ks",
		Scripts: map[string]string{
			"start":   "ks run src/main.ks",
			"compile": "ks compile src/main.ks",
			"test":    "ks test",
		},
		Keywords: []string{"kathiyawadscript"},
		License:  "MIT",
	}, "", "  ")
	if err != nil {
		return Layout{}, err
	}

	files := []struct {
		path string
		data []byte
	}{
		{l.Main, []byte(MainSource)},
		{l.Package, append(pkg, '\n')},
		{l.Readme, []byte(readme(name))},
	}
	for _, f := range files {
		if err := os.WriteFile(f.path, f.data, 0o644); err != nil {
			return Layout{}, fmt.Errorf("failed to write %s: %w", filepath.Base(f.path), err)
		}
	}
	return l, nil
}

// Title turns a project name like "my-app" into "My App".
func Title(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	return cases.Title(language.Und).String(strings.Join(words, " "))
}

func readme(name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", Title(name))
	b.WriteString(`A KathiyawadScript project.

## Getting Started

` + "```bash" + `
# Run the project
ks run src/main.ks

# Compile to JavaScript
ks compile src/main.ks

# Format code
ks format src/main.ks

# Analyze code
ks analyze src/main.ks
` + "```" + `

## Project Structure

- ` + "`src/`" + ` - Source code files (.ks)
- ` + "`tests/`" + ` - Test files
- ` + "`package.json`" + ` - Project configuration
`)
	return b.String()
}
