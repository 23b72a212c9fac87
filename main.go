// Command ks compiles KathiyawadScript, a language with Gujarati keywords,
// to JavaScript and runs it.
package main

import "os"

const version = "4.0.0"

func main() {
	c := &cli{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	os.Exit(c.run(os.Args[1:]))
}
