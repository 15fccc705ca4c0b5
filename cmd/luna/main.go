// Command luna runs Luna programs. With a .lu file argument it executes the
// file; with no arguments it starts an interactive REPL with line editing
// and history.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/lunalang/luna/pkg/runtime"
)

const (
	historyFile = ".luna_history"
	prompt      = "> "
	banner      = "Luna v0.1 REPL\nType 'exit' or Ctrl+C to quit."
)

func main() {
	if len(os.Args) < 2 {
		os.Exit(runREPL())
	}
	os.Exit(runFile(os.Args[1]))
}

func runFile(path string) int {
	if !strings.HasSuffix(path, ".lu") {
		fmt.Fprintln(os.Stderr, "Error: expected a .lu file")
		return 1
	}

	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not read file: %s\n", path)
		return 1
	}

	session := runtime.New(path)
	if !session.Run(string(src)) {
		fmt.Fprintln(os.Stderr, "Parsing failed.")
		return 1
	}
	return 0
}

func runREPL() int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}

	session := runtime.New("<stdin>")

	for {
		line, err := ln.Prompt(prompt)
		if err != nil {
			// Ctrl+D or Ctrl+C ends the session.
			if errors.Is(err, liner.ErrPromptAborted) {
				fmt.Println()
				break
			}
			fmt.Println()
			break
		}

		if strings.HasPrefix(line, "exit") {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		session.Run(line)
		ln.AppendHistory(line)
	}

	if f, err := os.Create(histPath); err == nil {
		ln.WriteHistory(f)
		f.Close()
	}
	return 0
}
