// Package testutil extracts runnable test cases from Markdown documents.
// A case starts at a heading of the form "Test: name" and collects its
// fenced code blocks: a `luna` fence with the program, an optional `input`
// fence with stdin data, and an `output` or `error` fence with the
// expectation.
package testutil

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Case is one extracted documentation test.
type Case struct {
	Name          string
	Source        string // the luna fence
	Stdin         string // the input fence, if any
	Output        string // the output fence: expected stdout
	ErrorContains string // the error fence: substring of a rendered diagnostic
	HasOutput     bool
}

// ExtractCases walks a Markdown document and collects every test case.
func ExtractCases(markdown string) ([]Case, error) {
	md := goldmark.New()
	source := []byte(markdown)
	doc := md.Parser().Parse(text.NewReader(source))

	var cases []Case
	var cur *Case

	flush := func() error {
		if cur == nil {
			return nil
		}
		if cur.Source == "" {
			return fmt.Errorf("test %q has no luna fence", cur.Name)
		}
		if !cur.HasOutput && cur.ErrorContains == "" {
			return fmt.Errorf("test %q has no output or error fence", cur.Name)
		}
		cases = append(cases, *cur)
		cur = nil
		return nil
	}

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *ast.Heading:
			heading := headingText(n, source)
			if strings.HasPrefix(heading, "Test: ") {
				if err := flush(); err != nil {
					return ast.WalkStop, err
				}
				cur = &Case{Name: strings.TrimPrefix(heading, "Test: ")}
			}

		case *ast.FencedCodeBlock:
			if cur == nil {
				return ast.WalkContinue, nil
			}
			content := fenceContent(n, source)
			switch string(n.Language(source)) {
			case "luna":
				if cur.Source != "" {
					return ast.WalkStop, fmt.Errorf("test %q has multiple luna fences", cur.Name)
				}
				cur.Source = content
			case "input":
				cur.Stdin = content
			case "output":
				cur.Output = content
				cur.HasOutput = true
			case "error":
				cur.ErrorContains = strings.TrimRight(content, "\n")
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return cases, nil
}

// LoadCases reads a Markdown file and extracts its test cases.
func LoadCases(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ExtractCases(string(data))
}

func headingText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := n.(*ast.Text); ok {
				buf.Write(t.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func fenceContent(block *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	for i := 0; i < block.Lines().Len(); i++ {
		line := block.Lines().At(i)
		buf.Write(line.Value(source))
	}
	return buf.String()
}
