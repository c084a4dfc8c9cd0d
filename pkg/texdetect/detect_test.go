package texdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gotexlint/pkg/texdetect"
)

func TestIsTeX(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		content string
		want    bool
	}{
		{"tex extension", "paper.tex", "plain words", true},
		{"class file", "thesis.cls", `\NeedsTeXFormat{LaTeX2e}`, true},
		{"no extension with preamble", "paper", "\\documentclass{article}\n\\begin{document}\n\\end{document}\n", true},
		{"go source", "main.go", "package main\n", false},
		{"markdown", "README.md", "# Title\n\nSome *text*.\n", false},
		{"empty without extension", "EMPTY", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, texdetect.IsTeX(tt.path, []byte(tt.content)))
		})
	}
}

func TestIsExcluded(t *testing.T) {
	t.Parallel()

	assert.True(t, texdetect.IsExcluded("vendor/pkg/doc.tex"))
	assert.True(t, texdetect.IsExcluded("node_modules/x/y.tex"))
	assert.False(t, texdetect.IsExcluded("chapters/intro.tex"))
}
