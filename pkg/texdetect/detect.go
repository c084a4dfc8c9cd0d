// Package texdetect decides whether a file is a LaTeX source. It uses
// go-enry's extension tables first, then LaTeX-specific content patterns,
// then enry's full detection strategy chain.
package texdetect

import (
	"bytes"

	"github.com/go-enry/go-enry/v2"
)

// LanguageTeX is the go-enry language name for LaTeX sources.
const LanguageTeX = "TeX"

// LanguageUnknown is returned when no strategy identifies the file.
const LanguageUnknown = ""

// markers are byte sequences that only LaTeX sources plausibly contain.
var markers = [][]byte{
	[]byte(`\documentclass`),
	[]byte(`\begin{document}`),
	[]byte(`\usepackage`),
	[]byte(`\begin{table}`),
	[]byte(`\section{`),
	[]byte(`\NeedsTeXFormat`),
	[]byte(`\ProvidesPackage`),
	[]byte(`\ProvidesClass`),
}

// Detect returns the language of a file. The extension decides when enry
// maps it to exactly one language; otherwise content patterns and then
// enry's own strategies are consulted.
func Detect(path string, content []byte) string {
	if langs := enry.GetLanguagesByExtension(path, content, nil); len(langs) == 1 {
		return langs[0]
	}

	if hasMarker(content) {
		return LanguageTeX
	}

	if len(bytes.TrimSpace(content)) == 0 {
		return LanguageUnknown
	}

	return enry.GetLanguage(path, content)
}

// IsTeX reports whether the file is a LaTeX source.
func IsTeX(path string, content []byte) bool {
	return Detect(path, content) == LanguageTeX
}

// IsExcluded reports whether path is vendored or hidden (a dot file),
// per go-enry's path rules.
func IsExcluded(path string) bool {
	return enry.IsVendor(path) || enry.IsDotFile(path)
}

func hasMarker(content []byte) bool {
	for _, marker := range markers {
		if bytes.Contains(content, marker) {
			return true
		}
	}
	return false
}
