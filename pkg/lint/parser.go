package lint

import (
	"context"

	"github.com/yaklabco/gotexlint/pkg/latex"
)

// Parser produces the syntax node tree of a LaTeX document.
//
// *latex.Parser is the standard implementation. Implementations must be
// side-effect free and must attach an argument descriptor to every macro
// and environment node they emit.
type Parser interface {
	Parse(ctx context.Context, path string, content []byte) ([]latex.Node, error)
}
