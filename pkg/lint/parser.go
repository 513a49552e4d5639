package lint

import (
	"context"

	"github.com/yaklabco/solidhunter/pkg/solast"
)

// Parser turns Solidity source into a File with its AST.
//
// The lint package defines this interface in the consumer package.
// Implementations (parser/solc, parser/foundry) obtain the AST from the
// compiler toolchain.
//
// Implementations must be safe for concurrent use and must honor ctx: a
// cancelled or expired context stops any external process they started.
type Parser interface {
	// Parse returns a File whose Path and Content equal the arguments.
	//
	// Failures wrap solast.ErrTokenize or solast.ErrParse for invalid source
	// and solast.ErrDeserialization for unusable compiler output. No partial
	// File is returned on error.
	Parse(ctx context.Context, path string, content []byte) (*solast.File, error)
}
