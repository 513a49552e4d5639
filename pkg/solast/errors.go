package solast

import "errors"

// Errors reported while obtaining or decoding an AST. Front-ends wrap the
// compiler's own message with one of these.
var (
	// ErrTokenize marks source the compiler could not scan.
	ErrTokenize = errors.New("tokenize error")

	// ErrParse marks source that scanned but did not parse, or compiler output
	// that carried no AST.
	ErrParse = errors.New("parse error")

	// ErrDeserialization marks AST JSON that is not a well-formed node tree.
	ErrDeserialization = errors.New("malformed AST")
)
