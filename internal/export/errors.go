package export

import "errors"

var (
	// ErrCompile indicates that the LaTeX compiler failed or produced no PDF.
	ErrCompile = errors.New("latex compilation failed")

	// ErrNoCompiler indicates that the configured LaTeX binary is missing.
	ErrNoCompiler = errors.New("latex compiler not found")
)
