package workspace

import (
	"slices"
	"strconv"

	"github.com/jask/codepad/internal/workspace/project"
)

// CompileState is Ready, Compiling, FinishedWithErrors or Succeeded.
type CompileState interface {
	isCompileState()
}

type Ready struct{}

type Compiling struct{}

type FinishedWithErrors struct {
	Errors []project.CompileError
}

type Succeeded struct{}

func (Ready) isCompileState()              {}
func (Compiling) isCompileState()          {}
func (FinishedWithErrors) isCompileState() {}
func (Succeeded) isCompileState()          {}

// CompileFinishedState folds a compiler response. The list replaces whatever
// was reported before.
func CompileFinishedState(errs []project.CompileError) CompileState {
	if len(errs) == 0 {
		return Succeeded{}
	}
	return FinishedWithErrors{Errors: slices.Clone(errs)}
}

// CompileLabel is a short human label for the status bar.
func CompileLabel(s CompileState) string {
	switch s := s.(type) {
	case Compiling:
		return "compiling"
	case FinishedWithErrors:
		if len(s.Errors) == 1 {
			return "1 error"
		}
		return strconv.Itoa(len(s.Errors)) + " errors"
	case Succeeded:
		return "compiled"
	default:
		return "ready"
	}
}
