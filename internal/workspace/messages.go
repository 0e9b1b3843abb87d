package workspace

import (
	"github.com/google/uuid"

	"github.com/jask/codepad/internal/config"
	"github.com/jask/codepad/internal/workspace/pane"
	"github.com/jask/codepad/internal/workspace/project"
)

// Msg is anything Reduce accepts.
type Msg interface {
	isMsg()
}

// NoOp does nothing. It completes delays that carry no payload.
type NoOp struct{}

type RouteChanged struct {
	Route Route
}

// RevisionLoaded completes FetchRevision.
type RevisionLoaded struct {
	ID       uuid.UUID
	Revision project.Revision
}

// RevisionSaved completes SaveRevision.
type RevisionSaved struct {
	Revision project.Revision
}

type SaveRequested struct{}

type CodeChanged struct {
	Code string
}

type MarkupChanged struct {
	Markup string
}

type ProjectNameChanged struct {
	Name string
}

type PackageInstalled struct {
	Package project.Package
}

type PackageRemoved struct {
	Name string
}

type CompileRequested struct{}

// CompileFinished arrives through the compile-finished listener.
type CompileFinished struct {
	Errors []project.CompileError
}

type FormatRequested struct{}

// CodeFormatted completes FormatCode. Original is the code that was sent.
type CodeFormatted struct {
	Original  string
	Formatted string
}

type SettingsChanged struct {
	Settings config.Editor
}

// Split names one of the resizable pane dividers.
type Split int

const (
	SplitEditor Split = iota
	SplitOutput
)

type PaneResized struct {
	Split Split
	Ratio float64
}

type PaneOpened struct {
	Kind pane.Kind
}

// PaneMsg is a message for the pane of Kind.
type PaneMsg struct {
	Kind pane.Kind
	Msg  pane.Msg
}

type WorkspaceAttached struct{}

type WorkspaceDetached struct{}

type KeepAlive struct{}

// OperationFailed reports a collaborator error. It only touches the status line.
type OperationFailed struct {
	Op  string
	Err error
}

// StatusExpired clears the status line if it is still the one numbered Serial.
type StatusExpired struct {
	Serial int
}

func (NoOp) isMsg()               {}
func (RouteChanged) isMsg()       {}
func (RevisionLoaded) isMsg()     {}
func (RevisionSaved) isMsg()      {}
func (SaveRequested) isMsg()      {}
func (CodeChanged) isMsg()        {}
func (MarkupChanged) isMsg()      {}
func (ProjectNameChanged) isMsg() {}
func (PackageInstalled) isMsg()   {}
func (PackageRemoved) isMsg()     {}
func (CompileRequested) isMsg()   {}
func (CompileFinished) isMsg()    {}
func (FormatRequested) isMsg()    {}
func (CodeFormatted) isMsg()      {}
func (SettingsChanged) isMsg()    {}
func (PaneResized) isMsg()        {}
func (PaneOpened) isMsg()         {}
func (PaneMsg) isMsg()            {}
func (WorkspaceAttached) isMsg()  {}
func (WorkspaceDetached) isMsg()  {}
func (KeepAlive) isMsg()          {}
func (OperationFailed) isMsg()    {}
func (StatusExpired) isMsg()      {}
