package interp

// SignalKind classifies the control-flow outcome of executing a statement.
type SignalKind int

const (
	SigNone SignalKind = iota
	SigBreak
	SigContinue
	SigReturn
)

// Signal threads break/continue/return through nested statement execution.
// Loops consume Break and Continue; call sites consume Return and its value.
type Signal struct {
	Kind  SignalKind
	Value Value
}

var signalNone = Signal{}

// Stops reports whether a pending signal should stop the current body.
func (s Signal) Stops() bool {
	return s.Kind != SigNone
}
