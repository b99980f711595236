package component

// ScriptMover drives a body from a tengo script. The script sees the globals
// x, y and frame and must assign dx and dy.
type ScriptMover struct {
	Name   string
	Source string
	// Resolve moves with collision push-out instead of a plain move.
	Resolve bool
}

var ScriptMoverComponent = NewComponent[ScriptMover]()
