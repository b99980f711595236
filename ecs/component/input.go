package component

// Input stores per-frame input state for an entity. Axes are in [-1, 1].
type Input struct {
	MoveX float64
	MoveY float64
}

var InputComponent = NewComponent[Input]()
