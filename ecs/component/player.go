package component

type Player struct {
	// MoveSpeed is the distance moved per frame at full input.
	MoveSpeed float64
	Score     int
	// Contacts is the number of collider contacts resolved on the last move.
	Contacts int
}

var PlayerComponent = NewComponent[Player]()
