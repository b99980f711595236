package component

// Pickup is a collectible. Its body is expected to carry a sensor that
// detects the player.
type Pickup struct {
	Kind  string
	Value int
}

var PickupComponent = NewComponent[Pickup]()
