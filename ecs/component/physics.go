package component

// PhysicsBody marks an entity as owning a body in the physics world. The
// body itself lives in the physics world; removing this component or
// destroying the entity schedules the body for removal on the next sync.
type PhysicsBody struct{}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
