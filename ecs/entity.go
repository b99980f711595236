package ecs

import "strconv"

// Entity is a generation-checked handle: the low 32 bits hold the index,
// the high 32 bits the generation of that index.
type Entity uint64

const entityIDBits = 32

func makeEntity(index, gen uint32) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(index))
}

// Index returns the slot index of the handle. Index 0 is never issued.
func (e Entity) Index() uint32 {
	return uint32(e)
}

// Generation returns how many times the index has been recycled.
func (e Entity) Generation() uint32 {
	return uint32(uint64(e) >> entityIDBits)
}

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e.Index()), 10) + "v" + strconv.FormatUint(uint64(e.Generation()), 10)
}

func (e Entity) Valid() bool {
	return e.Index() > 0
}
