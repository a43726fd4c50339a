package core

// Id identifies a world entity. Ids are allocated monotonically and the
// zero value is never issued.
type Id uint64

// InvalidId is the absent-entity sentinel
const InvalidId Id = 0

// Valid reports whether the id refers to an allocated entity
func (id Id) Valid() bool {
	return id != InvalidId
}
