package events

// EntityChangedEvent est publié après chaque mutation confirmée par la
// persistance (jamais avant).
const EntityChangedEvent = "entity.changed"

type EntityChanged struct {
	Collection string
	Action     string // created | updated | deleted
	ID         string
}

func (e EntityChanged) Name() string { return EntityChangedEvent }
