package message

// Emoji is a custom guild emoji or a unicode emoji.
type Emoji struct {
	ID            string
	Name          string
	Roles         []string
	RequireColons bool
	Managed       bool
	Animated      bool
	Available     bool

	// Partial is set when the emoji was rebuilt from a fragment embedded in
	// another payload (a reaction for example) instead of a guild emoji list.
	// Fields absent from that fragment are left zero.
	Partial bool
}

// IsUnicode reports whether e is a standard unicode emoji. Those have no id.
func (e *Emoji) IsUnicode() bool {
	return e.ID == ""
}

// String returns the form used to render e inside message content.
func (e *Emoji) String() string {
	switch {
	case e.IsUnicode():
		return e.Name
	case e.Animated:
		return "<a:" + e.Name + ":" + e.ID + ">"
	default:
		return "<:" + e.Name + ":" + e.ID + ">"
	}
}

// ReactionString returns the form the REST reaction endpoints expect.
func (e *Emoji) ReactionString() string {
	if e.IsUnicode() {
		return e.Name
	}
	return e.Name + ":" + e.ID
}
