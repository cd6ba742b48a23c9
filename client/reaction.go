package client

import (
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/cordkit/cordkit/message"
)

// Reaction is one emoji on a message, aggregated over every user that
// applied it.
//
// Only the raw attributes are stored. Emoji, Message and Channel are
// resolved again on every call, so two calls may disagree if the registry
// changed in between.
type Reaction struct {
	Count     int
	Me        bool
	MessageID string
	ChannelID string

	emoji gjson.Result // raw fragment, zero when absent
	c     *Client
}

// ID returns the composite emoji identifier ":name:id", or "" when the
// reaction carries no emoji. Unicode emojis have no id and give ":name:".
func (r *Reaction) ID() string {
	if e := r.Emoji(); e != nil {
		return ":" + e.Name + ":" + e.ID
	}
	return ""
}

// Emoji builds a partial emoji from the raw fragment, nil when there is none.
// Every call returns a new value.
func (r *Reaction) Emoji() *message.Emoji {
	if !r.emoji.Exists() || r.c == nil {
		return nil
	}
	e, err := r.c.factory.CreateEmoji(r.emoji, true)
	if err != nil {
		// fragments are validated by CreateReaction
		r.c.error("reaction %s/%s: %v", r.ChannelID, r.MessageID, err)
		return nil
	}
	return e
}

// Message returns the reacted message if its channel and the message itself
// are cached, nil otherwise.
func (r *Reaction) Message() *Message {
	ch, err := r.Channel()
	if err != nil {
		return nil
	}
	return ch.Messages.Get(r.MessageID)
}

// Channel looks the channel up in the client registry. A miss returns an
// error matching ErrChannelNotFound, as does a reaction not built by a
// Factory.
func (r *Reaction) Channel() (*Channel, error) {
	if r.c == nil {
		return nil, errors.Wrap(ErrChannelNotFound, "reaction not bound to a client")
	}
	return r.c.GetChannel(r.ChannelID)
}
