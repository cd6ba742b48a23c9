package client

import (
	"time"

	"github.com/pkg/errors"

	"github.com/cordkit/cordkit/message"
)

// Message is a cached chat message. Messages held by a MessageCollection are
// never modified in place; updates store a modified copy.
type Message struct {
	ID              string
	ChannelID       string
	GuildID         string
	AuthorID        string
	Content         string
	Timestamp       time.Time
	EditedTimestamp time.Time
	Pinned          bool
	Reactions       []*Reaction

	c *Client
}

func (m *Message) Channel() (*Channel, error) {
	if m.c == nil {
		return nil, errors.Wrap(ErrChannelNotFound, "message not bound to a client")
	}
	return m.c.GetChannel(m.ChannelID)
}

// FindReaction returns the reaction whose composite id matches, or nil.
func (m *Message) FindReaction(reactionID string) *Reaction {
	for _, r := range m.Reactions {
		if r.ID() == reactionID {
			return r
		}
	}
	return nil
}

// indexEmoji returns the index of the reaction for e, or -1. Custom emojis
// are matched by id only: the name is null once the emoji is deleted from
// its guild.
func (m *Message) indexEmoji(e *message.Emoji) int {
	for i, r := range m.Reactions {
		if sameEmoji(r.Emoji(), e) {
			return i
		}
	}
	return -1
}

func sameEmoji(a, b *message.Emoji) bool {
	if a == nil || b == nil {
		return false
	}
	if a.ID != "" || b.ID != "" {
		return a.ID == b.ID
	}
	return a.Name == b.Name
}

// clone copies m and its reaction list. Reactions are copied too so the
// copy can be changed without touching what readers of m hold.
func (m *Message) clone() *Message {
	cp := *m
	cp.Reactions = make([]*Reaction, len(m.Reactions))
	for i, r := range m.Reactions {
		rc := *r
		cp.Reactions[i] = &rc
	}
	return &cp
}
