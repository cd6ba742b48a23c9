package client

import (
	"github.com/pkg/errors"

	"github.com/cordkit/cordkit/message"
)

var (
	ErrChannelNotFound   = errors.New("channel not found")
	ErrMalformedFragment = errors.New("malformed payload fragment")
	ErrMissingField      = errors.New("missing required field")
	ErrInvalidPayload    = errors.New("invalid gateway payload")
)

type (
	ChannelType int

	ChannelCreatedEvent struct {
		Channel *Channel
	}

	ChannelUpdatedEvent struct {
		OldChannel *Channel // nil when the channel was not cached
		NewChannel *Channel
	}

	ChannelDeletedEvent struct {
		Channel *Channel
	}

	MessageCreatedEvent struct {
		Message *Message
	}

	MessageDeletedEvent struct {
		ChannelID string
		MessageID string
		Message   *Message // last cached copy, nil when it was not cached
	}

	// ReactionAddedEvent carries the reaction as aggregated on the cached
	// message after the add, or the single reaction from the dispatch when
	// the message is not cached.
	ReactionAddedEvent struct {
		UserID   string
		GuildID  string
		Reaction *Reaction
	}

	// ReactionRemovedEvent carries the reaction left after the removal. Its
	// Count is 0 when the last user removed it.
	ReactionRemovedEvent struct {
		UserID   string
		GuildID  string
		Reaction *Reaction
	}

	ReactionsClearedEvent struct {
		ChannelID string
		MessageID string
		Emoji     *message.Emoji // nil when every reaction was cleared
	}
)

const (
	ChannelTypeGuildText          ChannelType = 0
	ChannelTypeDM                 ChannelType = 1
	ChannelTypeGuildVoice         ChannelType = 2
	ChannelTypeGroupDM            ChannelType = 3
	ChannelTypeGuildCategory      ChannelType = 4
	ChannelTypeGuildAnnouncement  ChannelType = 5
	ChannelTypeAnnouncementThread ChannelType = 10
	ChannelTypePublicThread       ChannelType = 11
	ChannelTypePrivateThread      ChannelType = 12
	ChannelTypeGuildStageVoice    ChannelType = 13
	ChannelTypeGuildForum         ChannelType = 15
)

func (t ChannelType) IsThread() bool {
	return t == ChannelTypeAnnouncementThread || t == ChannelTypePublicThread || t == ChannelTypePrivateThread
}
