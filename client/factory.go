package client

import (
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/cordkit/cordkit/message"
	"github.com/cordkit/cordkit/utils"
)

// Factory builds parts bound to its client from raw JSON fragments.
type Factory struct {
	c *Client
}

// detach copies a fragment so it does not pin the whole payload in memory.
func detach(r gjson.Result) gjson.Result {
	return gjson.Parse(utils.CloneString(r.Raw))
}

func present(r gjson.Result) bool {
	return r.Exists() && r.Type != gjson.Null
}

func requireString(raw gjson.Result, path string) (string, error) {
	v := raw.Get(path).String()
	if v == "" {
		return "", errors.Wrap(ErrMissingField, path)
	}
	return v, nil
}

func parseTime(raw gjson.Result, path string) (time.Time, error) {
	v := raw.Get(path)
	if !present(v) || v.String() == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, v.String())
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrMalformedFragment, "%s: %v", path, err)
	}
	return t, nil
}

// CreateEmoji builds an emoji from its fragment. partial marks emojis rebuilt
// from a fragment embedded in another part.
func (f *Factory) CreateEmoji(raw gjson.Result, partial bool) (*message.Emoji, error) {
	if !raw.IsObject() {
		return nil, errors.Wrap(ErrMalformedFragment, "emoji is not an object")
	}
	e := &message.Emoji{
		ID:            raw.Get("id").String(),
		Name:          raw.Get("name").String(),
		RequireColons: raw.Get("require_colons").Bool(),
		Managed:       raw.Get("managed").Bool(),
		Animated:      raw.Get("animated").Bool(),
		Available:     raw.Get("available").Bool(),
		Partial:       partial,
	}
	if e.ID == "" && e.Name == "" {
		return nil, errors.Wrap(ErrMalformedFragment, "emoji has neither id nor name")
	}
	raw.Get("roles").ForEach(func(_, role gjson.Result) bool {
		e.Roles = append(e.Roles, role.String())
		return true
	})
	return e, nil
}

// CreateReaction builds a reaction from a MESSAGE_REACTION_* payload or any
// fragment carrying channel_id and message_id.
func (f *Factory) CreateReaction(raw gjson.Result) (*Reaction, error) {
	return f.createReaction(raw, raw.Get("channel_id").String(), raw.Get("message_id").String())
}

// createReaction is used for the reaction list of a message, whose entries
// carry no ids of their own.
func (f *Factory) createReaction(raw gjson.Result, channelID, messageID string) (*Reaction, error) {
	if channelID == "" {
		return nil, errors.Wrap(ErrMissingField, "reaction channel_id")
	}
	if messageID == "" {
		return nil, errors.Wrap(ErrMissingField, "reaction message_id")
	}
	r := &Reaction{
		Count:     int(raw.Get("count").Int()),
		Me:        raw.Get("me").Bool(),
		ChannelID: channelID,
		MessageID: messageID,
		c:         f.c,
	}
	if emoji := raw.Get("emoji"); present(emoji) {
		if _, err := f.CreateEmoji(emoji, true); err != nil {
			return nil, errors.Wrap(err, "reaction")
		}
		r.emoji = detach(emoji)
	}
	return r, nil
}

func (f *Factory) CreateMessage(raw gjson.Result) (*Message, error) {
	id, err := requireString(raw, "id")
	if err != nil {
		return nil, errors.Wrap(err, "message")
	}
	channelID, err := requireString(raw, "channel_id")
	if err != nil {
		return nil, errors.Wrap(err, "message")
	}
	m := &Message{
		ID:        id,
		ChannelID: channelID,
		GuildID:   raw.Get("guild_id").String(),
		AuthorID:  raw.Get("author.id").String(),
		Content:   raw.Get("content").String(),
		Pinned:    raw.Get("pinned").Bool(),
		c:         f.c,
	}
	if m.Timestamp, err = parseTime(raw, "timestamp"); err != nil {
		return nil, errors.Wrap(err, "message")
	}
	if m.EditedTimestamp, err = parseTime(raw, "edited_timestamp"); err != nil {
		return nil, errors.Wrap(err, "message")
	}
	for _, rr := range raw.Get("reactions").Array() {
		r, err := f.createReaction(rr, channelID, id)
		if err != nil {
			return nil, errors.Wrap(err, "message")
		}
		m.Reactions = append(m.Reactions, r)
	}
	return m, nil
}

// CreateChannel builds a channel. It is not cached until passed to
// Client.AddChannel.
func (f *Factory) CreateChannel(raw gjson.Result) (*Channel, error) {
	id, err := requireString(raw, "id")
	if err != nil {
		return nil, errors.Wrap(err, "channel")
	}
	return &Channel{
		ID:            id,
		GuildID:       raw.Get("guild_id").String(),
		Name:          raw.Get("name").String(),
		Topic:         raw.Get("topic").String(),
		Type:          ChannelType(raw.Get("type").Int()),
		Position:      int(raw.Get("position").Int()),
		NSFW:          raw.Get("nsfw").Bool(),
		LastMessageID: raw.Get("last_message_id").String(),
		c:             f.c,
	}, nil
}

// CreateGuild builds a guild and its emoji list. Channels embedded in a
// GUILD_CREATE payload are built separately.
func (f *Factory) CreateGuild(raw gjson.Result) (*Guild, error) {
	id, err := requireString(raw, "id")
	if err != nil {
		return nil, errors.Wrap(err, "guild")
	}
	g := &Guild{
		ID:          id,
		Name:        raw.Get("name").String(),
		OwnerID:     raw.Get("owner_id").String(),
		Unavailable: raw.Get("unavailable").Bool(),
		c:           f.c,
	}
	for _, er := range raw.Get("emojis").Array() {
		e, err := f.CreateEmoji(er, false)
		if err != nil {
			return nil, errors.Wrapf(err, "guild %s", id)
		}
		g.Emojis = append(g.Emojis, e)
	}
	return g, nil
}
