package client

import (
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/cordkit/cordkit/binary"
)

const opDispatch = 0

var decoders = map[string]func(*Client, gjson.Result) error{
	"READY":                         decodeReady,
	"GUILD_CREATE":                  decodeGuildCreate,
	"GUILD_DELETE":                  decodeGuildDelete,
	"CHANNEL_CREATE":                decodeChannelUpsert,
	"CHANNEL_UPDATE":                decodeChannelUpsert,
	"CHANNEL_DELETE":                decodeChannelDelete,
	"MESSAGE_CREATE":                decodeMessageCreate,
	"MESSAGE_UPDATE":                decodeMessageUpdate,
	"MESSAGE_DELETE":                decodeMessageDelete,
	"MESSAGE_REACTION_ADD":          decodeReactionAdd,
	"MESSAGE_REACTION_REMOVE":       decodeReactionRemove,
	"MESSAGE_REACTION_REMOVE_ALL":   decodeReactionRemoveAll,
	"MESSAGE_REACTION_REMOVE_EMOJI": decodeReactionRemoveEmoji,
}

// HandleDispatch applies one gateway payload to the registry and fires the
// matching events. Payloads compressed individually with zlib are accepted
// too. Frames that are not dispatches, and dispatch names without a decoder,
// are ignored.
func (c *Client) HandleDispatch(payload []byte) error {
	if len(payload) > 0 && payload[0] == 0x78 {
		var err error
		if payload, err = binary.ZlibUncompress(payload); err != nil {
			c.stat.DispatchDropped.Inc()
			return errors.Wrap(err, "inflate payload")
		}
	}
	if !gjson.ValidBytes(payload) {
		c.stat.DispatchDropped.Inc()
		c.dump("invalid gateway payload", payload)
		return errors.Wrap(ErrInvalidPayload, "not json")
	}
	frame := gjson.ParseBytes(payload)
	if frame.Get("op").Int() != opDispatch {
		return nil
	}
	c.stat.DispatchReceived.Inc()
	if s := frame.Get("s"); s.Type == gjson.Number {
		c.stat.LastSequence.Store(s.Int())
	}
	name := frame.Get("t").String()
	decoder, ok := decoders[name]
	if !ok {
		c.stat.DispatchUnknown.Inc()
		c.debug("unhandled dispatch %s", name)
		return nil
	}
	if err := decoder(c, frame.Get("d")); err != nil {
		c.stat.DispatchDropped.Inc()
		c.dump("decode %s error: %v", payload, name, err)
		return errors.Wrapf(err, "decode %s", name)
	}
	return nil
}

// HandleCompressedDispatch feeds a zlib-stream transport frame. Dispatches
// spanning several frames are handled once their last frame arrives.
func (c *Client) HandleCompressedDispatch(frame []byte) error {
	c.streamLock.Lock()
	payload, err := c.stream.Feed(frame)
	c.streamLock.Unlock()
	if err != nil {
		c.stat.DispatchDropped.Inc()
		return errors.Wrap(err, "inflate gateway frame")
	}
	if payload == nil {
		return nil
	}
	return c.HandleDispatch(payload)
}

func decodeReady(c *Client, d gjson.Result) error {
	selfID, err := requireString(d, "user.id")
	if err != nil {
		return err
	}
	c.SelfID.Store(selfID)
	for _, raw := range d.Get("guilds").Array() {
		g, err := c.factory.CreateGuild(raw)
		if err != nil {
			return err
		}
		if c.FindGuild(g.ID) == nil {
			c.AddGuild(g)
		}
	}
	c.info("session ready as %s", selfID)
	return nil
}

func decodeGuildCreate(c *Client, d gjson.Result) error {
	g, err := c.factory.CreateGuild(d)
	if err != nil {
		return err
	}
	raws := d.Get("channels").Array()
	channels := make([]*Channel, 0, len(raws))
	for _, raw := range raws {
		ch, err := c.factory.CreateChannel(raw)
		if err != nil {
			return errors.Wrapf(err, "guild %s", g.ID)
		}
		if ch.GuildID == "" {
			ch.GuildID = g.ID
		}
		channels = append(channels, ch)
	}
	c.AddGuild(g)
	for _, ch := range channels {
		c.AddChannel(ch)
	}
	return nil
}

func decodeGuildDelete(c *Client, d gjson.Result) error {
	guildID, err := requireString(d, "id")
	if err != nil {
		return err
	}
	// an outage, not a removal
	if d.Get("unavailable").Bool() {
		if c.markGuildUnavailable(guildID) == nil {
			c.debug("outage of uncached guild %s", guildID)
		}
		return nil
	}
	if c.RemoveGuild(guildID) == nil {
		c.debug("delete of uncached guild %s", guildID)
	}
	return nil
}

func decodeChannelUpsert(c *Client, d gjson.Result) error {
	ch, err := c.factory.CreateChannel(d)
	if err != nil {
		return err
	}
	if old := c.AddChannel(ch); old != nil {
		c.ChannelUpdatedEvent.dispatch(c, &ChannelUpdatedEvent{OldChannel: old, NewChannel: ch})
		return nil
	}
	c.ChannelCreatedEvent.dispatch(c, &ChannelCreatedEvent{Channel: ch})
	return nil
}

func decodeChannelDelete(c *Client, d gjson.Result) error {
	channelID, err := requireString(d, "id")
	if err != nil {
		return err
	}
	if ch := c.RemoveChannel(channelID); ch != nil {
		c.ChannelDeletedEvent.dispatch(c, &ChannelDeletedEvent{Channel: ch})
	}
	return nil
}

func decodeMessageCreate(c *Client, d gjson.Result) error {
	m, err := c.factory.CreateMessage(d)
	if err != nil {
		return err
	}
	ch := c.FindChannel(m.ChannelID)
	if ch == nil {
		c.warning("message %s dropped: channel %s not cached", m.ID, m.ChannelID)
		c.stat.DispatchDropped.Inc()
		return nil
	}
	c.updateLock.Lock()
	ch.Messages.Set(m)
	c.updateLock.Unlock()
	c.MessageCreatedEvent.dispatch(c, &MessageCreatedEvent{Message: m})
	return nil
}

// MESSAGE_UPDATE payloads may be partial, only the fields present are applied.
func decodeMessageUpdate(c *Client, d gjson.Result) error {
	messageID, err := requireString(d, "id")
	if err != nil {
		return err
	}
	edited, err := parseTime(d, "edited_timestamp")
	if err != nil {
		return err
	}
	updated := c.updateCachedMessage(d.Get("channel_id").String(), messageID, func(m *Message) {
		if v := d.Get("content"); v.Exists() {
			m.Content = v.String()
		}
		if v := d.Get("pinned"); v.Exists() {
			m.Pinned = v.Bool()
		}
		if d.Get("edited_timestamp").Exists() {
			m.EditedTimestamp = edited
		}
	})
	if !updated {
		c.debug("update of uncached message %s", messageID)
	}
	return nil
}

func decodeMessageDelete(c *Client, d gjson.Result) error {
	messageID, err := requireString(d, "id")
	if err != nil {
		return err
	}
	channelID := d.Get("channel_id").String()
	var deleted *Message
	if ch := c.FindChannel(channelID); ch != nil {
		c.updateLock.Lock()
		deleted = ch.Messages.Delete(messageID)
		c.updateLock.Unlock()
	}
	c.MessageDeletedEvent.dispatch(c, &MessageDeletedEvent{
		ChannelID: channelID,
		MessageID: messageID,
		Message:   deleted,
	})
	return nil
}

// updateCachedMessage replaces a cached message with a copy changed by f.
// It returns false when the message is not cached.
func (c *Client) updateCachedMessage(channelID, messageID string, f func(m *Message)) bool {
	c.updateLock.Lock()
	defer c.updateLock.Unlock()
	ch := c.FindChannel(channelID)
	if ch == nil {
		return false
	}
	old := ch.Messages.Get(messageID)
	if old == nil {
		return false
	}
	m := old.clone()
	f(m)
	ch.Messages.Set(m)
	return true
}

func decodeReactionAdd(c *Client, d gjson.Result) error {
	r, err := c.factory.CreateReaction(d)
	if err != nil {
		return err
	}
	emoji := r.Emoji()
	if emoji == nil {
		return errors.Wrap(ErrMissingField, "emoji")
	}
	userID := d.Get("user_id").String()
	self := c.isSelf(userID)
	r.Count, r.Me = 1, self
	event := &ReactionAddedEvent{
		UserID:   userID,
		GuildID:  d.Get("guild_id").String(),
		Reaction: r,
	}
	c.updateCachedMessage(r.ChannelID, r.MessageID, func(m *Message) {
		if i := m.indexEmoji(emoji); i >= 0 {
			m.Reactions[i].Count++
			m.Reactions[i].Me = m.Reactions[i].Me || self
			event.Reaction = m.Reactions[i]
			return
		}
		m.Reactions = append(m.Reactions, r)
	})
	c.ReactionAddedEvent.dispatch(c, event)
	return nil
}

func decodeReactionRemove(c *Client, d gjson.Result) error {
	r, err := c.factory.CreateReaction(d)
	if err != nil {
		return err
	}
	emoji := r.Emoji()
	if emoji == nil {
		return errors.Wrap(ErrMissingField, "emoji")
	}
	userID := d.Get("user_id").String()
	self := c.isSelf(userID)
	event := &ReactionRemovedEvent{
		UserID:   userID,
		GuildID:  d.Get("guild_id").String(),
		Reaction: r,
	}
	c.updateCachedMessage(r.ChannelID, r.MessageID, func(m *Message) {
		i := m.indexEmoji(emoji)
		if i < 0 {
			return
		}
		left := m.Reactions[i]
		left.Count--
		if self {
			left.Me = false
		}
		if left.Count <= 0 {
			left.Count = 0
			m.Reactions = append(m.Reactions[:i], m.Reactions[i+1:]...)
		}
		event.Reaction = left
	})
	c.ReactionRemovedEvent.dispatch(c, event)
	return nil
}

func decodeReactionRemoveAll(c *Client, d gjson.Result) error {
	channelID, err := requireString(d, "channel_id")
	if err != nil {
		return err
	}
	messageID, err := requireString(d, "message_id")
	if err != nil {
		return err
	}
	c.updateCachedMessage(channelID, messageID, func(m *Message) {
		m.Reactions = nil
	})
	c.ReactionsClearedEvent.dispatch(c, &ReactionsClearedEvent{
		ChannelID: channelID,
		MessageID: messageID,
	})
	return nil
}

func decodeReactionRemoveEmoji(c *Client, d gjson.Result) error {
	r, err := c.factory.CreateReaction(d)
	if err != nil {
		return err
	}
	emoji := r.Emoji()
	if emoji == nil {
		return errors.Wrap(ErrMissingField, "emoji")
	}
	c.updateCachedMessage(r.ChannelID, r.MessageID, func(m *Message) {
		if i := m.indexEmoji(emoji); i >= 0 {
			m.Reactions = append(m.Reactions[:i], m.Reactions[i+1:]...)
		}
	})
	c.ReactionsClearedEvent.dispatch(c, &ReactionsClearedEvent{
		ChannelID: r.ChannelID,
		MessageID: r.MessageID,
		Emoji:     emoji,
	})
	return nil
}
