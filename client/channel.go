package client

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/cordkit/cordkit/message"
	"github.com/cordkit/cordkit/utils"
)

// Channel 频道信息
type Channel struct {
	ID            string
	GuildID       string // empty for direct messages
	Name          string
	Topic         string
	Type          ChannelType
	Position      int
	NSFW          bool
	LastMessageID string

	// Messages holds the messages seen by this session, keyed by id.
	Messages *MessageCollection

	c *Client
}

// MessageCollection is the per channel message cache. Cached messages are
// replaced on update, never mutated, so a *Message obtained from it is a
// stable snapshot.
type MessageCollection struct {
	cache *utils.Cache[*Message]
}

func (c *Client) newMessageCollection() *MessageCollection {
	return &MessageCollection{cache: utils.NewCache[*Message](c.MessageCacheTTL, c.MaxMessagesPerChannel)}
}

// FindChannel returns the cached channel or nil.
func (c *Client) FindChannel(channelID string) *Channel {
	c.registryLock.RLock()
	defer c.registryLock.RUnlock()
	return c.channels[channelID]
}

// GetChannel is FindChannel with an error matching ErrChannelNotFound on a miss.
func (c *Client) GetChannel(channelID string) (*Channel, error) {
	if ch := c.FindChannel(channelID); ch != nil {
		return ch, nil
	}
	return nil, errors.Wrapf(ErrChannelNotFound, "channel %s", channelID)
}

// Channels returns every cached channel ordered by id.
func (c *Client) Channels() []*Channel {
	c.registryLock.RLock()
	ret := make([]*Channel, 0, len(c.channels))
	for _, ch := range c.channels {
		ret = append(ret, ch)
	}
	c.registryLock.RUnlock()
	sort.Slice(ret, func(i, j int) bool {
		return ret[i].ID < ret[j].ID
	})
	return ret
}

// AddChannel caches ch and returns the channel it replaced, if any. The
// replaced channel's message collection is carried over to ch.
func (c *Client) AddChannel(ch *Channel) *Channel {
	ch.c = c
	c.registryLock.Lock()
	defer c.registryLock.Unlock()
	old := c.channels[ch.ID]
	if old != nil {
		ch.Messages = old.Messages
	}
	if ch.Messages == nil {
		ch.Messages = c.newMessageCollection()
	}
	c.channels[ch.ID] = ch
	return old
}

func (c *Client) RemoveChannel(channelID string) *Channel {
	c.registryLock.Lock()
	defer c.registryLock.Unlock()
	ch, ok := c.channels[channelID]
	if !ok {
		return nil
	}
	delete(c.channels, channelID)
	return ch
}

// Guild returns the owning guild, nil for direct messages or uncached guilds.
func (ch *Channel) Guild() *Guild {
	if ch.GuildID == "" || ch.c == nil {
		return nil
	}
	return ch.c.FindGuild(ch.GuildID)
}

func (ch *Channel) Source() message.Source {
	src := message.Source{
		SourceType: message.SourceGuildChannel,
		GuildID:    ch.GuildID,
		ChannelID:  ch.ID,
	}
	switch ch.Type {
	case ChannelTypeDM:
		src.SourceType = message.SourceDirect
	case ChannelTypeGroupDM:
		src.SourceType = message.SourceGroupDirect
	}
	return src
}

// Get returns the cached message or nil. A miss is normal: only messages
// seen by this session are cached.
func (mc *MessageCollection) Get(messageID string) *Message {
	m, _ := mc.cache.Get(messageID)
	return m
}

func (mc *MessageCollection) Set(m *Message) {
	mc.cache.Add(m.ID, m)
}

func (mc *MessageCollection) Delete(messageID string) *Message {
	m, _ := mc.cache.Delete(messageID)
	return m
}

func (mc *MessageCollection) Len() int {
	return mc.cache.Count()
}

// Keys returns the cached message ids, oldest first.
func (mc *MessageCollection) Keys() []string {
	return mc.cache.GetKeys()
}
