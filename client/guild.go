package client

import (
	"sort"

	"github.com/cordkit/cordkit/message"
)

// Guild 服务器信息
type Guild struct {
	ID          string
	Name        string
	OwnerID     string
	Unavailable bool
	Emojis      []*message.Emoji

	c *Client
}

func (c *Client) FindGuild(guildID string) *Guild {
	c.registryLock.RLock()
	defer c.registryLock.RUnlock()
	return c.guilds[guildID]
}

// Guilds returns every cached guild ordered by id.
func (c *Client) Guilds() []*Guild {
	c.registryLock.RLock()
	ret := make([]*Guild, 0, len(c.guilds))
	for _, g := range c.guilds {
		ret = append(ret, g)
	}
	c.registryLock.RUnlock()
	sort.Slice(ret, func(i, j int) bool {
		return ret[i].ID < ret[j].ID
	})
	return ret
}

// AddGuild caches g, replacing a guild with the same id.
func (c *Client) AddGuild(g *Guild) {
	g.c = c
	c.registryLock.Lock()
	defer c.registryLock.Unlock()
	c.guilds[g.ID] = g
}

// markGuildUnavailable replaces a cached guild with a copy flagged
// unavailable. Its channels and their messages are kept.
func (c *Client) markGuildUnavailable(guildID string) *Guild {
	c.registryLock.Lock()
	defer c.registryLock.Unlock()
	old, ok := c.guilds[guildID]
	if !ok {
		return nil
	}
	g := *old
	g.Unavailable = true
	c.guilds[guildID] = &g
	return &g
}

// RemoveGuild drops the guild and every channel belonging to it.
func (c *Client) RemoveGuild(guildID string) *Guild {
	c.registryLock.Lock()
	defer c.registryLock.Unlock()
	g, ok := c.guilds[guildID]
	if !ok {
		return nil
	}
	delete(c.guilds, guildID)
	for id, ch := range c.channels {
		if ch.GuildID == guildID {
			delete(c.channels, id)
		}
	}
	return g
}

// Channels returns the cached channels of g ordered by position.
func (g *Guild) Channels() []*Channel {
	if g.c == nil {
		return nil
	}
	g.c.registryLock.RLock()
	var ret []*Channel
	for _, ch := range g.c.channels {
		if ch.GuildID == g.ID {
			ret = append(ret, ch)
		}
	}
	g.c.registryLock.RUnlock()
	sort.Slice(ret, func(i, j int) bool {
		if ret[i].Position != ret[j].Position {
			return ret[i].Position < ret[j].Position
		}
		return ret[i].ID < ret[j].ID
	})
	return ret
}

func (g *Guild) FindEmoji(emojiID string) *message.Emoji {
	for _, e := range g.Emojis {
		if e.ID == emojiID {
			return e
		}
	}
	return nil
}
