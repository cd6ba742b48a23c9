package client

import (
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/cordkit/cordkit/binary"
)

// Client owns the in-memory registry every part resolves its relations
// through. Parts never own each other: a Reaction keeps ids and asks the
// client for its channel and message each time.
type Client struct {
	// option, set before the first dispatch
	MessageCacheTTL       time.Duration
	MaxMessagesPerChannel int

	// account info
	SelfID atomic.String

	stat    Statistics
	factory *Factory
	logger  Logger

	// registry
	guilds       map[string]*Guild
	channels     map[string]*Channel
	registryLock sync.RWMutex

	// message cache writes from dispatches run one at a time
	updateLock sync.Mutex

	stream     binary.ZlibStream
	streamLock sync.Mutex

	// event handles
	ChannelCreatedEvent   EventHandle[*ChannelCreatedEvent]
	ChannelUpdatedEvent   EventHandle[*ChannelUpdatedEvent]
	ChannelDeletedEvent   EventHandle[*ChannelDeletedEvent]
	MessageCreatedEvent   EventHandle[*MessageCreatedEvent]
	MessageDeletedEvent   EventHandle[*MessageDeletedEvent]
	ReactionAddedEvent    EventHandle[*ReactionAddedEvent]
	ReactionRemovedEvent  EventHandle[*ReactionRemovedEvent]
	ReactionsClearedEvent EventHandle[*ReactionsClearedEvent]
}

func NewClient() *Client {
	cli := &Client{
		guilds:   map[string]*Guild{},
		channels: map[string]*Channel{},
	}
	cli.factory = &Factory{c: cli}
	return cli
}

// Factory returns the factory building parts bound to c.
func (c *Client) Factory() *Factory {
	return c.factory
}

func (c *Client) GetStatistics() *Statistics {
	return &c.stat
}

// ResetStream drops the compressed transport state. Call it whenever the
// underlying connection is replaced.
func (c *Client) ResetStream() {
	c.streamLock.Lock()
	defer c.streamLock.Unlock()
	c.stream.Reset()
}

func (c *Client) isSelf(userID string) bool {
	self := c.SelfID.Load()
	return self != "" && self == userID
}
