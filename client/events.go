package client

import "github.com/cordkit/cordkit/utils"

// EventHandle holds the subscribers of one event type. Subscribe before the
// first dispatch is handled; handlers are not guarded by a lock.
type EventHandle[T any] struct {
	handlers []func(client *Client, event T)
}

func (handle *EventHandle[T]) Subscribe(handler func(client *Client, event T)) {
	handle.handlers = append(handle.handlers, handler)
}

func (handle *EventHandle[T]) dispatch(client *Client, event T) {
	for _, handler := range handle.handlers {
		if err := utils.CoverError(func() { handler(client, event) }); err != nil {
			client.error("event handler panic: %v", err)
		}
	}
}
