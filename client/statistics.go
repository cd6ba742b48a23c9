package client

import "go.uber.org/atomic"

type Statistics struct {
	DispatchReceived atomic.Uint64 `json:"dispatch_received"`
	DispatchDropped  atomic.Uint64 `json:"dispatch_dropped"`
	DispatchUnknown  atomic.Uint64 `json:"dispatch_unknown"`
	LastSequence     atomic.Int64  `json:"last_sequence"`
}
