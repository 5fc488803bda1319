package feedsync

import "sync/atomic"

// IDSource hands out ids for locally authored posts.
type IDSource interface {
	Next() int64
}

// PlaceholderIDs counts down from -1 so local ids never overlap the
// server's positive range.
type PlaceholderIDs struct {
	n atomic.Int64
}

func NewPlaceholderIDs() *PlaceholderIDs {
	return &PlaceholderIDs{}
}

func (p *PlaceholderIDs) Next() int64 {
	return -p.n.Add(1)
}
