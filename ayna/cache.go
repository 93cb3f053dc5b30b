package ayna

import (
	"time"

	"github.com/bluele/gcache"
)

const (
	// DefaultListTTL bounds how long the bus list stays fresh.
	DefaultListTTL = 5 * time.Minute
	// DefaultDetailsTTL bounds how long one bus's details stay fresh.
	DefaultDetailsTTL = 90 * time.Second

	listCacheKey     = "bus-list"
	detailsCacheSize = 512
)

// cacheSet holds the two time-boxed caches: a single-slot list cache and a
// per-id details cache. Expiry is lazy, checked on read.
type cacheSet struct {
	list    gcache.Cache
	details gcache.Cache
}

func newCacheSet(clock gcache.Clock, listTTL, detailsTTL time.Duration) *cacheSet {
	if listTTL <= 0 {
		listTTL = DefaultListTTL
	}
	if detailsTTL <= 0 {
		detailsTTL = DefaultDetailsTTL
	}
	listBuilder := gcache.New(1).LRU().Expiration(listTTL)
	detailsBuilder := gcache.New(detailsCacheSize).LRU().Expiration(detailsTTL)
	if clock != nil {
		listBuilder = listBuilder.Clock(clock)
		detailsBuilder = detailsBuilder.Clock(clock)
	}
	return &cacheSet{
		list:    listBuilder.Build(),
		details: detailsBuilder.Build(),
	}
}

func (cs *cacheSet) getList() (*BusList, bool) {
	v, err := cs.list.Get(listCacheKey)
	if err != nil {
		return nil, false
	}
	bl, ok := v.(*BusList)
	return bl, ok
}

func (cs *cacheSet) setList(bl *BusList) {
	_ = cs.list.Set(listCacheKey, bl)
}

func (cs *cacheSet) getDetails(id int) (*BusDetails, bool) {
	v, err := cs.details.Get(id)
	if err != nil {
		return nil, false
	}
	d, ok := v.(*BusDetails)
	return d, ok
}

func (cs *cacheSet) setDetails(id int, d *BusDetails) {
	_ = cs.details.Set(id, d)
}

// reset empties both caches unconditionally.
func (cs *cacheSet) reset() {
	cs.list.Purge()
	cs.details.Purge()
}
