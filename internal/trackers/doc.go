// Package trackers maintains the daily BitTorrent tracker list cache.
//
// The cache is a directory holding one plain-text file per calendar day,
// named btl-YYYYMMDD.txt, each containing a single comma-separated line of
// tracker URLs. The date stamp is both the cache key and the invalidation
// mechanism: a new day is a cache miss by construction, so there is no TTL
// and no sweep. Old files accumulate and are never removed by btl.
//
// Downloads buffer the complete response body before splitting, and writes
// go through a temp file plus rename under an advisory lock (btl.lock) so
// concurrent btl processes never observe a half-written list.
package trackers
