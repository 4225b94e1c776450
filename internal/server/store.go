package server

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/podcastify/podcastify/internal/model"
)

// EpisodeStore holds generated episodes in memory with a TTL. Episodes are
// ephemeral session artifacts; durable storage belongs to the caller.
type EpisodeStore struct {
	episodes *gocache.Cache
}

// NewEpisodeStore creates a store whose entries expire after ttl
func NewEpisodeStore(ttl time.Duration) *EpisodeStore {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &EpisodeStore{
		episodes: gocache.New(ttl, 10*time.Minute),
	}
}

// Put stores an episode under its ID
func (s *EpisodeStore) Put(ep *model.Episode) {
	s.episodes.SetDefault(ep.ID, ep)
}

// Get returns the episode with the given ID, if it is still live
func (s *EpisodeStore) Get(id string) (*model.Episode, bool) {
	v, found := s.episodes.Get(id)
	if !found {
		return nil, false
	}
	return v.(*model.Episode), true
}

// Count returns the number of live episodes
func (s *EpisodeStore) Count() int {
	return s.episodes.ItemCount()
}
