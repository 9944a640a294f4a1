package config

import "github.com/redis/rueidis"

// NewRedisClient connects to the unread-count cache backend. The cache is
// optional infrastructure: callers treat a connection failure as "run without
// redis", so this returns the error instead of aborting startup.
func NewRedisClient(addr string) (rueidis.Client, error) {
	return rueidis.NewClient(rueidis.ClientOption{
		InitAddress: []string{addr},
	})
}
