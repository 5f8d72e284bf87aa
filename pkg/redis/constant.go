package redis

import "time"

const (
	// DefaultConnectTimeout bounds the ping New runs before handing out a client.
	DefaultConnectTimeout = 5 * time.Second

	maxPort = 65535
	// maxDB is the highest logical database of a stock Redis server.
	maxDB = 15
)
