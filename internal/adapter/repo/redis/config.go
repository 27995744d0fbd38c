package redisrepo

// Config holds Redis connection settings for the timer backend.
type Config struct {
	URL          string
	PoolSize     int
	MinIdleConns int
}

func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
	}
}
