package animation

import "time"

// DefaultConfig flashes three times over roughly two and a half seconds.
func DefaultConfig() Config {
	return Config{
		Period: 400 * time.Millisecond,
		Count:  3,
	}
}
