package staging

import "time"

const (
	// DriverMemory keeps the batch in process memory.
	DriverMemory = "memory"
	// DriverRedis keeps the batch in redis.
	DriverRedis = "redis"
)

// Config holds configuration for the staging store.
type Config struct {
	// Driver selects the backend (memory, redis).
	Driver string `mapstructure:"driver" default:"memory"`
	// Sliding is the inactivity window after which the batch expires.
	Sliding time.Duration `mapstructure:"sliding" default:"144h"`
	// Absolute is the maximum lifetime of a batch after its last merge.
	Absolute time.Duration `mapstructure:"absolute" default:"720h"`
	// Key names the batch inside the backend.
	Key string `mapstructure:"key" default:"SapProducts"`
}

// RedisConfig holds the redis connection used by the redis driver.
type RedisConfig struct {
	// Addr is the redis host:port.
	Addr string `mapstructure:"addr" default:"localhost:6379"`
	// Password is the redis password.
	Password string `mapstructure:"password" default:""`
	// DB is the redis logical database.
	DB int `mapstructure:"db" default:"0"`
}

// Policy returns the expiration policy described by the config.
func (c Config) Policy() Policy {
	return Policy{Sliding: c.Sliding, Absolute: c.Absolute}
}
