package redis

import (
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// AsynqOptions parses the configured URL into connection options for the task queue
func (c *Config) AsynqOptions() (*asynq.RedisClientOpt, error) {
	opt, err := c.Options()
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	return ToAsynq(opt), nil
}

// ToAsynq carries the connection settings of a go-redis client over to asynq.
// Pool and retry tuning stays with go-redis since asynq manages its own pool.
func ToAsynq(opt *redis.Options) *asynq.RedisClientOpt {
	out := &asynq.RedisClientOpt{
		Network:   opt.Network,
		Addr:      opt.Addr,
		Username:  opt.Username,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}

	if opt.DialTimeout > 0 {
		out.DialTimeout = opt.DialTimeout
	}
	if opt.ReadTimeout > 0 {
		out.ReadTimeout = opt.ReadTimeout
	}
	if opt.WriteTimeout > 0 {
		out.WriteTimeout = opt.WriteTimeout
	}

	return out
}
