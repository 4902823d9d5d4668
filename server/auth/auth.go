package auth

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/moimlab/moim/internal/xtime"
)

const tokenLength = 48

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ1234567890")

func DefaultConfig() Config {
	return Config{
		SessionTTL: xtime.Duration(7 * 24 * time.Hour),
		LoginEvery: xtime.Duration(time.Second),
		LoginBurst: 10,
	}
}

type Config struct {
	SessionTTL xtime.Duration `toml:"session_ttl"`
	LoginEvery xtime.Duration `toml:"login_every"`
	LoginBurst int            `toml:"login_burst"`
}

func (c Config) String() string {
	return fmt.Sprintf("\n SessionTTL: %s\n LoginEvery: %s\n LoginBurst: %d",
		c.SessionTTL,
		c.LoginEvery,
		c.LoginBurst,
	)
}

// NewToken returns an opaque session token. Tokens are random, not
// derived from any user attribute.
func NewToken() string {
	b := make([]rune, tokenLength)
	for i := range b {
		b[i] = letters[rand.IntN(len(letters))]
	}
	return string(b)
}
