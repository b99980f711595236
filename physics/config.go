package physics

const (
	DefaultBucketWidth  = 50
	DefaultBucketHeight = 50
)

// Config sizes the broad phase. Debug turns on logging of ignored
// registrations and stale removals.
type Config struct {
	BucketWidth  float64
	BucketHeight float64
	Debug        bool
}

func DefaultConfig() Config {
	return Config{BucketWidth: DefaultBucketWidth, BucketHeight: DefaultBucketHeight}
}

func (c Config) normalized() Config {
	if c.BucketWidth <= 0 {
		c.BucketWidth = DefaultBucketWidth
	}
	if c.BucketHeight <= 0 {
		c.BucketHeight = DefaultBucketHeight
	}
	return c
}
