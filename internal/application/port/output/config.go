package output

import "time"

type ConfigPort interface {
	Get(key string) string
	GetWithDefault(key string, defaultValue string) string
	GetBool(key string, defaultValue bool) bool
	GetFloat(key string, defaultValue float64) float64
	GetDuration(key string, defaultValue time.Duration) time.Duration
}
