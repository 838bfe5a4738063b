// Package env provides raw environment lookups for the few values read
// before configuration is parsed.
package env

import "os"

// Get returns the named environment variable, or fallback when it is unset
// or empty.
func Get(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}
