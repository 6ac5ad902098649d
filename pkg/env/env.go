package env

import "os"

// Get reads key from the environment. Unset and empty both yield the
// fallback; an empty override is never meaningful here.
func Get(key, fallback string) string {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	return val
}
