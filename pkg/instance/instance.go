package instance

import "os"

// GetID returns the process identifier shown in logs and on the admin dashboard: the platform
// dyno name when set, then the hostname.
func GetID() string {
	if id := os.Getenv("STOREFRONT_INSTANCE_ID"); id != "" {
		return id
	}
	if id := os.Getenv("DYNO"); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "local"
}
