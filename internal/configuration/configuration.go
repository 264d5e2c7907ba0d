// Package configuration implements reading of application settings from
// Unix-type environment files, with process environment overrides.
package configuration

import (
	"strconv"
)

type genericConfigProvider interface {
	Read(filenames ...string) (envMap map[string]string, err error)
}

type envProvider interface {
	Getenv(key string) string
}

// Handler is the principal implementation for configuration reading.
type Handler struct {
	configProvider genericConfigProvider
	osHandler      envProvider
}

// NewHandler returns a pointer to a new configuration [Handler].
func NewHandler(configProvider genericConfigProvider, osHandler envProvider) *Handler {
	return &Handler{
		configProvider: configProvider,
		osHandler:      osHandler,
	}
}

// ReadGeneric reads generic Unix-type configuration files into a map
// (map[key]value).
func (c *Handler) ReadGeneric(filenames ...string) (map[string]string, error) {
	return c.configProvider.Read(filenames...)
}

// MapKeyToString returns the string value for a key, preferring a process
// environment override over the mapped file value. It returns an empty string
// when the key is set in neither.
func (c *Handler) MapKeyToString(envMap map[string]string, key string) string {
	if value := c.osHandler.Getenv(key); value != "" {
		return value
	}

	if value, exists := envMap[key]; exists {
		return value
	}

	return ""
}

// MapKeyToInt returns the integer value for a key, or -1 when the key is
// unset or not parseable as an integer.
func (c *Handler) MapKeyToInt(envMap map[string]string, key string) int {
	value := c.MapKeyToString(envMap, key)
	if value == "" {
		return -1
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return -1
	}

	return intValue
}
