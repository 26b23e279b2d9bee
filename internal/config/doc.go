// Package config loads, normalizes, and validates btl settings.
//
// btl has no configuration file. Every knob comes from the environment
// (BTL_CACHE, APPDATA, HOME and the BTL_* tuning variables) and is decoded
// with envconfig into a single Config value. The host platform is detected
// once and carried on the Config so callers never branch on runtime.GOOS
// themselves.
//
// Always obtain settings through this package so downstream code receives
// trimmed values, expanded paths, and clear validation errors.
package config
