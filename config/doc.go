// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// All sections except server are optional and default to built-in values.
package config
