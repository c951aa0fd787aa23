// Package config loads settings from an optional YAML file and QUILL_*
// environment variables with viper, then validates them with
// go-playground/validator before any component starts.
package config
