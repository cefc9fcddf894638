// Package config loads, normalizes, and validates radiotimeline configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the RADIOTIMELINE_BASE_DIR
// environment override. The Config type centralizes the archive layout and
// every classification threshold, so the pipeline and CLI discover them in
// one pass.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical log formats, and clear validation errors.
package config
