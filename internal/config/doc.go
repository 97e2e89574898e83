// Package config loads, normalizes, and validates the avatarforge
// configuration file.
//
// Configuration is TOML with a documented sample embedded in the binary.
// Load fills in defaults first, so a missing file or a sparse file both
// produce a complete, validated Config.
package config
