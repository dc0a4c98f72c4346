// Package config holds the settings of a blotter run and loads them from
// the optional .blotter YAML file.
//
// Settings are layered: NewConfig defaults, then the config file applied with
// File.Apply, then CLI flags. Validate is called once before anything runs.
package config
