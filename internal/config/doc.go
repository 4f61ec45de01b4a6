// Package config provides the configuration structure of logmetrics and
// loading of the optional .logmetrics YAML file.
package config
