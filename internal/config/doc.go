// Package config provides configuration structures and utilities for
// authcheck: submission limits, clustering thresholds, input column
// mapping, report output selection, and the optional YAML file carrying
// the affiliation alias table.
package config
