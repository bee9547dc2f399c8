// Package peerlog centralizes logger construction for the peersend packages, so every package gets a
// consistently named github.com/op/go-logging logger without repeating boilerplate.
package peerlog

import (
	"github.com/op/go-logging"
)

// Get returns a logger named "peersend/<name>", matching the naming convention used throughout this
// module's packages (e.g. "peersend/scheduler", "peersend/crypting").
func Get(name string) *logging.Logger {
	return logging.MustGetLogger("peersend/" + name)
}
