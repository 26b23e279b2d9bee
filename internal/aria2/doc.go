// Package aria2 launches the aria2c download manager with a tracker list
// and relays its console output.
//
// The client owns argument construction and the command-line echo; process
// handling sits behind the Executor interface so callers can stub it.
package aria2
