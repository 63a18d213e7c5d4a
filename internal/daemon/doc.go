// Package daemon keeps a long-running badge in step with its config file.
// It coordinates the config watcher and swaps the badge controller when a
// new, valid configuration appears.
package daemon
