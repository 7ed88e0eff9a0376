// Package flywheel is a terminal compositor for high-frequency streaming
// text output: a double-buffered differential renderer, a three-actor
// concurrency pipeline, and a streaming scrollback widget with a
// buffer-free fast path for plain appends.
package flywheel
