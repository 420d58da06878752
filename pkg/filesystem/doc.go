// Package filesystem provides the OS-backed implementation of types.FS.
//
// Every component that touches the disk (classifier, backup service, link
// transaction) does so through types.FS so tests can inject failures.
package filesystem
