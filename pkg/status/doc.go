// Package status classifies manifest entries against the filesystem.
//
// Status is never cached: callers classify again after every mutation, since
// an earlier link in the same batch may have changed a destination.
package status
