// Package session runs the interactive loop: list every entry with its
// current status, read a selection, confirm, link, and ask whether to
// continue.
//
// The loop is a small state machine (Listing, Prompting, Confirming, Done).
// Status is recomputed from the filesystem every time the listing is shown.
// Quitting, declining to continue and interrupting a prompt all end the
// session cleanly.
package session
