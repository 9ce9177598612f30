// Package vault is the caller-side layer in front of the secure store. It
// validates contacts and notes, enforces the contact cap and orders notes for
// display.
package vault
