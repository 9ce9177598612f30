// Package alert composes the emergency message and hands it to an SMS sender.
//
// Location is best effort: any locator failure degrades the message to
// "Location unavailable" instead of aborting the alert.
package alert
