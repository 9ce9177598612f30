// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (persisted state, alert wire shapes) and contracts
// (interfaces) only.
package domain
