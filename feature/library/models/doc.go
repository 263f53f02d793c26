// Package models defines the persisted library entry, the raw platform record,
// the synchronization summary and the closed enumerations (Platform, Source,
// Status, Mode) every branch of the reconciliation pipeline switches on.
package models
