// Package profile persists named bags of subsystem-contributed settings
// and session save slots.
//
// A profile is identified by (title, version); loading a profile whose
// identity differs from the running application's is a strict no-op.
// Malformed or unreadable files are reported as not-found, never as errors.
package profile
