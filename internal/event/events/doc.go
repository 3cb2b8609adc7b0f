// Package events defines the event types and topic constants published on
// the application bus: lifecycle transitions, menu requests, simulation
// ticks, and achievement unlocks.
package events
