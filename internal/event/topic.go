package event

import "strings"

// Topic identifies an event kind using dot notation.
// Examples: "lifecycle.pause", "menu.new_game", "tick.update".
type Topic string

// Separator is the character used to separate topic segments.
const Separator = "."

// String returns the topic as a string.
func (t Topic) String() string {
	return string(t)
}

// Segments returns the topic split by the separator.
func (t Topic) Segments() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), Separator)
}

// Parent returns the parent topic by removing the last segment.
// Returns an empty topic if there is no parent.
func (t Topic) Parent() Topic {
	s := string(t)
	idx := strings.LastIndex(s, Separator)
	if idx < 0 {
		return ""
	}
	return Topic(s[:idx])
}

// Base returns the last segment of the topic.
func (t Topic) Base() string {
	s := string(t)
	idx := strings.LastIndex(s, Separator)
	if idx < 0 {
		return s
	}
	return s[idx+1:]
}

// IsValid returns true if the topic is non-empty and contains no
// empty segments.
func (t Topic) IsValid() bool {
	if t == "" {
		return false
	}
	for _, seg := range t.Segments() {
		if seg == "" {
			return false
		}
	}
	return true
}

// TopicProvider is implemented by event types that can name their topic.
// Every event published on the bus must implement it.
type TopicProvider interface {
	EventTopic() Topic
}
