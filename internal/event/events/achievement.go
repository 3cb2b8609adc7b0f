package events

import "github.com/gantry-engine/gantry/internal/event"

// TopicAchievementUnlocked is published when an achievement is unlocked
// for the first time.
const TopicAchievementUnlocked event.Topic = "achievement.unlocked"

// AchievementUnlocked announces a newly unlocked achievement.
type AchievementUnlocked struct {
	// Name is the achievement's registered name.
	Name string

	// Description is the achievement's registered description.
	Description string
}

// EventTopic implements event.TopicProvider.
func (e AchievementUnlocked) EventTopic() event.Topic {
	return TopicAchievementUnlocked
}
