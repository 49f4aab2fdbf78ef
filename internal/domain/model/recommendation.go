package model

// RecommendationLevel is the skill level a window is suited for
type RecommendationLevel string

const (
	LevelExtremeMarina    RecommendationLevel = "extreme-marina"
	LevelExtreme          RecommendationLevel = "extreme"
	LevelAdvanced         RecommendationLevel = "advanced"
	LevelOptimal          RecommendationLevel = "optimal"
	LevelBeginnerFriendly RecommendationLevel = "beginner-friendly"
	LevelModerate         RecommendationLevel = "moderate"
)

// Recommendation is human facing advice derived from wave height and wind
type Recommendation struct {
	Level          RecommendationLevel `json:"level"`
	Description    string              `json:"description"`
	Emoji          string              `json:"emoji"`
	Recommendation string              `json:"recommendation"`
	Audience       string              `json:"audience"`
}
