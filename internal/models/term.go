package models

// Term statuses as maintained by the term bank.
const (
	TermStatusActive  = "active"
	TermStatusRetired = "retired"
	TermStatusPending = "pending_review"
)

// Term is a slang entry from the term bank. The engine only reads terms;
// authoring and moderation happen elsewhere.
type Term struct {
	ID          string  `bson:"_id,omitempty" json:"id"`
	Text        string  `bson:"text" json:"text"`
	Definition  string  `bson:"definition" json:"definition"`
	Example     string  `bson:"example" json:"example"`
	Explanation string  `bson:"explanation" json:"explanation"`
	Category    string  `bson:"category" json:"category"`
	Difficulty  string  `bson:"difficulty" json:"difficulty"`
	QuizScore   float64 `bson:"quiz_score" json:"quiz_score"`
	Status      string  `bson:"status" json:"status"`
}

// DistractorPool holds curated wrong answers for one category/difficulty pair.
type DistractorPool struct {
	ID         string   `bson:"_id,omitempty" json:"id"`
	Category   string   `bson:"category" json:"category"`
	Difficulty string   `bson:"difficulty" json:"difficulty"`
	Entries    []string `bson:"entries" json:"entries"`
}
