package entities

// AccuracyTier grades the share of correctly answered questions.
type AccuracyTier string

const (
	AccuracyExcellent AccuracyTier = "excellent" // 90% and above
	AccuracyGood      AccuracyTier = "good"      // 75% and above
	AccuracyFair      AccuracyTier = "fair"      // 60% and above
	AccuracyReview    AccuracyTier = "review"
)

// MistakesTier grades a play-through by the number of incorrect submissions.
type MistakesTier string

const (
	MistakesPerfect MistakesTier = "perfect" // no mistakes
	MistakesFew     MistakesTier = "few"     // up to 3
	MistakesSome    MistakesTier = "some"    // up to 6
	MistakesMany    MistakesTier = "many"
)

// CategoryStats counts correct answers within one category.
type CategoryStats struct {
	Category Category
	Correct  int
	Total    int
}

// Summary is the final-screen view of a session.
type Summary struct {
	Score        int
	Mistakes     int
	Correct      int
	Total        int
	Accuracy     int // percent, rounded
	Elapsed      int // seconds
	Reason       CompletionReason
	AccuracyTier AccuracyTier
	MistakesTier MistakesTier
	Categories   []CategoryStats
}
