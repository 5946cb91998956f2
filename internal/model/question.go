package model

// QuestionType defines the type of interview question
type QuestionType string

const (
	QuestionTypeBehavioral QuestionType = "behavioral" // Collaboration/communication/leadership
	QuestionTypeTechnical  QuestionType = "technical"  // Concept explanation, no code
	QuestionTypeCoding     QuestionType = "coding"     // Small coding problem with example I/O
)

// Difficulty levels for generated questions
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question is one generated interview question, embedded in an Interview.
// A generated set always holds exactly NumQuestions entries in the order
// behavioral, technical, technical, coding, coding with ids q1..q5.
type Question struct {
	ID         string       `json:"id" bson:"id"`
	Text       string       `json:"text" bson:"text"`
	Type       QuestionType `json:"type" bson:"type"`
	Category   string       `json:"category,omitempty" bson:"category,omitempty"`
	Difficulty Difficulty   `json:"difficulty,omitempty" bson:"difficulty,omitempty"`
	Weight     float64      `json:"weight" bson:"weight"`
}

// NumQuestions is the fixed size of every generated question set.
const NumQuestions = 5

// QuestionComposition is the fixed type sequence for a generated set.
var QuestionComposition = [NumQuestions]QuestionType{
	QuestionTypeBehavioral,
	QuestionTypeTechnical,
	QuestionTypeTechnical,
	QuestionTypeCoding,
	QuestionTypeCoding,
}

// WeightForType returns the scoring weight assigned to a question type.
func WeightForType(t QuestionType) float64 {
	switch t {
	case QuestionTypeCoding:
		return 3
	case QuestionTypeTechnical:
		return 2
	default:
		return 1
	}
}

// GenerationSpec describes the position a question set is generated for.
// Either the job fields are set (application interviews) or Level alone
// (practice interviews).
type GenerationSpec struct {
	JobTitle    string
	Level       string
	Description string
	Practice    bool
}

// GenerationConfig tunes question generation.
type GenerationConfig struct {
	NumQuestions   int
	TechnicalRatio float64
	Difficulty     Difficulty
}

// DefaultGenerationConfig returns the standard 5-question configuration.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		NumQuestions:   NumQuestions,
		TechnicalRatio: 0.6,
		Difficulty:     DifficultyMedium,
	}
}
