package model

import "time"

// ReadinessBand is the coarse categorical summary of overall performance.
type ReadinessBand string

const (
	BandNotReady    ReadinessBand = "Not Ready"
	BandNeedsWork   ReadinessBand = "Needs Work"
	BandAlmostReady ReadinessBand = "Almost Ready"
	BandReady       ReadinessBand = "Ready"
)

// BandForScore maps an overall score to its readiness band.
func BandForScore(score float64) ReadinessBand {
	switch {
	case score >= 80:
		return BandReady
	case score >= 65:
		return BandAlmostReady
	case score >= 50:
		return BandNeedsWork
	default:
		return BandNotReady
	}
}

type BlockerSeverity string

const (
	SeverityLow    BlockerSeverity = "low"
	SeverityMedium BlockerSeverity = "medium"
	SeverityHigh   BlockerSeverity = "high"
)

// Blocker flags one question whose evaluation surfaced a problem.
type Blocker struct {
	QuestionID   string          `json:"questionId" bson:"questionId"`
	QuestionText string          `json:"questionText" bson:"questionText"`
	QuestionType QuestionType    `json:"questionType" bson:"questionType"`
	Issue        string          `json:"issue" bson:"issue"`
	Severity     BlockerSeverity `json:"severity" bson:"severity"`
	Impact       string          `json:"impact,omitempty" bson:"impact,omitempty"`
}

type ReportMetrics struct {
	AverageAnswerLength float64 `json:"averageAnswerLength" bson:"averageAnswerLength"`
	QuestionsAnswered   int     `json:"questionsAnswered" bson:"questionsAnswered"`
	QuestionsSkipped    int     `json:"questionsSkipped" bson:"questionsSkipped"`
	TotalQuestions      int     `json:"totalQuestions" bson:"totalQuestions"`
}

// Report is assembled exactly once, at interview completion, and is
// immutable afterwards. Score pointers are nil where no evaluation data
// exists to back them.
type Report struct {
	OverallScore    *float64      `json:"overallScore" bson:"overallScore"`
	TechnicalScore  *float64      `json:"technicalScore,omitempty" bson:"technicalScore,omitempty"`
	BehavioralScore *float64      `json:"behavioralScore,omitempty" bson:"behavioralScore,omitempty"`
	ReadinessBand   ReadinessBand `json:"readinessBand" bson:"readinessBand"`
	PrimaryBlockers []Blocker     `json:"primaryBlockers" bson:"primaryBlockers"`
	Strengths       []string      `json:"strengths" bson:"strengths"`
	Recommendations []string      `json:"recommendations" bson:"recommendations"`
	Metrics         ReportMetrics `json:"metrics" bson:"metrics"`
	GeneratedAt     time.Time     `json:"generatedAt" bson:"generatedAt"`
}
