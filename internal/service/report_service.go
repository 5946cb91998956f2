package service

import (
	"time"

	"github.com/P4ndro/Intervia/internal/model"
)

// ReportService reduces a completed interview's answers into the scored
// report. It only aggregates: the per-answer scores, issues, strengths and
// feedback all come from the attached evaluation records.
type ReportService struct{}

func NewReportService() *ReportService {
	return &ReportService{}
}

// Assemble builds the report from the interview's final state. Sub-scores
// are weighted averages over evaluated answers of the matching question
// types; coding questions count toward the technical score. Score fields
// stay nil where no evaluation data backs them.
func (s *ReportService) Assemble(iv *model.Interview) *model.Report {
	report := &model.Report{
		PrimaryBlockers: []model.Blocker{},
		Strengths:       []string{},
		Recommendations: []string{},
		Metrics:         s.metrics(iv),
		GeneratedAt:     time.Now(),
	}

	var overallSum, overallWeight float64
	var techSum, techWeight float64
	var behavSum, behavWeight float64

	seenStrengths := map[string]bool{}
	seenRecs := map[string]bool{}

	for i := range iv.Answers {
		ans := &iv.Answers[i]
		if ans.AIEvaluation == nil {
			continue
		}
		q := iv.QuestionByID(ans.QuestionID)
		if q == nil {
			continue
		}

		score := ans.AIEvaluation.Score()
		overallSum += score * q.Weight
		overallWeight += q.Weight

		switch q.Type {
		case model.QuestionTypeBehavioral:
			behavSum += score * q.Weight
			behavWeight += q.Weight
		case model.QuestionTypeTechnical, model.QuestionTypeCoding:
			techSum += score * q.Weight
			techWeight += q.Weight
		}

		severity := severityForScore(score)
		for _, issue := range ans.AIEvaluation.DetectedIssues {
			report.PrimaryBlockers = append(report.PrimaryBlockers, model.Blocker{
				QuestionID:   q.ID,
				QuestionText: q.Text,
				QuestionType: q.Type,
				Issue:        issue,
				Severity:     severity,
			})
		}
		for _, strength := range ans.AIEvaluation.Strengths {
			if !seenStrengths[strength] {
				seenStrengths[strength] = true
				report.Strengths = append(report.Strengths, strength)
			}
		}
		if score < 65 && ans.AIEvaluation.Feedback != "" && !seenRecs[ans.AIEvaluation.Feedback] {
			seenRecs[ans.AIEvaluation.Feedback] = true
			report.Recommendations = append(report.Recommendations, ans.AIEvaluation.Feedback)
		}
	}

	if overallWeight > 0 {
		overall := overallSum / overallWeight
		report.OverallScore = &overall
		report.ReadinessBand = model.BandForScore(overall)
	} else {
		report.ReadinessBand = model.BandNotReady
	}
	if techWeight > 0 {
		tech := techSum / techWeight
		report.TechnicalScore = &tech
	}
	if behavWeight > 0 {
		behav := behavSum / behavWeight
		report.BehavioralScore = &behav
	}
	return report
}

func (s *ReportService) metrics(iv *model.Interview) model.ReportMetrics {
	m := model.ReportMetrics{TotalQuestions: len(iv.Questions)}
	totalLength := 0
	for i := range iv.Answers {
		if iv.Answers[i].Answered() {
			m.QuestionsAnswered++
			totalLength += len(iv.Answers[i].Transcript)
		} else {
			m.QuestionsSkipped++
		}
	}
	if m.QuestionsAnswered > 0 {
		m.AverageAnswerLength = float64(totalLength) / float64(m.QuestionsAnswered)
	}
	return m
}

func severityForScore(score float64) model.BlockerSeverity {
	switch {
	case score < 50:
		return model.SeverityHigh
	case score < 65:
		return model.SeverityMedium
	default:
		return model.SeverityLow
	}
}
