package service

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/P4ndro/Intervia/internal/model"
)

func evalScoring(score float64) *model.AIEvaluation {
	return &model.AIEvaluation{
		RelevanceScore:    score,
		ClarityScore:      score,
		DepthScore:        score,
		TechnicalAccuracy: score,
		Confidence:        0.9,
	}
}

func TestReportService_Assemble(t *testing.T) {
	svc := NewReportService()

	questions := []model.Question{
		{ID: "q1", Text: "Tell me about a conflict.", Type: model.QuestionTypeBehavioral, Weight: 1},
		{ID: "q2", Text: "Explain indexing.", Type: model.QuestionTypeTechnical, Weight: 2},
		{ID: "q3", Text: "Reverse a list.", Type: model.QuestionTypeCoding, Weight: 3},
	}

	Convey("Given evaluated answers across question types", t, func() {
		iv := &model.Interview{
			Questions: questions,
			Answers: []model.Answer{
				{QuestionID: "q1", Transcript: "we talked", AIEvaluation: evalScoring(40)},
				{QuestionID: "q2", Transcript: "b-trees", AIEvaluation: evalScoring(90)},
				{QuestionID: "q3", Transcript: "two pointers", AIEvaluation: evalScoring(90)},
			},
		}

		Convey("When assembling the report", func() {
			report := svc.Assemble(iv)

			Convey("Then scores are weighted averages per bucket", func() {
				So(report.OverallScore, ShouldNotBeNil)
				So(*report.OverallScore, ShouldAlmostEqual, (40*1+90*2+90*3)/6.0, 0.001)
				So(report.TechnicalScore, ShouldNotBeNil)
				So(*report.TechnicalScore, ShouldEqual, 90)
				So(report.BehavioralScore, ShouldNotBeNil)
				So(*report.BehavioralScore, ShouldEqual, 40)
			})

			Convey("And the readiness band follows the overall score", func() {
				So(report.ReadinessBand, ShouldEqual, model.BandReady)
			})
		})
	})

	Convey("Given a coding answer scoring below the technical one", t, func() {
		iv := &model.Interview{
			Questions: questions,
			Answers: []model.Answer{
				{QuestionID: "q2", Transcript: "b", AIEvaluation: evalScoring(90)},
				{QuestionID: "q3", Transcript: "c", AIEvaluation: evalScoring(50)},
			},
		}

		Convey("When assembling the report", func() {
			report := svc.Assemble(iv)

			Convey("Then the coding answer pulls the technical score down", func() {
				So(report.TechnicalScore, ShouldNotBeNil)
				So(*report.TechnicalScore, ShouldAlmostEqual, (90*2+50*3)/5.0, 0.001)
			})
		})
	})

	Convey("Given an interview with no evaluation data", t, func() {
		iv := &model.Interview{
			Questions: questions,
			Answers: []model.Answer{
				{QuestionID: "q1", Transcript: "something", AIEvaluation: nil},
				{QuestionID: "q2", Skipped: true},
			},
		}

		Convey("When assembling the report", func() {
			report := svc.Assemble(iv)

			Convey("Then score fields stay nil and the band bottoms out", func() {
				So(report.OverallScore, ShouldBeNil)
				So(report.TechnicalScore, ShouldBeNil)
				So(report.BehavioralScore, ShouldBeNil)
				So(report.ReadinessBand, ShouldEqual, model.BandNotReady)
			})

			Convey("And the list fields are empty but present", func() {
				So(report.PrimaryBlockers, ShouldNotBeNil)
				So(report.PrimaryBlockers, ShouldBeEmpty)
				So(report.Strengths, ShouldBeEmpty)
				So(report.Recommendations, ShouldBeEmpty)
			})
		})
	})

	Convey("Given answers with detected issues at different scores", t, func() {
		weak := evalScoring(40)
		weak.DetectedIssues = []string{"Rambled without answering"}
		middling := evalScoring(55)
		middling.DetectedIssues = []string{"No concrete example"}
		strong := evalScoring(90)
		strong.DetectedIssues = []string{"Minor terminology slip"}

		iv := &model.Interview{
			Questions: questions,
			Answers: []model.Answer{
				{QuestionID: "q1", Transcript: "a", AIEvaluation: weak},
				{QuestionID: "q2", Transcript: "b", AIEvaluation: middling},
				{QuestionID: "q3", Transcript: "c", AIEvaluation: strong},
			},
		}

		Convey("When assembling the report", func() {
			report := svc.Assemble(iv)

			Convey("Then each blocker carries the severity of its answer's score", func() {
				So(report.PrimaryBlockers, ShouldHaveLength, 3)
				bySeverity := map[model.BlockerSeverity]string{}
				for _, b := range report.PrimaryBlockers {
					bySeverity[b.Severity] = b.Issue
				}
				So(bySeverity[model.SeverityHigh], ShouldEqual, "Rambled without answering")
				So(bySeverity[model.SeverityMedium], ShouldEqual, "No concrete example")
				So(bySeverity[model.SeverityLow], ShouldEqual, "Minor terminology slip")
			})

			Convey("And blockers reference their question", func() {
				So(report.PrimaryBlockers[0].QuestionID, ShouldEqual, "q1")
				So(report.PrimaryBlockers[0].QuestionText, ShouldEqual, "Tell me about a conflict.")
				So(report.PrimaryBlockers[0].QuestionType, ShouldEqual, model.QuestionTypeBehavioral)
			})
		})
	})

	Convey("Given duplicated strengths and low-score feedback", t, func() {
		first := evalScoring(60)
		first.Strengths = []string{"Clear structure"}
		first.Feedback = "Add measurable outcomes to your examples."
		second := evalScoring(60)
		second.Strengths = []string{"Clear structure", "Good pacing"}
		second.Feedback = "Add measurable outcomes to your examples."
		high := evalScoring(90)
		high.Feedback = "Great depth, keep it up."

		iv := &model.Interview{
			Questions: questions,
			Answers: []model.Answer{
				{QuestionID: "q1", Transcript: "a", AIEvaluation: first},
				{QuestionID: "q2", Transcript: "b", AIEvaluation: second},
				{QuestionID: "q3", Transcript: "c", AIEvaluation: high},
			},
		}

		Convey("When assembling the report", func() {
			report := svc.Assemble(iv)

			Convey("Then strengths are deduplicated", func() {
				So(report.Strengths, ShouldResemble, []string{"Clear structure", "Good pacing"})
			})

			Convey("And only sub-65 feedback becomes a recommendation, once", func() {
				So(report.Recommendations, ShouldResemble, []string{"Add measurable outcomes to your examples."})
			})
		})
	})

	Convey("Given a mix of answered and skipped questions", t, func() {
		iv := &model.Interview{
			Questions: questions,
			Answers: []model.Answer{
				{QuestionID: "q1", Transcript: "ten chars!"},
				{QuestionID: "q2", Transcript: "twenty characters aa"},
				{QuestionID: "q3", Skipped: true},
			},
		}

		Convey("When assembling the report", func() {
			report := svc.Assemble(iv)

			Convey("Then the metrics count transcripts, not submissions", func() {
				So(report.Metrics.TotalQuestions, ShouldEqual, 3)
				So(report.Metrics.QuestionsAnswered, ShouldEqual, 2)
				So(report.Metrics.QuestionsSkipped, ShouldEqual, 1)
				So(report.Metrics.AverageAnswerLength, ShouldEqual, 15)
			})
		})
	})
}
