package service

import "github.com/P4ndro/Intervia/internal/model"

// staticQuestionSet is the hand-authored set used in static mode and as
// the fallback whenever the provider path fails. Order and weights match
// the fixed composition: behavioral, technical, technical, coding, coding.
func staticQuestionSet(difficulty model.Difficulty) []model.Question {
	if difficulty == "" {
		difficulty = model.DifficultyMedium
	}
	return []model.Question{
		{
			ID:         "q1",
			Text:       "Tell me about a time when you had to work with a difficult team member. What was the situation and how did you handle it?",
			Type:       model.QuestionTypeBehavioral,
			Category:   "communication",
			Difficulty: difficulty,
			Weight:     1,
		},
		{
			ID:         "q2",
			Text:       "What is the difference between SQL and NoSQL databases? When would you use each?",
			Type:       model.QuestionTypeTechnical,
			Category:   "databases",
			Difficulty: difficulty,
			Weight:     2,
		},
		{
			ID:         "q3",
			Text:       "Explain REST API principles in simple terms. What makes an API RESTful?",
			Type:       model.QuestionTypeTechnical,
			Category:   "api-design",
			Difficulty: difficulty,
			Weight:     2,
		},
		{
			ID:         "q4",
			Text:       "Write a function that takes an array of numbers and returns the sum of all numbers. Example: Input: [1, 2, 3, 4], Output: 10",
			Type:       model.QuestionTypeCoding,
			Category:   "coding",
			Difficulty: difficulty,
			Weight:     3,
		},
		{
			ID:         "q5",
			Text:       "Write a function that checks if a string is a palindrome (reads the same forwards and backwards). Example: Input: \"racecar\", Output: true. Input: \"hello\", Output: false",
			Type:       model.QuestionTypeCoding,
			Category:   "coding",
			Difficulty: difficulty,
			Weight:     3,
		},
	}
}
