package service

import "github.com/aliskhannn/ess-quiz-bot/internal/domain/entities"

// QuestionBank provides the full, ordered question bank.
type QuestionBank interface {
	GetAll() []entities.Question
}

// Timer calls tick periodically between Start and Stop.
type Timer interface {
	Start(tick func())
	Stop()
}

// CompletionNotifier is told when a session ends because its time budget ran out.
type CompletionNotifier interface {
	NotifyTimeExpired(snap entities.Snapshot)
}
