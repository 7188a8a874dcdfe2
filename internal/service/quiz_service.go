package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/ooskills/formation-api/internal/dto"
	"github.com/ooskills/formation-api/internal/model"
	"github.com/ooskills/formation-api/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuizService scores section-quiz submissions against the stored answer key
// and enforces per-(enrollment, quiz) attempt limits.
type QuizService interface {
	Submit(quizID uint, req dto.QuizSubmitRequest) (*dto.QuizAttemptResponse, error)
	RemainingAttempts(enrollmentID, quizID uint) (*dto.RemainingAttemptsResponse, error)
	BestScore(enrollmentID, quizID uint) (float64, error)
	GetAttempts(enrollmentID, quizID uint) ([]dto.QuizAttemptResponse, error)
}

type quizService struct {
	quizRepo    repository.QuizRepository
	attemptRepo repository.QuizAttemptRepository
	db          *gorm.DB
}

func NewQuizService(quizRepo repository.QuizRepository, attemptRepo repository.QuizAttemptRepository, db *gorm.DB) QuizService {
	return &quizService{quizRepo: quizRepo, attemptRepo: attemptRepo, db: db}
}

// Submit scores the answer map and appends an attempt record. The attempt
// count check and the insert run in one transaction with the enrollment row
// locked, so two concurrent submissions cannot both slip under max_attempts.
// When the limit is hit, no attempt row is created.
func (s *quizService) Submit(quizID uint, req dto.QuizSubmitRequest) (*dto.QuizAttemptResponse, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(quizID)
	if err != nil {
		return nil, fmt.Errorf("quiz not found with ID %d: %w", quizID, err)
	}
	if len(quiz.Questions) == 0 {
		return nil, ErrNoQuestionsConfigured
	}

	var attempt model.QuizAttempt
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var enrollment model.Enrollment
		if err := lockForUpdate(tx).First(&enrollment, req.EnrollmentID).Error; err != nil {
			return fmt.Errorf("enrollment not found with ID %d: %w", req.EnrollmentID, err)
		}

		var count int64
		err := tx.Model(&model.QuizAttempt{}).
			Where("enrollment_id = ? AND quiz_id = ?", enrollment.ID, quiz.ID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if quiz.MaxAttempts > 0 && count >= int64(quiz.MaxAttempts) {
			return ErrAttemptLimitExceeded
		}

		feedback, correct := scoreAgainstKey(quiz.Questions, req.Answers)
		score := roundScore(float64(correct) * 100 / float64(len(quiz.Questions)))
		passed := score >= float64(quiz.PassThreshold)
		var xp uint
		if passed {
			xp = quiz.XPReward
		}

		attempt = model.QuizAttempt{
			EnrollmentID:  enrollment.ID,
			QuizID:        quiz.ID,
			Score:         score,
			Answers:       datatypes.NewJSONType(req.Answers),
			Passed:        passed,
			XPEarned:      xp,
			Feedback:      feedback,
			AttemptNumber: uint(count) + 1,
		}
		return tx.Create(&attempt).Error
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Uint("enrollmentID", attempt.EnrollmentID).
		Uint("quizID", quiz.ID).
		Float64("score", attempt.Score).
		Bool("passed", attempt.Passed).
		Uint("attemptNumber", attempt.AttemptNumber).
		Msg("Quiz attempt recorded")

	resp := toQuizAttemptResponse(&attempt)
	return &resp, nil
}

// scoreAgainstKey compares the answer map against the ordered question list
// and returns the feedback records plus the correct count. Every question
// gets a feedback entry, including unanswered ones (selected nil, wrong).
func scoreAgainstKey(questions []model.QuizQuestion, answers map[uint]int) (datatypes.JSONSlice[model.AnswerFeedback], int) {
	feedback := make(datatypes.JSONSlice[model.AnswerFeedback], 0, len(questions))
	correct := 0

	for _, q := range questions {
		var selected *int
		if sel, ok := answers[q.ID]; ok {
			selected = &sel
		}
		isCorrect := selected != nil && *selected == q.CorrectAnswer
		if isCorrect {
			correct++
		}
		feedback = append(feedback, model.AnswerFeedback{
			QuestionID:    q.ID,
			Selected:      selected,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     isCorrect,
			Explanation:   q.Explanation,
		})
	}
	return feedback, correct
}

// RemainingAttempts returns how many attempts are left; the field is nil for
// quizzes configured with unlimited attempts.
func (s *quizService) RemainingAttempts(enrollmentID, quizID uint) (*dto.RemainingAttemptsResponse, error) {
	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		return nil, fmt.Errorf("quiz not found with ID %d: %w", quizID, err)
	}
	if quiz.MaxAttempts == 0 {
		return &dto.RemainingAttemptsResponse{}, nil
	}

	used, err := s.attemptRepo.CountByPair(enrollmentID, quizID)
	if err != nil {
		return nil, err
	}
	remaining := int64(quiz.MaxAttempts) - used
	if remaining < 0 {
		remaining = 0
	}
	return &dto.RemainingAttemptsResponse{Remaining: &remaining}, nil
}

func (s *quizService) BestScore(enrollmentID, quizID uint) (float64, error) {
	return s.attemptRepo.BestScore(enrollmentID, quizID)
}

func (s *quizService) GetAttempts(enrollmentID, quizID uint) ([]dto.QuizAttemptResponse, error) {
	attempts, err := s.attemptRepo.FindAllByPair(enrollmentID, quizID)
	if err != nil {
		return nil, fmt.Errorf("error fetching attempts: %w", err)
	}

	resp := make([]dto.QuizAttemptResponse, 0, len(attempts))
	for i := range attempts {
		resp = append(resp, toQuizAttemptResponse(&attempts[i]))
	}
	return resp, nil
}

func toQuizAttemptResponse(attempt *model.QuizAttempt) dto.QuizAttemptResponse {
	var resp dto.QuizAttemptResponse
	copier.Copy(&resp, attempt)
	resp.Feedback = make([]dto.AnswerFeedbackResponse, len(attempt.Feedback))
	for i, fb := range attempt.Feedback {
		copier.Copy(&resp.Feedback[i], &fb)
	}
	return resp
}
