package service

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/jinzhu/copier"
	"github.com/ooskills/formation-api/internal/dto"
	"github.com/ooskills/formation-api/internal/model"
	"github.com/ooskills/formation-api/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FinalQuizService runs the course-level exam: it samples a question set from
// the union of all section-quiz questions, scores the caller-echoed set, and
// hands passing students to the certificate issuer.
type FinalQuizService interface {
	GetConfig(courseID uint) (*dto.FinalQuizConfigResponse, error)
	GenerateQuestions(userID, courseID uint) (*dto.FinalQuizGenerateResponse, error)
	Submit(req dto.FinalQuizSubmitRequest) (*dto.FinalQuizAttemptResponse, error)
	UserAttempts(userID uint) ([]dto.FinalQuizAttemptResponse, error)
}

type finalQuizService struct {
	enrollmentRepo repository.EnrollmentRepository
	finalQuizRepo  repository.FinalQuizRepository
	attemptRepo    repository.FinalQuizAttemptRepository
	questionRepo   repository.QuestionRepository
	certService    CertificateService
	db             *gorm.DB
}

func NewFinalQuizService(
	enrollmentRepo repository.EnrollmentRepository,
	finalQuizRepo repository.FinalQuizRepository,
	attemptRepo repository.FinalQuizAttemptRepository,
	questionRepo repository.QuestionRepository,
	certService CertificateService,
	db *gorm.DB,
) FinalQuizService {
	return &finalQuizService{
		enrollmentRepo: enrollmentRepo,
		finalQuizRepo:  finalQuizRepo,
		attemptRepo:    attemptRepo,
		questionRepo:   questionRepo,
		certService:    certService,
		db:             db,
	}
}

func (s *finalQuizService) GetConfig(courseID uint) (*dto.FinalQuizConfigResponse, error) {
	finalQuiz, err := s.finalQuizRepo.FindByCourse(courseID)
	if err != nil {
		return nil, err
	}
	if finalQuiz == nil {
		return nil, ErrFinalQuizNotConfigured
	}

	var resp dto.FinalQuizConfigResponse
	copier.Copy(&resp, finalQuiz)
	return &resp, nil
}

// GenerateQuestions samples num_questions distinct questions (or all of them
// if fewer exist) from the course's question pool. The enrollment must
// already be completed. The returned id list is the caller's echo obligation:
// there is no server-side record of a pending attempt, submission scores
// whatever ids come back.
func (s *finalQuizService) GenerateQuestions(userID, courseID uint) (*dto.FinalQuizGenerateResponse, error) {
	enrollment, err := s.requireEnrollment(userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment.Status != model.EnrollmentStatusCompleted {
		return nil, ErrCourseNotCompleted
	}

	finalQuiz, err := s.finalQuizRepo.FindByCourse(courseID)
	if err != nil {
		return nil, err
	}
	if finalQuiz == nil {
		return nil, ErrFinalQuizNotConfigured
	}

	count, err := s.attemptRepo.CountByPair(enrollment.ID, finalQuiz.ID)
	if err != nil {
		return nil, err
	}
	if finalQuiz.MaxAttempts > 0 && count >= int64(finalQuiz.MaxAttempts) {
		return nil, ErrAttemptLimitExceeded
	}

	pool, err := s.questionRepo.FindByCourse(courseID)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, ErrNoQuestionsConfigured
	}

	// Uniform sample without replacement; reproducibility is not required.
	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	n := int(finalQuiz.NumQuestions)
	if n > len(pool) {
		n = len(pool)
	}

	resp := dto.FinalQuizGenerateResponse{
		QuestionIDs: make([]uint, 0, n),
		Questions:   make([]dto.FinalQuizQuestionResponse, 0, n),
	}
	for _, q := range pool[:n] {
		resp.QuestionIDs = append(resp.QuestionIDs, q.ID)
		resp.Questions = append(resp.Questions, dto.FinalQuizQuestionResponse{
			ID:         q.ID,
			Type:       q.Type,
			Question:   q.Question,
			Options:    q.Options,
			Difficulty: q.Difficulty,
			Category:   q.Category,
		})
	}
	return &resp, nil
}

// Submit scores exactly the echoed question ids. An id that does not belong
// to the course's question pool gets no feedback entry but still counts
// toward the total as wrong. On pass the certificate issuer runs; an
// already-issued certificate is not an error here.
func (s *finalQuizService) Submit(req dto.FinalQuizSubmitRequest) (*dto.FinalQuizAttemptResponse, error) {
	enrollment, err := s.requireEnrollment(req.UserID, req.CourseID)
	if err != nil {
		return nil, err
	}
	if enrollment.Status != model.EnrollmentStatusCompleted {
		return nil, ErrCourseNotCompleted
	}

	finalQuiz, err := s.finalQuizRepo.FindByCourse(req.CourseID)
	if err != nil {
		return nil, err
	}
	if finalQuiz == nil {
		return nil, ErrFinalQuizNotConfigured
	}
	if len(req.QuestionIDs) == 0 {
		return nil, ErrNoQuestionsConfigured
	}

	var attempt model.FinalQuizAttempt
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(enrollment, enrollment.ID).Error; err != nil {
			return err
		}

		var count int64
		err := tx.Model(&model.FinalQuizAttempt{}).
			Where("enrollment_id = ? AND final_quiz_id = ?", enrollment.ID, finalQuiz.ID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if finalQuiz.MaxAttempts > 0 && count >= int64(finalQuiz.MaxAttempts) {
			return ErrAttemptLimitExceeded
		}

		questions, err := s.questionRepo.FindByIDs(req.QuestionIDs)
		if err != nil {
			return err
		}
		byID := make(map[uint]model.QuizQuestion, len(questions))
		for _, q := range questions {
			byID[q.ID] = q
		}

		total := len(req.QuestionIDs)
		correct := 0
		feedback := make(datatypes.JSONSlice[model.AnswerFeedback], 0, total)
		for _, qid := range req.QuestionIDs {
			q, known := byID[qid]
			if !known {
				continue
			}
			var selected *int
			if sel, ok := req.Answers[qid]; ok {
				selected = &sel
			}
			isCorrect := selected != nil && *selected == q.CorrectAnswer
			if isCorrect {
				correct++
			}
			feedback = append(feedback, model.AnswerFeedback{
				QuestionID:    qid,
				Selected:      selected,
				CorrectAnswer: q.CorrectAnswer,
				IsCorrect:     isCorrect,
				Explanation:   q.Explanation,
			})
		}

		score := roundScore(float64(correct) * 100 / float64(total))
		passed := score >= float64(finalQuiz.PassThreshold)
		var xp uint
		if passed {
			xp = finalQuiz.XPReward
		}

		attempt = model.FinalQuizAttempt{
			EnrollmentID:      enrollment.ID,
			FinalQuizID:       finalQuiz.ID,
			Score:             score,
			Answers:           datatypes.NewJSONType(req.Answers),
			QuestionsSnapshot: datatypes.NewJSONSlice(req.QuestionIDs),
			Passed:            passed,
			XPEarned:          xp,
			Feedback:          feedback,
			AttemptNumber:     uint(count) + 1,
		}
		return tx.Create(&attempt).Error
	})
	if err != nil {
		return nil, err
	}

	resp := toFinalQuizAttemptResponse(&attempt)

	if attempt.Passed {
		cert, err := s.certService.Issue(enrollment, attempt.Score)
		switch {
		case errors.Is(err, ErrCertificateAlreadyIssued):
			log.Debug().Uint("enrollmentID", enrollment.ID).Msg("Certificate already issued, final quiz pass is a no-op")
		case err != nil:
			return nil, err
		default:
			certResp := toCertificateResponse(cert)
			resp.Certificate = &certResp
		}
	}

	log.Info().
		Uint("enrollmentID", attempt.EnrollmentID).
		Float64("score", attempt.Score).
		Bool("passed", attempt.Passed).
		Uint("attemptNumber", attempt.AttemptNumber).
		Msg("Final quiz attempt recorded")
	return &resp, nil
}

func (s *finalQuizService) UserAttempts(userID uint) ([]dto.FinalQuizAttemptResponse, error) {
	attempts, err := s.attemptRepo.FindAllByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching final quiz attempts: %w", err)
	}

	resp := make([]dto.FinalQuizAttemptResponse, 0, len(attempts))
	for i := range attempts {
		resp = append(resp, toFinalQuizAttemptResponse(&attempts[i]))
	}
	return resp, nil
}

func (s *finalQuizService) requireEnrollment(userID, courseID uint) (*model.Enrollment, error) {
	enrollment, err := s.enrollmentRepo.FindByUserAndCourse(userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, fmt.Errorf("user %d is not enrolled in course %d: %w", userID, courseID, gorm.ErrRecordNotFound)
	}
	return enrollment, nil
}

func toFinalQuizAttemptResponse(attempt *model.FinalQuizAttempt) dto.FinalQuizAttemptResponse {
	var resp dto.FinalQuizAttemptResponse
	copier.Copy(&resp, attempt)
	resp.QuestionsSnapshot = attempt.QuestionsSnapshot
	resp.Feedback = make([]dto.AnswerFeedbackResponse, len(attempt.Feedback))
	for i, fb := range attempt.Feedback {
		copier.Copy(&resp.Feedback[i], &fb)
	}
	return resp
}
