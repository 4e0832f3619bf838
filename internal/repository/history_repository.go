package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"slang-quiz-service/internal/models"
)

// HistoryRepository persists per-user lifetime quiz aggregates and answers
// the usage questions (daily attempt count, tier cap). History lives in the
// quiz_history collection, one document per user; the tier comes from the
// account store's users collection, read-only here.
type HistoryRepository struct {
	Col   *mongo.Collection
	Users *mongo.Collection
}

func NewHistoryRepository(db *mongo.Database) *HistoryRepository {
	return &HistoryRepository{
		Col:   db.Collection("quiz_history"),
		Users: db.Collection("users"),
	}
}

// Find loads a user's history record, returning a zeroed record when the
// user has never finished a quiz.
func (r *HistoryRepository) Find(ctx context.Context, userID string) (*models.QuizHistoryRecord, error) {
	var record models.QuizHistoryRecord
	err := r.Col.FindOne(ctx, bson.M{"_id": userID}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &models.QuizHistoryRecord{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// RecordSession folds one finished session into the user's lifetime
// aggregates. day is the caller's UTC date string and drives the lazy
// daily-counter reset. Callers guarantee at-most-once invocation per
// session (the session store's claim release is the guard), so a plain
// read-modify-write upsert is sufficient here.
func (r *HistoryRepository) RecordSession(ctx context.Context, res *models.QuizResult, day string) error {
	record, err := r.Find(ctx, res.UserID)
	if err != nil {
		return err
	}

	if record.LastQuizDay != day {
		record.QuizzesToday = 0
	}

	record.TotalQuizzes++
	record.TotalCorrect += res.CorrectCount
	record.TotalQuestions += res.TotalQuestions
	record.TotalScoreSum += res.Score
	if res.Score > record.BestScore {
		record.BestScore = res.Score
	}
	record.AverageScore = float64(record.TotalScoreSum) / float64(record.TotalQuizzes)
	record.QuizzesToday++
	record.LastQuizDay = day
	record.UpdatedAt = time.Now().UTC()

	_, err = r.Col.UpdateOne(ctx,
		bson.M{"_id": res.UserID},
		bson.M{"$set": bson.M{
			"total_quizzes":   record.TotalQuizzes,
			"total_correct":   record.TotalCorrect,
			"total_questions": record.TotalQuestions,
			"total_score_sum": record.TotalScoreSum,
			"best_score":      record.BestScore,
			"average_score":   record.AverageScore,
			"quizzes_today":   record.QuizzesToday,
			"last_quiz_day":   record.LastQuizDay,
			"updated_at":      record.UpdatedAt,
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

// DailyQuizCount returns how many quizzes the user has finished today.
func (r *HistoryRepository) DailyQuizCount(ctx context.Context, userID, day string) (int, error) {
	record, err := r.Find(ctx, userID)
	if err != nil {
		return 0, err
	}
	if record.LastQuizDay != day {
		return 0, nil
	}
	return record.QuizzesToday, nil
}

// DailyCap resolves the user's tier to its attempt cap. Unknown users get
// the free-tier cap.
func (r *HistoryRepository) DailyCap(ctx context.Context, userID string) (int, error) {
	var user struct {
		Tier string `bson:"tier"`
	}
	err := r.Users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.DailyCapForTier(models.TierFree), nil
	}
	if err != nil {
		return 0, err
	}
	return models.DailyCapForTier(user.Tier), nil
}
