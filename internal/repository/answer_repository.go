package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"slang-quiz-service/internal/models"
)

// AnswerRepository is the audit log of accepted submissions. Writes are
// best-effort from the session manager's point of view; the running
// aggregates on the session itself are authoritative.
type AnswerRepository struct {
	Col *mongo.Collection
}

func NewAnswerRepository(db *mongo.Database) *AnswerRepository {
	return &AnswerRepository{Col: db.Collection("answers")}
}

func (r *AnswerRepository) Append(ctx context.Context, answer *models.AnswerRecord) error {
	_, err := r.Col.InsertOne(ctx, answer)
	return err
}

func (r *AnswerRepository) FindBySession(ctx context.Context, sessionID string) ([]models.AnswerRecord, error) {
	cur, err := r.Col.Find(ctx, bson.M{"session_id": sessionID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var answers []models.AnswerRecord
	for cur.Next(ctx) {
		var a models.AnswerRecord
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, cur.Err()
}
