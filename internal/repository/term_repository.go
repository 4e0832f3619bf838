package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"slang-quiz-service/internal/models"
)

// TermRepository reads quiz content from the term bank: the terms
// collection and the curated distractor pools. The engine never writes
// here; authoring belongs to the dictionary side of the application.
type TermRepository struct {
	Terms *mongo.Collection
	Pools *mongo.Collection
}

func NewTermRepository(db *mongo.Database) *TermRepository {
	return &TermRepository{
		Terms: db.Collection("terms"),
		Pools: db.Collection("distractor_pools"),
	}
}

// FindEligible returns active terms for a difficulty tier, optionally
// narrowed to a category, minus the exclusion set.
func (r *TermRepository) FindEligible(ctx context.Context, difficulty, category string, excludeIDs []string) ([]models.Term, error) {
	filter := bson.M{
		"difficulty": difficulty,
		"status":     models.TermStatusActive,
	}
	if category != "" {
		filter["category"] = category
	}
	if len(excludeIDs) > 0 {
		filter["_id"] = bson.M{"$nin": excludeIDs}
	}

	cur, err := r.Terms.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var terms []models.Term
	for cur.Next(ctx) {
		var t models.Term
		if err := cur.Decode(&t); err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	return terms, cur.Err()
}

// FindDistractors returns the curated wrong-answer pool for a
// category/difficulty pair, or nil when no pool exists.
func (r *TermRepository) FindDistractors(ctx context.Context, category, difficulty string) ([]string, error) {
	var pool models.DistractorPool
	err := r.Pools.FindOne(ctx, bson.M{
		"category":   category,
		"difficulty": difficulty,
	}).Decode(&pool)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return pool.Entries, nil
}

// FindDefinitions returns definitions of other terms in the same
// category/difficulty, used as fallback distractors when the curated pool
// cannot fill a question.
func (r *TermRepository) FindDefinitions(ctx context.Context, category, difficulty, excludeTermID string, limit int) ([]string, error) {
	filter := bson.M{
		"difficulty": difficulty,
		"status":     models.TermStatusActive,
		"_id":        bson.M{"$ne": excludeTermID},
	}
	if category != "" {
		filter["category"] = category
	}

	cur, err := r.Terms.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var definitions []string
	for cur.Next(ctx) {
		var t models.Term
		if err := cur.Decode(&t); err != nil {
			return nil, err
		}
		definitions = append(definitions, t.Definition)
		if limit > 0 && len(definitions) >= limit {
			break
		}
	}
	return definitions, cur.Err()
}
