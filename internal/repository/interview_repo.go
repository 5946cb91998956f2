package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/P4ndro/Intervia/internal/model"
)

var (
	// ErrNotFound is returned when no document matches the given id.
	ErrNotFound = errors.New("not found")

	// ErrStale is returned when a guarded update matched no document:
	// either the interview is gone or its status/index moved underneath
	// the caller.
	ErrStale = errors.New("interview modified concurrently")
)

// InterviewRepo handles MongoDB operations for interview aggregates.
type InterviewRepo interface {
	Create(ctx context.Context, iv *model.Interview) error
	GetByID(ctx context.Context, id string) (*model.Interview, error)
	// UpdateGuarded applies the aggregate's mutable fields as a single
	// compare-and-swap against the previous status and question index,
	// so a duplicate request can never double-advance or double-complete.
	UpdateGuarded(ctx context.Context, iv *model.Interview, prevStatus model.InterviewStatus, prevIndex int) error
	AppendViolation(ctx context.Context, id string, v model.Violation) error
	GetCompletedByUser(ctx context.Context, userID string) ([]*model.Interview, error)
}

type interviewRepo struct {
	collection *mongo.Collection
}

// NewInterviewRepo creates a new interview repository.
func NewInterviewRepo(db *mongo.Database) InterviewRepo {
	return &interviewRepo{
		collection: db.Collection("interviews"),
	}
}

// EnsureInterviewIndexes creates the lookup indexes the read paths rely on.
func EnsureInterviewIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("interviews").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "jobId", Value: 1}}},
	})
	return err
}

func (r *interviewRepo) Create(ctx context.Context, iv *model.Interview) error {
	if iv.CreatedAt.IsZero() {
		iv.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, iv)
	return err
}

func (r *interviewRepo) GetByID(ctx context.Context, id string) (*model.Interview, error) {
	var iv model.Interview
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&iv)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &iv, nil
}

func (r *interviewRepo) UpdateGuarded(ctx context.Context, iv *model.Interview, prevStatus model.InterviewStatus, prevIndex int) error {
	filter := bson.M{
		"_id":                  iv.ID,
		"status":               prevStatus,
		"currentQuestionIndex": prevIndex,
	}
	update := bson.M{"$set": bson.M{
		"status":               iv.Status,
		"currentQuestionIndex": iv.CurrentQuestionIndex,
		"answers":              iv.Answers,
		"report":               iv.Report,
		"completedAt":          iv.CompletedAt,
	}}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrStale
	}
	return nil
}

func (r *interviewRepo) AppendViolation(ctx context.Context, id string, v model.Violation) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": model.InterviewInProgress},
		bson.M{"$push": bson.M{"violations": v}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrStale
	}
	return nil
}

func (r *interviewRepo) GetCompletedByUser(ctx context.Context, userID string) ([]*model.Interview, error) {
	cursor, err := r.collection.Find(ctx, bson.M{
		"userId": userID,
		"status": model.InterviewCompleted,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var interviews []*model.Interview
	if err := cursor.All(ctx, &interviews); err != nil {
		return nil, err
	}
	return interviews, nil
}
