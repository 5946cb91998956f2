package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/P4ndro/Intervia/internal/model"
)

// JobRepo handles MongoDB operations for job postings. This service only
// reads and seeds jobs; posting CRUD lives elsewhere.
type JobRepo interface {
	Create(ctx context.Context, job *model.Job) error
	GetByID(ctx context.Context, id string) (*model.Job, error)
	ListActive(ctx context.Context, jobType model.JobType, limit int64) ([]*model.Job, error)
	DeleteByType(ctx context.Context, jobType model.JobType) (int64, error)
	IncrementApplications(ctx context.Context, id string) error
	IncrementCompleted(ctx context.Context, id string) error
}

type jobRepo struct {
	collection *mongo.Collection
}

// NewJobRepo creates a new job repository.
func NewJobRepo(db *mongo.Database) JobRepo {
	return &jobRepo{
		collection: db.Collection("jobs"),
	}
}

// EnsureJobIndexes creates the listing index.
func EnsureJobIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("jobs").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "jobType", Value: 1}, {Key: "status", Value: 1}},
	})
	return err
}

func (r *jobRepo) Create(ctx context.Context, job *model.Job) error {
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, job)
	return err
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*model.Job, error) {
	var job model.Job
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&job)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepo) ListActive(ctx context.Context, jobType model.JobType, limit int64) ([]*model.Job, error) {
	filter := bson.M{"status": model.JobActive}
	if jobType != "" {
		filter["jobType"] = jobType
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "jobType", Value: 1}, {Key: "publishedAt", Value: -1}, {Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var jobs []*model.Job
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *jobRepo) DeleteByType(ctx context.Context, jobType model.JobType) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"jobType": jobType})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *jobRepo) IncrementApplications(ctx context.Context, id string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$inc": bson.M{"stats.totalApplications": 1}})
	return err
}

func (r *jobRepo) IncrementCompleted(ctx context.Context, id string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$inc": bson.M{"stats.completedInterviews": 1}})
	return err
}
