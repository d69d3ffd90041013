package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"job-board/internal/domain/job"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const JobCollection = "Job"

var errInvalidObjectID = errors.New("invalid object id")

type MongoJobRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

var _ job.Repository = (*MongoJobRepository)(nil)

func NewMongoJobRepository(db *mongo.Database) *MongoJobRepository {
	return &MongoJobRepository{coll: db.Collection(JobCollection), now: time.Now}
}

func (r *MongoJobRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "refUserId", Value: 1}},
	})
	return err
}

func (r *MongoJobRepository) Insert(ctx context.Context, p job.Posting) (job.Posting, error) {
	now := r.now().UTC().Truncate(time.Millisecond)
	p.ID = primitive.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return job.Posting{}, err
	}
	return p, nil
}

func (r *MongoJobRepository) FindByID(ctx context.Context, id string) (job.Posting, error) {
	if id == "" {
		return job.Posting{}, job.ErrNotFound
	}
	return r.FindOne(ctx, job.Filter{ID: id})
}

func (r *MongoJobRepository) FindOne(ctx context.Context, f job.Filter) (job.Posting, error) {
	q, err := buildJobQuery(f)
	if err != nil {
		return job.Posting{}, job.ErrNotFound
	}

	var p job.Posting
	if err := r.coll.FindOne(ctx, q).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return job.Posting{}, job.ErrNotFound
		}
		return job.Posting{}, err
	}
	return p, nil
}

func (r *MongoJobRepository) UpdateByID(ctx context.Context, id string, fields job.Fields) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return job.ErrNotFound
	}

	set := bson.M{
		"companyName":  fields.CompanyName,
		"title":        fields.Title,
		"description":  fields.Description,
		"logoUrl":      fields.LogoURL,
		"salary":       fields.Salary,
		"location":     fields.Location,
		"duration":     fields.Duration,
		"locationType": fields.LocationType,
		"skills":       fields.Skills,
		"updatedAt":    r.now().UTC().Truncate(time.Millisecond),
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *MongoJobRepository) DeleteByID(ctx context.Context, id string) (job.Posting, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return job.Posting{}, job.ErrNotFound
	}

	var p job.Posting
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return job.Posting{}, job.ErrNotFound
		}
		return job.Posting{}, err
	}
	return p, nil
}

func (r *MongoJobRepository) Find(ctx context.Context, f job.Filter) ([]job.Posting, error) {
	q, err := buildJobQuery(f)
	if err != nil {
		return []job.Posting{}, nil
	}

	cur, err := r.coll.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]job.Posting, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// buildJobQuery translates a Filter into a Mongo query. User text is regex-quoted
// so title and skills match as literal case-insensitive substrings.
func buildJobQuery(f job.Filter) (bson.M, error) {
	q := bson.M{}

	if f.ID != "" {
		oid, err := primitive.ObjectIDFromHex(f.ID)
		if err != nil {
			return nil, errInvalidObjectID
		}
		q["_id"] = oid
	}
	if f.RefUserID != "" {
		q["refUserId"] = f.RefUserID
	}
	if f.Title != "" {
		q["title"] = bson.M{"$regex": literalPattern(f.Title), "$options": "i"}
	}

	patterns := make([]any, 0, len(f.Skills))
	for _, s := range f.Skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		patterns = append(patterns, primitive.Regex{Pattern: literalPattern(s), Options: "i"})
	}
	if len(patterns) > 0 {
		q["skills"] = bson.M{"$in": patterns}
	}

	return q, nil
}

func literalPattern(s string) string {
	return regexp.QuoteMeta(s)
}
