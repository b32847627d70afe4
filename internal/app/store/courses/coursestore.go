// internal/app/store/courses/coursestore.go
package coursestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/coursehub/internal/app/system/apperr"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// CollectionName is the collection this store owns. No other code writes to it.
const CollectionName = "courses"

// DatabaseSource hands out the ready database, or apperr.ErrNotReady.
// *mongoconn.Provider satisfies it.
type DatabaseSource interface {
	Database() (*mongo.Database, error)
}

// Store is the MongoDB-backed course repository.
type Store struct {
	src DatabaseSource
	log *zap.Logger
}

// New returns a Store that resolves its database through src on every call.
func New(src DatabaseSource, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{src: src, log: logger}
}

// NewForDatabase binds a Store to an already-open database (tests, tools).
func NewForDatabase(db *mongo.Database, logger *zap.Logger) *Store {
	return New(fixedDB{db}, logger)
}

type fixedDB struct{ db *mongo.Database }

func (f fixedDB) Database() (*mongo.Database, error) { return f.db, nil }

func (s *Store) coll() (*mongo.Collection, error) {
	db, err := s.src.Database()
	if err != nil {
		return nil, err
	}
	return db.Collection(CollectionName), nil
}

// List returns every course, oldest first. There is no upper bound on the
// result size.
func (s *Store) List(ctx context.Context) ([]models.Course, error) {
	c, err := s.coll()
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperr.Store("list courses", err)
	}
	defer cur.Close(ctx)

	out := []models.Course{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, apperr.Store("list courses", err)
	}
	return out, nil
}

// GetByID returns a course by its id.
func (s *Store) GetByID(ctx context.Context, id string) (models.Course, error) {
	oid, err := ParseID(id)
	if err != nil {
		return models.Course{}, err
	}
	c, err := s.coll()
	if err != nil {
		return models.Course{}, err
	}
	var out models.Course
	if err := c.FindOne(ctx, bson.M{"_id": oid}).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Course{}, apperr.NotFound()
		}
		return models.Course{}, apperr.Store("get course", err)
	}
	return out, nil
}

// Create inserts a new course. The id and both timestamps are assigned here,
// and CreatedAt == UpdatedAt on the returned value.
func (s *Store) Create(ctx context.Context, in CreateInput) (models.Course, error) {
	in, err := in.normalize()
	if err != nil {
		return models.Course{}, err
	}
	c, err := s.coll()
	if err != nil {
		return models.Course{}, err
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	course := models.Course{
		ID:          primitive.NewObjectID(),
		Title:       in.Title,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := c.InsertOne(ctx, course); err != nil {
		if isDocValidationErr(err) {
			return models.Course{}, apperr.InvalidArgument("course failed validation")
		}
		return models.Course{}, apperr.Store("create course", err)
	}
	s.log.Debug("course created", zap.String("id", course.ID.Hex()))
	return course, nil
}

// Update applies a partial update in a single server-side step and returns
// the updated course.
//
// updated_at becomes max($$NOW, previous updated_at + 1ms), so it strictly
// increases even when two writes land in the same millisecond or the server
// clock trails the one that stamped created_at.
func (s *Store) Update(ctx context.Context, id string, in UpdateInput) (models.Course, error) {
	oid, err := ParseID(id)
	if err != nil {
		return models.Course{}, err
	}
	in, err = in.normalize()
	if err != nil {
		return models.Course{}, err
	}
	c, err := s.coll()
	if err != nil {
		return models.Course{}, err
	}

	set := bson.D{}
	if in.Title != nil {
		// $literal keeps titles such as "$foo" from being read as field paths.
		set = append(set, bson.E{Key: "title", Value: bson.D{{Key: "$literal", Value: *in.Title}}})
	}
	clearDescription := in.Description != nil && *in.Description == ""
	if in.Description != nil && !clearDescription {
		set = append(set, bson.E{Key: "description", Value: bson.D{{Key: "$literal", Value: *in.Description}}})
	}
	set = append(set, bson.E{Key: "updated_at", Value: bson.D{{Key: "$max", Value: bson.A{
		"$$NOW",
		bson.D{{Key: "$add", Value: bson.A{"$updated_at", 1}}},
	}}}})

	pipeline := mongo.Pipeline{{{Key: "$set", Value: set}}}
	if clearDescription {
		pipeline = append(pipeline, bson.D{{Key: "$unset", Value: "description"}})
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out models.Course
	if err := c.FindOneAndUpdate(ctx, bson.M{"_id": oid}, pipeline, opts).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Course{}, apperr.NotFound()
		}
		if isDocValidationErr(err) {
			return models.Course{}, apperr.InvalidArgument("course failed validation")
		}
		return models.Course{}, apperr.Store("update course", err)
	}
	return out, nil
}

// Delete removes a course permanently.
func (s *Store) Delete(ctx context.Context, id string) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}
	c, err := s.coll()
	if err != nil {
		return err
	}
	res, err := c.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return apperr.Store("delete course", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound()
	}
	return nil
}

// isDocValidationErr detects a $jsonSchema rejection (code 121).
func isDocValidationErr(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 121 {
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 121 {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "document failed validation")
}
