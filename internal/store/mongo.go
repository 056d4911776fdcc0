package store

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Tarakeshp07/livekit-server/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UsersCollection is the name of the backing collection
const UsersCollection = "users"

// MongoUserStore implements UserStore on top of a MongoDB collection
type MongoUserStore struct {
	coll *mongo.Collection
}

// NewMongoUserStore returns a store over the users collection of db
func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{coll: db.Collection(UsersCollection)}
}

// containsRegex builds a case-insensitive substring matcher. User input is
// escaped so it is matched literally, not as a pattern.
func containsRegex(value string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(value), Options: "i"}
}

// buildFilter converts a ListFilter into a Mongo query document
func buildFilter(filter ListFilter) bson.M {
	query := bson.M{}
	if filter.Role != "" {
		query["role"] = filter.Role // Exact match on role
	}
	if filter.InstitutionName != "" {
		query["institutionName"] = containsRegex(filter.InstitutionName)
	}
	if filter.Query != "" {
		// Search clause: OR across username, email and institutionName
		search := containsRegex(filter.Query)
		query["$or"] = []bson.M{
			{"username": search},
			{"email": search},
			{"institutionName": search},
		}
	}
	return query
}

// FindMany returns one page of users, newest-created-first, plus the total
// number of documents matching the filter
func (s *MongoUserStore) FindMany(ctx context.Context, filter ListFilter, skip, limit int) ([]domain.User, int64, error) {
	query := buildFilter(filter)
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}). // Newest first
		SetSkip(int64(skip)).
		SetLimit(int64(limit))
	cursor, err := s.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	users := make([]domain.User, 0) // Non-nil so empty pages serialize as []
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, err
	}
	total, err := s.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// FindByID looks a user up by its hex ObjectID
func (s *MongoUserStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Malformed ids surface as plain errors, not ErrNotFound
		return nil, fmt.Errorf("invalid user id %q: %w", id, err)
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

// FindByEmail looks a user up by exact email
func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

// FindByUsernameOrEmail returns the first user holding either value
func (s *MongoUserStore) FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error) {
	return s.findOne(ctx, bson.M{"$or": []bson.M{{"email": email}, {"username": username}}})
}

func (s *MongoUserStore) findOne(ctx context.Context, query bson.M) (*domain.User, error) {
	var user domain.User
	err := s.coll.FindOne(ctx, query).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Insert persists a new user. Unique-index violations (two concurrent
// signups racing past the application-side existence check) come back as
// DuplicateKeyError.
func (s *MongoUserStore) Insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	res, err := s.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &DuplicateKeyError{Field: duplicateField(err)}
		}
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return user, nil
}

// UpdateByID applies a partial patch and returns the post-update document
func (s *MongoUserStore) UpdateByID(ctx context.Context, id string, patch *domain.UserPatch) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", id, err)
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated domain.User
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": patchToSet(patch)}, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &DuplicateKeyError{Field: duplicateField(err)}
		}
		return nil, err
	}
	return &updated, nil
}

// patchToSet converts a prepared patch into a $set document. Only supplied
// fields are written; updatedAt is always refreshed.
func patchToSet(patch *domain.UserPatch) bson.M {
	set := bson.M{"updatedAt": patch.UpdatedAt}
	if patch.Username != nil {
		set["username"] = *patch.Username
	}
	if patch.Password != nil {
		set["password"] = *patch.Password
	}
	if patch.Role != nil {
		set["role"] = *patch.Role
	}
	if patch.Age != nil {
		set["age"] = *patch.Age
	}
	if patch.HealthConditions != nil {
		set["healthConditions"] = patch.HealthConditions
	}
	if patch.SleepData != nil {
		set["sleepData"] = *patch.SleepData
	}
	if patch.InstitutionName != nil {
		set["institutionName"] = *patch.InstitutionName
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.SleepRate != nil {
		set["sleeprate"] = *patch.SleepRate
	}
	return set
}

// DeleteByID removes a user and returns the deleted document
func (s *MongoUserStore) DeleteByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", id, err)
	}
	var deleted domain.User
	err = s.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&deleted)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

// Stats aggregates collection-wide counters: totals by role, top-10
// institutions by member count, and the average age
func (s *MongoUserStore) Stats(ctx context.Context) (*domain.UserStats, error) {
	total, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	admins, err := s.coll.CountDocuments(ctx, bson.M{"role": "admin"})
	if err != nil {
		return nil, err
	}
	regulars, err := s.coll.CountDocuments(ctx, bson.M{"role": "user"})
	if err != nil {
		return nil, err
	}
	byInstitution, err := s.usersByInstitution(ctx)
	if err != nil {
		return nil, err
	}
	averageAge, err := s.averageAge(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.UserStats{
		TotalUsers:         total,
		AdminUsers:         admins,
		RegularUsers:       regulars,
		UsersByInstitution: byInstitution,
		AverageAge:         averageAge,
	}, nil
}

// usersByInstitution groups users by institution, descending by count,
// capped at 10 buckets
func (s *MongoUserStore) usersByInstitution(ctx context.Context) ([]domain.InstitutionCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$institutionName"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
		bson.D{{Key: "$limit", Value: 10}},
	}
	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	buckets := make([]domain.InstitutionCount, 0)
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}

// averageAge returns the mean age across all users, 0 for an empty collection
func (s *MongoUserStore) averageAge(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "avgAge", Value: bson.D{{Key: "$avg", Value: "$age"}}},
		}}},
	}
	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	var results []struct {
		AvgAge float64 `bson:"avgAge"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil // No users yet
	}
	return results[0].AvgAge, nil
}

// duplicateField derives the colliding field from a duplicate-key error.
// Only the violated index name (username_1 / email_1) is inspected; the
// rest of the message carries the duplicate value, which may itself contain
// the other field's name.
func duplicateField(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, "index:"); i >= 0 {
		tokens := strings.Fields(msg[i+len("index:"):])
		if len(tokens) > 0 && strings.HasPrefix(tokens[0], "email") {
			return "email"
		}
		return "username"
	}
	// No index name in the message; fall back to a whole-text match
	if strings.Contains(msg, "email") {
		return "email"
	}
	return "username"
}
