package store

import (
	"errors"
	"testing"
	"time"

	"github.com/Tarakeshp07/livekit-server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func strPtr(v string) *string { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestBuildFilterEmpty(t *testing.T) {
	assert.Equal(t, bson.M{}, buildFilter(ListFilter{}))
}

func TestBuildFilterRoleIsExactMatch(t *testing.T) {
	query := buildFilter(ListFilter{Role: "admin"})
	assert.Equal(t, "admin", query["role"])
}

func TestBuildFilterInstitutionIsCaseInsensitiveSubstring(t *testing.T) {
	query := buildFilter(ListFilter{InstitutionName: "Example"})
	rx, ok := query["institutionName"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "Example", rx.Pattern)
	assert.Equal(t, "i", rx.Options)
}

func TestBuildFilterEscapesRegexMetacharacters(t *testing.T) {
	query := buildFilter(ListFilter{Query: "a.b*c"})
	clauses, ok := query["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, clauses, 3)
	rx := clauses[0]["username"].(primitive.Regex)
	// User input is matched literally
	assert.Equal(t, `a\.b\*c`, rx.Pattern)
}

func TestBuildFilterSearchSpansThreeFields(t *testing.T) {
	query := buildFilter(ListFilter{Query: "alice"})
	clauses := query["$or"].([]bson.M)
	fields := make([]string, 0, len(clauses))
	for _, clause := range clauses {
		for field := range clause {
			fields = append(fields, field)
		}
	}
	assert.ElementsMatch(t, []string{"username", "email", "institutionName"}, fields)
}

func TestPatchToSetOnlyCarriesSuppliedFields(t *testing.T) {
	now := time.Now().UTC()
	patch := &domain.UserPatch{SleepData: floatPtr(9), UpdatedAt: now}
	set := patchToSet(patch)

	assert.Equal(t, bson.M{"updatedAt": now, "sleepData": 9.0}, set)
}

func TestPatchToSetAlwaysRefreshesUpdatedAt(t *testing.T) {
	now := time.Now().UTC()
	patch := &domain.UserPatch{
		Username:         strPtr("alice"),
		Email:            strPtr("alice@example.com"),
		HealthConditions: []string{"none"},
		UpdatedAt:        now,
	}
	set := patchToSet(patch)

	assert.Equal(t, now, set["updatedAt"])
	assert.Equal(t, "alice", set["username"])
	assert.Equal(t, "alice@example.com", set["email"])
	assert.Equal(t, []string{"none"}, set["healthConditions"])
	assert.NotContains(t, set, "password")
	assert.NotContains(t, set, "age")
}

func TestDuplicateField(t *testing.T) {
	assert.Equal(t, "email", duplicateField(errors.New(`E11000 duplicate key error collection: app.users index: email_1 dup key: { email: "alice@example.com" }`)))
	assert.Equal(t, "username", duplicateField(errors.New(`E11000 duplicate key error collection: app.users index: username_1 dup key: { username: "bob" }`)))
}

func TestDuplicateFieldIgnoresDuplicateValue(t *testing.T) {
	// The duplicate value may contain the other field's name; only the
	// index name decides which field collided
	usernameErr := errors.New(`E11000 duplicate key error collection: app.users index: username_1 dup key: { username: "email-fan" }`)
	assert.Equal(t, "username", duplicateField(usernameErr))

	emailErr := errors.New(`E11000 duplicate key error collection: app.users index: email_1 dup key: { email: "username@example.com" }`)
	assert.Equal(t, "email", duplicateField(emailErr))
}

func TestDuplicateKeyErrorMessage(t *testing.T) {
	err := &DuplicateKeyError{Field: "email"}
	assert.Equal(t, "email already exists", err.Error())
}
