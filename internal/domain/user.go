package domain

import (
	"strings"
	"time"

	"github.com/Tarakeshp07/livekit-server/internal/utils" // Password hashing

	"go.mongodb.org/mongo-driver/bson/primitive" // MongoDB ObjectID
)

// DefaultRole is assigned when a signup omits the role field
const DefaultRole = "user"

// User Model (one document in the "users" collection)
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`                  // Primary key
	Username         string             `bson:"username" json:"username"`                 // Unique username
	Password         string             `bson:"password" json:"-"`                        // Hashed password, never exposed in JSON
	Role             string             `bson:"role" json:"role"`                         // Role: user, admin, student, ...
	Age              int                `bson:"age" json:"age"`                           // Age, 0-150
	HealthConditions []string           `bson:"healthConditions" json:"healthConditions"` // Free-text conditions
	SleepData        float64            `bson:"sleepData" json:"sleepData"`               // Non-negative
	InstitutionName  string             `bson:"institutionName" json:"institutionName"`   // Free text, max 100 chars
	Email            string             `bson:"email" json:"email"`                       // Unique email, stored lowercase
	SleepRate        float64            `bson:"sleeprate" json:"sleeprate"`               // Non-negative
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`               // Creation timestamp
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`               // Refreshed on every write
}

// PublicProfile is the minimal projection returned on login
type PublicProfile struct {
	ID       string `json:"id"`       // Hex ObjectID
	Username string `json:"username"` // Username
	Email    string `json:"email"`    // Email
	Role     string `json:"role"`     // Role
}

// Profile returns the minimal login projection of a user
func (u *User) Profile() PublicProfile {
	return PublicProfile{
		ID:       u.ID.Hex(),
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}

// SignupInput is the create payload. Pointer fields distinguish an absent
// value from a zero value (age 0 is valid, age absent is not).
type SignupInput struct {
	Username         string   `json:"username"`
	Password         string   `json:"password"`
	Role             string   `json:"role"`
	Age              *int     `json:"age"`
	HealthConditions []string `json:"healthConditions"`
	SleepData        *float64 `json:"sleepData"`
	InstitutionName  string   `json:"institutionName"`
	Email            string   `json:"email"`
	SleepRate        *float64 `json:"sleeprate"`
}

// NewUser builds a persistable User from a validated signup payload.
// Hashing and timestamping happen here, explicitly, instead of in a hidden
// pre-save hook.
func NewUser(in SignupInput) (*User, error) {
	hash, err := utils.HashPassword(in.Password) // Hash the plaintext password
	if err != nil {
		return nil, err
	}
	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = DefaultRole // Default role when omitted
	}
	age := 0
	if in.Age != nil {
		age = *in.Age
	}
	sleepData := 0.0
	if in.SleepData != nil {
		sleepData = *in.SleepData
	}
	sleepRate := 0.0
	if in.SleepRate != nil {
		sleepRate = *in.SleepRate
	}
	now := time.Now().UTC()
	return &User{
		Username:         strings.TrimSpace(in.Username),
		Password:         hash,
		Role:             role,
		Age:              age,
		HealthConditions: trimAll(in.HealthConditions),
		SleepData:        sleepData,
		InstitutionName:  strings.TrimSpace(in.InstitutionName),
		Email:            NormalizeEmail(in.Email),
		SleepRate:        sleepRate,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// UserPatch is a partial update. Nil fields are left untouched by the store.
type UserPatch struct {
	Username         *string   `json:"username"`
	Password         *string   `json:"password"`
	Role             *string   `json:"role"`
	Age              *int      `json:"age"`
	HealthConditions []string  `json:"healthConditions"`
	SleepData        *float64  `json:"sleepData"`
	InstitutionName  *string   `json:"institutionName"`
	Email            *string   `json:"email"`
	SleepRate        *float64  `json:"sleeprate"`
	UpdatedAt        time.Time `json:"-"` // Set by Prepare, never bound from the request
}

// Prepare finalizes a validated patch before it reaches the store: re-hashes
// the password when one is supplied, normalizes username/email, and refreshes
// the updatedAt timestamp.
func (p *UserPatch) Prepare() error {
	if p.Password != nil {
		hash, err := utils.HashPassword(*p.Password) // Re-hash the new password
		if err != nil {
			return err
		}
		p.Password = &hash
	}
	if p.Username != nil {
		trimmed := strings.TrimSpace(*p.Username)
		p.Username = &trimmed
	}
	if p.Email != nil {
		normalized := NormalizeEmail(*p.Email)
		p.Email = &normalized
	}
	if p.InstitutionName != nil {
		trimmed := strings.TrimSpace(*p.InstitutionName)
		p.InstitutionName = &trimmed
	}
	if p.HealthConditions != nil {
		p.HealthConditions = trimAll(p.HealthConditions)
	}
	p.UpdatedAt = time.Now().UTC() // Refreshed on every mutating write
	return nil
}

// NormalizeEmail lowercases and trims an email for storage and lookups
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// trimAll trims every entry of a string slice
func trimAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}
