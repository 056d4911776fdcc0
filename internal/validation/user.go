// Package validation holds the field rules for user payloads, decoupled from
// the storage layer so they are independently testable. Validators return the
// full list of violations in declared rule order; an empty list means the
// payload is acceptable.
package validation

import (
	"regexp"

	"github.com/Tarakeshp07/livekit-server/internal/domain"
)

// Field rule bounds
const (
	MinPasswordLen    = 6
	MinUsernameLen    = 3
	MaxUsernameLen    = 30
	MinAge            = 0
	MaxAge            = 150
	MaxInstitutionLen = 100
)

// Violation messages
const (
	MsgMissingFields      = "Missing required fields: username, password, age, institutionName, email"
	MsgPasswordTooShort   = "Password must be at least 6 characters long"
	MsgAgeOutOfRange      = "Age must be between 0 and 150"
	MsgInvalidEmail       = "Please provide a valid email address"
	MsgUsernameLength     = "Username must be between 3 and 30 characters"
	MsgInstitutionTooLong = "Institution name must be at most 100 characters"
	MsgNegativeSleepData  = "Sleep data must be a non-negative number"
	MsgNegativeSleepRate  = "Sleep rate must be a non-negative number"
)

// emailPattern: word characters with single dot/hyphen separators in the
// local part and domain, 2-3 character final segment
var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// ValidEmail reports whether an address matches the accepted pattern
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidateSignup checks a create payload. All fields are required; rules run
// in declared order: missing fields, password length, age range, email
// format, then the schema-level length and sign rules.
func ValidateSignup(in domain.SignupInput) []string {
	var violations []string
	if in.Username == "" || in.Password == "" || in.Age == nil || in.InstitutionName == "" || in.Email == "" {
		violations = append(violations, MsgMissingFields)
	}
	if in.Password != "" && len(in.Password) < MinPasswordLen {
		violations = append(violations, MsgPasswordTooShort)
	}
	if in.Age != nil && (*in.Age < MinAge || *in.Age > MaxAge) {
		violations = append(violations, MsgAgeOutOfRange)
	}
	if in.Email != "" && !ValidEmail(in.Email) {
		violations = append(violations, MsgInvalidEmail)
	}
	if in.Username != "" && (len(in.Username) < MinUsernameLen || len(in.Username) > MaxUsernameLen) {
		violations = append(violations, MsgUsernameLength)
	}
	if len(in.InstitutionName) > MaxInstitutionLen {
		violations = append(violations, MsgInstitutionTooLong)
	}
	if in.SleepData != nil && *in.SleepData < 0 {
		violations = append(violations, MsgNegativeSleepData)
	}
	if in.SleepRate != nil && *in.SleepRate < 0 {
		violations = append(violations, MsgNegativeSleepRate)
	}
	return violations
}

// ValidateUserPatch checks an update payload. Only fields present in the
// patch are validated; absent fields are neither checked nor defaulted.
func ValidateUserPatch(p *domain.UserPatch) []string {
	var violations []string
	if p.Password != nil && len(*p.Password) < MinPasswordLen {
		violations = append(violations, MsgPasswordTooShort)
	}
	if p.Age != nil && (*p.Age < MinAge || *p.Age > MaxAge) {
		violations = append(violations, MsgAgeOutOfRange)
	}
	if p.Email != nil && !ValidEmail(*p.Email) {
		violations = append(violations, MsgInvalidEmail)
	}
	if p.Username != nil && (len(*p.Username) < MinUsernameLen || len(*p.Username) > MaxUsernameLen) {
		violations = append(violations, MsgUsernameLength)
	}
	if p.InstitutionName != nil && len(*p.InstitutionName) > MaxInstitutionLen {
		violations = append(violations, MsgInstitutionTooLong)
	}
	if p.SleepData != nil && *p.SleepData < 0 {
		violations = append(violations, MsgNegativeSleepData)
	}
	if p.SleepRate != nil && *p.SleepRate < 0 {
		violations = append(violations, MsgNegativeSleepRate)
	}
	return violations
}
