package domain

// InstitutionCount is one bucket of the users-by-institution aggregation.
// The _id key mirrors the aggregation output shape.
type InstitutionCount struct {
	Institution string `bson:"_id" json:"_id"`     // Institution name
	Count       int64  `bson:"count" json:"count"` // Member count
}

// UserStats is the payload of the stats endpoint
type UserStats struct {
	TotalUsers         int64              `json:"totalUsers"`         // All users
	AdminUsers         int64              `json:"adminUsers"`         // role == "admin"
	RegularUsers       int64              `json:"regularUsers"`       // role == "user"
	UsersByInstitution []InstitutionCount `json:"usersByInstitution"` // Top 10 institutions by member count
	AverageAge         float64            `json:"averageAge"`         // 0 when there are no users
}
