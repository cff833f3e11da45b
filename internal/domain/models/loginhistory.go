// internal/domain/models/loginhistory.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ways a token can be issued.
const (
	LoginMethodPassword = "password"
	LoginMethodRegister = "register"
)

// LoginRecord captures one token issuance. Records expire after a
// retention window enforced by a TTL index on CreatedAt.
type LoginRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id"`
	CreatedAt time.Time          `bson:"created_at"`
	IP        string             `bson:"ip"`
	UserAgent string             `bson:"user_agent,omitempty"`
	Method    string             `bson:"method"`
}
