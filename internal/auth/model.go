package auth

import "time"

const (
	RoleSuperAdmin = "super_admin"
	RoleMessAdmin  = "mess_admin"
)

// User is the admin profile record. The login identity (email + secret) is
// held separately by the identity provider; that split is what the
// self-healing login paths repair.
type User struct {
	ID         string    `bson:"_id" json:"id"`
	Email      string    `bson:"email" json:"email"`
	Name       string    `bson:"name" json:"name"`
	Role       string    `bson:"role" json:"role"`
	MessID     *string   `bson:"messId" json:"messId"`
	AccessCode string    `bson:"accessCode" json:"accessCode"`
	Deleted    bool      `bson:"deleted" json:"deleted"`
	Recovered  bool      `bson:"recovered,omitempty" json:"recovered,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}
