package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash *string            `bson:"passwordHash,omitempty" json:"-"`

	CreatedAt int64 `bson:"createdAt" json:"createdAt"`
	LastSeen  int64 `bson:"lastSeen" json:"lastSeen"`

	// Profile fields
	Name   string `bson:"name" json:"name"`
	Avatar string `bson:"avatar" json:"avatar"`
	Bio    string `bson:"bio" json:"bio"`
	Role   string `bson:"role" json:"role"` // member, coach, admin

	// Membership fields
	MembershipPlan  string `bson:"membershipPlan,omitempty" json:"membershipPlan,omitempty"`
	MembershipSince int64  `bson:"membershipSince,omitempty" json:"membershipSince,omitempty"`
}
