package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email     string        `bson:"email" json:"email"`
	Name      string        `bson:"name,omitempty" json:"name,omitempty"`
	Photo     string        `bson:"photo,omitempty" json:"photo,omitempty"`
	Phone     string        `bson:"phone,omitempty" json:"phone,omitempty"`
	Address   string        `bson:"address,omitempty" json:"address,omitempty"`
	Role      string        `bson:"role" json:"role"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt *time.Time    `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// UserUpdate is a partial profile update. Email and role are not editable.
type UserUpdate struct {
	Name    *string `json:"name,omitempty"`
	Photo   *string `json:"photo,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.Photo == nil && u.Phone == nil && u.Address == nil
}
