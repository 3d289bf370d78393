package models

type User struct {
	ID         string `bson:"_id,omitempty"`
	Name       string `bson:"name"`
	Email      string `bson:"email"`
	Image      string `bson:"image"`
	IsVerified bool   `bson:"isVerified"`
	IsBanned   bool   `bson:"isBanned"`
	BanReason  string `bson:"banReason,omitempty"`
}
