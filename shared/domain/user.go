package domain

import "time"

type User struct {
	Id        UserId    `db:"id"`
	Username  Username  `db:"username"`
	PassHash  string    `db:"pass_hash" json:"-"`
	CreatedAt time.Time `db:"created_at"`
}

type Credentials struct {
	Username Username
	Password Password
}
