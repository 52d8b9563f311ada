package domain

import "time"

type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	DarkMode     bool      `db:"dark_mode" json:"darkMode"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
