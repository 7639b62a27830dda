package model

import "time"

// User represents an application user record as stored in the `users`
// table. Accounts are provisioned directly in the database; there is no
// signup flow, so the application only ever reads this table.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	PasswordHash string    // users.password_hash
	CreatedAt    time.Time // users.created_at
}
