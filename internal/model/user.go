package model

import "time"

// Role values stored in users.role. Every account is a plain member unless
// an admin promotes it.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User represents an application user record as stored in the `users`
// table. Each field corresponds to a column in the database. The json tags
// are omitted here because these structs are used internally by the
// repository layer; handlers define separate response types with
// appropriate JSON tags.
//
// Fields:
//
//	ID           – primary key identifier, assigned at creation.
//	Username     – unique, case-sensitive login name, immutable after creation.
//	PasswordHash – bcrypt hashed password; never leaves the store boundary.
//	Email        – optional contact address, empty when NULL.
//	Role         – "student" or "admin".
//	IsActive     – inactive accounts can never log in.
//	CreatedAt    – timestamp of creation.
//	LastLogin    – last successful login, nil until the first one.
type User struct {
	ID           uint64     // users.id
	Username     string     // users.username
	PasswordHash string     // users.password_hash
	Email        string     // users.email (nullable)
	Role         string     // users.role
	IsActive     bool       // users.is_active
	CreatedAt    time.Time  // users.created_at
	LastLogin    *time.Time // users.last_login (nullable)
}
