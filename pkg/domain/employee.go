package domain

// Employee is a branch employee allowed to operate the back office.
// PasswordHash is a bcrypt hash and never leaves the service layer.
type Employee struct {
	ID           int64
	FullName     string
	Role         string // Manager, Teller, Admin
	BranchID     int64
	PasswordHash string
}
