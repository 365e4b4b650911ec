package models

// User represents the user model in the database. A user owns exactly one
// profile and all of their categories and expenses; deleting a user removes
// all of them.
type User struct {
	Base
	Username   string       `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email      string       `gorm:"uniqueIndex;not null" json:"email"`
	Password   string       `gorm:"not null" json:"-"`
	Profile    *UserProfile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	Categories []Category   `gorm:"foreignKey:UserID" json:"categories,omitempty"`
	Expenses   []Expense    `gorm:"foreignKey:UserID" json:"expenses,omitempty"`
}
