package models

// CategoryNameMaxLen is the maximum length of a category name, in characters.
const CategoryNameMaxLen = 50

// Category represents an expense category. Names are unique per user
// (case-sensitive); two different users may each own a category with the
// same name. Deleting a category never deletes its expenses; their
// category reference is cleared instead.
type Category struct {
	Base
	UserID uint   `gorm:"not null;uniqueIndex:idx_categories_user_name" json:"user_id"`
	Name   string `gorm:"size:50;not null;uniqueIndex:idx_categories_user_name" json:"name"`
}
