package domain

import "time"

// ChildColorPalette is the fixed set of calendar display colors cycled
// through when a child is created without an explicit color. Read-only after
// initialization.
var ChildColorPalette = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#FFA07A",
	"#98D8C8", "#F7DC6F", "#BB8FCE", "#85C1E9",
}

type Child struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userID"`
	Name        string    `json:"name"`
	DateOfBirth string    `json:"dateOfBirth"` // yyyy-MM-dd, may be empty
	ColorHex    string    `json:"colorHex"`
	CreatedAt   time.Time `json:"createdAt"`
	Version     int32     `json:"-"`
}
