package domain

// Todo is the single persisted entity. The database assigns ID on insert.
type Todo struct {
	ID      int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Content string `json:"content" gorm:"not null;index"`
}

// TableName keeps the table name singular ("todo") instead of gorm's plural default.
func (Todo) TableName() string {
	return "todo"
}
