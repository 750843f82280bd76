package domain

import "time"

// User - пользователь, ключ - SubjectID (Firebase UID)
type User struct {
	ID        int64     `db:"id"`
	SubjectID string    `db:"subject_id"`
	Email     *string   `db:"email"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// UserProfile - публичная проекция пользователя
type UserProfile struct {
	ID        int64   `json:"id"`
	SubjectID string  `json:"subjectId"`
	Email     *string `json:"email"`
}

// Profile возвращает публичную проекцию
func (u *User) Profile() *UserProfile {
	return &UserProfile{
		ID:        u.ID,
		SubjectID: u.SubjectID,
		Email:     u.Email,
	}
}

// Identity - результат проверки bearer токена
type Identity struct {
	SubjectID string
	Email     *string
}
