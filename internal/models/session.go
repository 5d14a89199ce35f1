package models

import "time"

// Session - учётные данные пользователя, извлечённые из bearer-токена.
// Передаётся явно во все вызовы backend API.
type Session struct {
	Token     string
	Subject   string
	Name      string
	Currency  string
	ExpiresAt time.Time
}
