package models

import (
	"time"

	"github.com/google/uuid"
)

// AnonymousUserID - фиксированный идентификатор единственного анонимного пользователя.
// Все сервисы принимают userID явно, константа подставляется только на границе HTTP.
const AnonymousUserID = "anonymous"

// AnonymousUserEmail - email, с которым создается анонимный пользователь.
const AnonymousUserEmail = "anon@scenario-trainer"

// TransactionType определяет тип начисления очков в леджере.
type TransactionType string

const (
	TransactionAIStep       TransactionType = "AI_STEP"
	TransactionCompleteStep TransactionType = "COMPLETE_STEP"
	TransactionAssessment   TransactionType = "ASSESSMENT"
)

// Фиксированные награды за действия пользователя.
const (
	RewardAIStep       = 5
	RewardCompleteStep = 10
	RewardAssessment   = 30
)

// PointsPerLevel - количество очков, необходимое для перехода на следующий уровень.
const PointsPerLevel = 100

// User представляет автора сценариев. В текущей версии существует ровно один
// анонимный пользователь, создаваемый лениво при первом обращении.
type User struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// AnonymousUser возвращает запись анонимного пользователя для upsert-а.
func AnonymousUser() *User {
	return &User{
		ID:       AnonymousUserID,
		Email:    AnonymousUserEmail,
		Password: "",
		Role:     "USER",
	}
}

// Scenario - тренировочный сценарий с упорядоченным списком шагов.
// После создания сценарий не изменяется, кроме добавления шагов.
type Scenario struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	Steps     []Step    `json:"steps" db:"-"`
}

// Step - один шаг сценария. Шаг неизменяем после создания.
type Step struct {
	ID         uuid.UUID `json:"id" db:"id"`
	ScenarioID uuid.UUID `json:"scenarioId" db:"scenario_id"`
	Content    string    `json:"content" db:"content"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// PointTransaction - запись в append-only леджере очков.
// Записи никогда не изменяются и не удаляются; сумма amount по пользователю
// дает текущий счет.
type PointTransaction struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	UserID    string          `json:"userId" db:"user_id"`
	Type      TransactionType `json:"type" db:"type"`
	Amount    int             `json:"amount" db:"amount"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}
