package repositories

import (
	"github.com/escolinha/backend/internal/db"
)

// Repositories holds all the repository instances, bound to the pool.
type Repositories struct {
	UserRepository      *UserRepository
	StudentRepository   *StudentRepository
	LinkRepository      *LinkRepository
	TeacherRepository   *TeacherRepository
	TuitionRepository   *TuitionRepository
	ExpenseRepository   *ExpenseRepository
	LedgerRepository    *LedgerRepository
	ClosingRepository   *ClosingRepository
	FeedbackRepository  *FeedbackRepository
	DashboardRepository *DashboardRepository
}

// NewRepositories initializes all repositories.
func NewRepositories(database *db.PostgresDB) *Repositories {
	pool := database.Pool
	return &Repositories{
		UserRepository:      NewUserRepository(pool),
		StudentRepository:   NewStudentRepository(pool),
		LinkRepository:      NewLinkRepository(pool),
		TeacherRepository:   NewTeacherRepository(pool),
		TuitionRepository:   NewTuitionRepository(pool),
		ExpenseRepository:   NewExpenseRepository(pool),
		LedgerRepository:    NewLedgerRepository(pool),
		ClosingRepository:   NewClosingRepository(pool),
		FeedbackRepository:  NewFeedbackRepository(pool),
		DashboardRepository: NewDashboardRepository(pool),
	}
}
