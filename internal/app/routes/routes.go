package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escolinha/backend/internal/app/controllers"
	"github.com/escolinha/backend/internal/app/models"
	"github.com/escolinha/backend/internal/middleware"
)

// SetupRouter configures all application routes under /api/v1.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	teacherController *controllers.TeacherController,
	financeController *controllers.FinanceController,
	dashboardController *controllers.DashboardController,
	feedbackController *controllers.FeedbackController,
	uploadController *controllers.UploadController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		alunos := authenticated.Group("/alunos")
		{
			alunos.GET("", studentController.GetAllStudents)
			alunos.GET("/:id", studentController.GetStudentByID)

			alunosAdmin := alunos.Group("")
			alunosAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				alunosAdmin.POST("", studentController.CreateStudent)
				alunosAdmin.PUT("/:id", studentController.UpdateStudent)
				alunosAdmin.DELETE("/:id", studentController.DeleteStudent)
			}
		}

		professores := authenticated.Group("/professores")
		{
			professores.GET("", teacherController.GetAllTeachers)
			professores.GET("/:id", teacherController.GetTeacherByID)
			professores.POST("", teacherController.CreateTeacher)
			professores.PUT("/:id", teacherController.UpdateTeacher)
			professores.DELETE("/:id", teacherController.DeleteTeacher)
		}

		mensalidades := authenticated.Group("/mensalidades")
		{
			mensalidades.GET("/aluno/:id", financeController.GetTuitionByStudent)
			mensalidades.POST("", financeController.CreateTuition)
		}

		despesas := authenticated.Group("/despesas")
		{
			despesas.GET("/professor/:id", financeController.GetExpensesByTeacher)
			despesas.GET("/:id", financeController.GetExpenseByID)
			despesas.POST("", financeController.CreateExpense)
			despesas.PUT("/:id", financeController.UpdateExpense)
			despesas.DELETE("/:id", financeController.DeleteExpense)
		}

		lancamentos := authenticated.Group("/lancamentos")
		{
			lancamentos.GET("", financeController.GetAllLedgerEntries)
			lancamentos.GET("/:id", financeController.GetLedgerEntryByID)
			lancamentos.POST("", financeController.CreateLedgerEntry)
			lancamentos.PUT("/:id", financeController.UpdateLedgerEntry)
			lancamentos.DELETE("/:id", financeController.DeleteLedgerEntry)
		}

		authenticated.POST("/caixa", financeController.CloseMonth)

		authenticated.GET("/dashboard", dashboardController.GetDashboard)
		authenticated.GET("/relatorio/relatorio-mensal", dashboardController.GetMonthlyReport)
		authenticated.GET("/inadimplentes/notificacao", dashboardController.GetDefaulters)

		feedbacks := authenticated.Group("/feedbacks")
		{
			feedbacks.GET("/aluno/:id", feedbackController.GetByStudent)
			feedbacks.POST("", feedbackController.Create)
			feedbacks.PUT("/ler/:id", feedbackController.MarkRead)
			feedbacks.PUT("/:id", feedbackController.Update)
			feedbacks.DELETE("/:id", feedbackController.Delete)
		}

		authenticated.POST("/upload", uploadController.UploadImages)
	}
}
