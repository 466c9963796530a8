package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/emres/learnhub/internal/app/controllers"
	"github.com/emres/learnhub/internal/app/models"
	"github.com/emres/learnhub/internal/app/models/dto"
	"github.com/emres/learnhub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	teacherController *controllers.TeacherController,
	courseController *controllers.CourseController,
	categoryController *controllers.CategoryController,
	bookController *controllers.BookController,
	studentController *controllers.StudentController,
	adminController *controllers.AdminController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	v1.GET("/courses", courseController.ListCourses)

	// Anyone can view an approved course; drafts stay visible only to their
	// owner and to admins, so the handler still wants the caller's identity
	// when a token is supplied.
	v1.GET("/courses/:id", authMiddleware.OptionalJWTAuth(), courseController.GetCourse)

	v1.GET("/categories", categoryController.GetAllCategories)
	v1.GET("/categories/:id", categoryController.GetCategory)
	v1.GET("/books", bookController.GetAllBooks)
	v1.GET("/books/:id", bookController.GetBook)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.GetProfile)
		authenticated.PUT("/auth/me", authController.UpdateProfile)

		courses := authenticated.Group("/courses")
		{
			courses.GET("/mine", courseController.ListMyCourses)
			courses.GET("/:id/books", bookController.ListBooksByCourse)

			coursesTeacher := courses.Group("")
			coursesTeacher.Use(authMiddleware.RoleRequired(models.RoleTeacher, models.RoleAdmin))
			{
				coursesTeacher.POST("", courseController.CreateCourse)
				coursesTeacher.PUT("/:id", courseController.UpdateCourse)
				coursesTeacher.DELETE("/:id", courseController.DeleteCourse)
			}

			coursesStudent := courses.Group("")
			coursesStudent.Use(authMiddleware.RoleRequired(models.RoleStudent))
			{
				coursesStudent.POST("/:id/enroll", studentController.EnrollCourse)
				coursesStudent.GET("/:id/progress", studentController.GetProgress)
				coursesStudent.PUT("/:id/progress", studentController.MarkVideoWatched)
			}
		}

		// Teacher application workflow
		requests := authenticated.Group("/teacher-requests")
		{
			requests.GET("/me", teacherController.GetMyRequest)

			requestsStudent := requests.Group("")
			requestsStudent.Use(authMiddleware.RoleRequired(models.RoleStudent))
			{
				requestsStudent.POST("", teacherController.CreateRequest)
			}
		}

		// Book publishing
		books := authenticated.Group("/books")
		{
			books.POST("/:id/download", bookController.DownloadBook)
			books.POST("/:id/purchase", bookController.PurchaseBook)

			booksTeacher := books.Group("")
			booksTeacher.Use(authMiddleware.RoleRequired(models.RoleTeacher, models.RoleAdmin))
			{
				booksTeacher.POST("", bookController.CreateBook)
				booksTeacher.GET("/mine", bookController.ListMyBooks)
				booksTeacher.PUT("/:id", bookController.UpdateBook)
				booksTeacher.DELETE("/:id", bookController.DeleteBook)
			}
		}

		// Student library and study planning
		students := authenticated.Group("/students")
		students.Use(authMiddleware.RoleRequired(models.RoleStudent))
		{
			students.GET("/enrollments", studentController.ListEnrollments)
			students.GET("/stats", studentController.Stats)
			students.POST("/schedule", studentController.GenerateSchedule)
			students.GET("/schedule", studentController.GetSchedule)
		}

		// Admin routes
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			admin.GET("/teacher-requests", teacherController.ListRequests)
			admin.PUT("/teacher-requests/:id/approve", teacherController.ApproveRequest)
			admin.PUT("/teacher-requests/:id/reject", teacherController.RejectRequest)
			admin.GET("/teacher-accounts/status", teacherController.PoolStatus)
			admin.PUT("/teacher-accounts/:username/release", teacherController.ReleaseAccount)

			admin.GET("/courses/pending", courseController.ListPendingCourses)
			admin.PUT("/courses/:id/approve", courseController.ApproveCourse)
			admin.PUT("/courses/:id/reject", courseController.RejectCourse)

			admin.POST("/categories", categoryController.CreateCategory)
			admin.PUT("/categories/:id", categoryController.UpdateCategory)
			admin.DELETE("/categories/:id", categoryController.DeleteCategory)

			admin.GET("/users", adminController.ListUsers)
			admin.GET("/teachers", adminController.ListTeachers)

			admin.GET("/stats", adminController.PlatformStats)
			admin.GET("/analytics", adminController.Analytics)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewSuccessResponse(gin.H{"status": "ok"}, ""))
	})
}
