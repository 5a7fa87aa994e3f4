package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/studentsync/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, studentController *controllers.StudentController) {
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	v1 := router.Group("/api/v1")

	students := v1.Group("/students")
	{
		students.POST("", studentController.CreateStudent)
		students.GET("", studentController.ListStudents)
	}
}
