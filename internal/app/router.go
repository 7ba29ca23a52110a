package app

import (
	"coursegpt_backend/docs"
	"coursegpt_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	api := router.Group("/api")
	api.GET("/health", c.health.HealthCheck)

	a.registerLessonRoutes(api, c)
	a.registerDraftRoutes(api, c)
	a.registerCourseRoutes(api, c)
}

func (a *App) registerLessonRoutes(rg *gin.RouterGroup, c *controllers) {
	lessons := rg.Group("/lessons")
	{
		lessons.POST("", c.lesson.CreateLesson)
		lessons.GET("", c.lesson.ListLessons)
		lessons.GET("/all", c.lesson.ListLessons)
		lessons.GET("/:id", c.lesson.GetLesson)
		lessons.PUT("/:id", c.lesson.UpdateLesson)
		lessons.DELETE("/:id", c.lesson.DeleteLesson)
	}
}

func (a *App) registerDraftRoutes(rg *gin.RouterGroup, c *controllers) {
	drafts := rg.Group("/drafts")
	{
		drafts.POST("/generate", c.draft.GenerateDraft)
		drafts.POST("/apply", c.draft.ApplyOperation)
		drafts.POST("/save", c.draft.SaveDraft)
	}
}

func (a *App) registerCourseRoutes(rg *gin.RouterGroup, c *controllers) {
	courses := rg.Group("/courses")
	{
		courses.POST("", c.course.CreateCourse)
		courses.GET("", c.course.ListCourses)
		courses.GET("/:id", c.course.GetCourse)
		courses.PUT("/:id", c.course.UpdateCourse)
		courses.DELETE("/:id", c.course.DeleteCourse)

		courses.POST("/:id/lessons", c.course.AddLesson)
		courses.DELETE("/:id/lessons/:lessonId", c.course.RemoveLesson)
		courses.POST("/:id/reorder", c.course.ReorderLessons)
		courses.POST("/:id/optimize", c.course.OptimizeSequence)
		courses.GET("/:id/available", c.course.AvailableLessons)
	}
}
