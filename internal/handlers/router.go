package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/medville/medjobs/internal/auth"
	"github.com/medville/medjobs/internal/middleware"
)

// RegisterRoutes mounts the full API surface. Apply and the by-user query
// sit behind the bearer-token guard; everything under /datas goes through
// the body sanitizer.
func RegisterRoutes(
	r *gin.Engine,
	cities *CityHandler,
	jobs *JobHandler,
	authH *AuthHandler,
	data *DataHandler,
	tokens *auth.TokenManager,
) {
	api := r.Group("/api")
	{
		api.GET("/health", HealthCheck)
		api.POST("/signup", authH.Signup)
		api.POST("/login", authH.Login)
	}

	datas := api.Group("/datas", middleware.SanitizeBody())
	{
		datas.GET("/communes", data.Communes)

		datas.GET("/cities", cities.GetAll)
		datas.POST("/cities", cities.Create)
		datas.GET("/cities/names", cities.GetAllNames)
		datas.GET("/cities/:id", cities.GetByID)
		datas.PUT("/cities/:id", cities.Update)
		datas.DELETE("/cities/:id", cities.Delete)

		datas.GET("/jobs", jobs.GetAll)
		datas.POST("/jobs", jobs.Create)
		datas.GET("/jobs/:jobId", jobs.GetByID)
		datas.PUT("/jobs/:jobId", jobs.Update)
		datas.DELETE("/jobs/:jobId", jobs.Delete)
		datas.POST("/jobs/:jobId/apply", middleware.RequireAuth(tokens), jobs.Apply)
		datas.GET("/jobs/user/:userId", middleware.RequireAuth(tokens), jobs.FindByUser)
		datas.GET("/jobs/city/:cityId", jobs.FindByCity)

		datas.GET("/audit/orphans", jobs.AuditOrphans)
	}
}
