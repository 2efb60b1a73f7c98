package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"boutique-backend/controllers"
	"boutique-backend/middlewares"
)

// Setup configures and returns the Gin engine.
func Setup(ctrl *controllers.Controller, env string) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:8000"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	api := r.Group("/api")
	{
		api.GET("/health", ctrl.HealthCheck)

		api.POST("/login", ctrl.Login)
		api.POST("/register", ctrl.Register)

		// Analytics dashboards
		api.GET("/type-stats", ctrl.GetTypeStats)
		api.GET("/type-stats/monthly-comparison", ctrl.GetMonthlyComparison)

		// Everything below requires an authenticated admin session.
		admin := api.Group("", middlewares.RequireAdmin(ctrl.DB, ctrl.PasetoSecretKey))
		{
			settings := admin.Group("/settings")
			{
				settings.GET("/type", ctrl.GetTypes)
				settings.POST("/type", ctrl.CreateType)
				settings.PUT("/type/:id", ctrl.UpdateType)
				settings.PUT("/type/:id/toggle-status", ctrl.ToggleTypeStatus)
				settings.DELETE("/type/:id", ctrl.DeleteType)

				settings.GET("/category", ctrl.GetCategories)
				settings.POST("/category", ctrl.CreateCategory)
				settings.PUT("/category/:id", ctrl.UpdateCategory)
				settings.DELETE("/category/:id", ctrl.DeleteCategory)

				settings.GET("/paymentType", ctrl.GetPaymentTypes)
				settings.POST("/paymentType", ctrl.CreatePaymentType)
				settings.DELETE("/paymentType/:id", ctrl.DeletePaymentType)
			}

			admin.GET("/products", ctrl.GetProducts)
			admin.POST("/products", ctrl.CreateProduct)
			admin.GET("/products/:id", ctrl.GetProduct)
			admin.PUT("/products/:id", ctrl.UpdateProduct)
			admin.DELETE("/products/:id", ctrl.DeleteProduct)
			admin.POST("/products/:id/images", ctrl.UploadProductImages)

			admin.GET("/homepage", ctrl.GetHomePage)
			admin.POST("/homepage", ctrl.AddHomeSection)
			admin.PUT("/homepage", ctrl.ReplaceHomeSections)
			admin.PUT("/homepage/:id", ctrl.UpdateHomeSection)
			admin.DELETE("/homepage/:id", ctrl.DeleteHomeSection)

			admin.GET("/stats", ctrl.GetStats)

			admin.GET("/admins", ctrl.GetAdmins)
			admin.DELETE("/admins/:id", ctrl.DeleteAdmin)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
	})
	return r
}
