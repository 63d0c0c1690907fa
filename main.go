package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/katanastore/backend/controllers"
	"github.com/katanastore/backend/database"
	"github.com/katanastore/backend/middleware"
	"github.com/katanastore/backend/repository"
	"github.com/katanastore/backend/storage"
	"github.com/katanastore/backend/utils"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file")
	}
	ctx := context.Background()

	//seeding admin user
	usersCol := database.OpenCollection("users")
	if err := utils.SeedAdminUser(ctx, usersCol); err != nil {
		log.Fatal(err)
	}

	catalog := repository.NewMongoCatalogRepository(database.OpenCollection("products"))
	if err := catalog.EnsureIndexes(ctx); err != nil {
		log.Fatal(err)
	}

	uploader, err := storage.NewUploaderFromEnv(ctx)
	if err != nil {
		log.Fatal(err)
	}

	r := gin.New()

	origins := os.Getenv("ALLOWED_ORIGINS")
	allowedOrigins := map[string]bool{}
	for _, origin := range strings.Split(origins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowedOrigins[origin] = true
		}
	}
	log.Printf("Allowed origins: %v", allowedOrigins)
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowedOrigins[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	r.POST("/auth/login", controllers.Login())
	r.POST("/auth/refresh", controllers.Refresh())
	r.POST("/auth/logout", controllers.Logout())

	// Public storefront reads
	r.GET("/products", controllers.GetProducts(catalog))
	r.GET("/products/:slug", controllers.GetProductBySlug(catalog))
	r.GET("/products/:slug/related", controllers.GetRelatedProducts(catalog))

	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	{
		admin.GET("/products", controllers.AdminListProducts(catalog))
		admin.POST("/products", controllers.AddProduct(catalog, uploader))
		admin.PATCH("/products/:id", controllers.UpdateProduct(catalog, uploader))
		admin.DELETE("/products/:id", controllers.DeleteProduct(catalog))
		admin.PATCH("/products/:id/active", controllers.SetProductActive(catalog))
	}

	r.Run()
}
