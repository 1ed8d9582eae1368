package router

import (
	"yatube/internal/cache"
	"yatube/internal/handlers"
	"yatube/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the URL surface. The page cache is built once per
// process in main and handed to the post handler.
func RegisterRoutes(r *gin.Engine, pageCache *cache.PageCache) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	postHandler := handlers.NewPostHandler(pageCache)
	userHandler := handlers.NewUserHandler()
	pagesHandler := handlers.NewPagesHandler()

	// Public Routes
	r.GET("/", postHandler.Index)
	r.GET("/group/:slug", postHandler.GroupPosts)
	r.GET("/profile/:username", postHandler.Profile)
	r.GET("/posts/:id", postHandler.Detail)

	r.GET("/auth/signup", authHandler.ShowSignup)
	r.POST("/auth/signup", authHandler.Signup)
	r.GET("/auth/login", authHandler.ShowLogin)
	r.POST("/auth/login", authHandler.Login)
	r.GET("/auth/logout", authHandler.Logout)

	r.GET("/about/author", pagesHandler.AboutAuthor)
	r.GET("/about/tech", pagesHandler.AboutTech)
	r.GET("/ip", pagesHandler.ClientIP)

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/create", postHandler.ShowCreate)
		authorized.POST("/create", postHandler.Create)
		authorized.GET("/posts/:id/edit", postHandler.ShowEdit)
		authorized.POST("/posts/:id/edit", postHandler.Edit)
		authorized.GET("/posts/:id/delete", postHandler.Delete)
		authorized.POST("/posts/:id/delete", postHandler.Delete)
		authorized.POST("/posts/:id/comment", postHandler.AddComment)
		authorized.POST("/posts/:id/comment/:cid/delete", postHandler.DeleteComment)

		// Follow feed and the follow/unfollow relation
		authorized.GET("/follow", postHandler.FollowIndex)
		authorized.GET("/profile/:username/follow", userHandler.Follow)
		authorized.POST("/profile/:username/follow", userHandler.Follow)
		authorized.GET("/profile/:username/unfollow", userHandler.Unfollow)
		authorized.POST("/profile/:username/unfollow", userHandler.Unfollow)
	}

	r.NoRoute(handlers.NotFound)
}
