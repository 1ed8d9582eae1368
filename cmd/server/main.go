package main

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"
	"yatube/internal/cache"
	"yatube/internal/db"
	"yatube/internal/handlers"
	"yatube/internal/middleware"
	"yatube/internal/router"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// Initialize Database
	db.Init()

	// Initialize Gin
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, err any) {
		handlers.RenderError(c, http.StatusInternalServerError, "Something broke on our side")
	}))

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("yatube_session", store))

	// Load Templates using Multitemplate to avoid collision and allow handler names
	r.HTMLRender = loadTemplates("./web/templates")

	// Static Assets and uploaded media
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Static("/static", "./web/static")
	r.Static("/media", "./web/uploads")

	// Middleware
	r.Use(middleware.LoadUser())

	// Routes; the index page cache lives for the whole process
	pageCache := cache.New(16, cache.IndexTTL)
	router.RegisterRoutes(r, pageCache)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Yatube server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	includes, err := filepath.Glob(templatesDir + "/includes/*.html")
	if err != nil {
		panic(err)
	}

	// Helper to assemble files
	assemble := func(view string) []string {
		files := make([]string, 0)
		files = append(files, layouts...)
		files = append(files, includes...)
		files = append(files, view)
		return files
	}

	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"timeAgo": func(t interface{}) string {
			timeVal, ok := t.(time.Time)
			if !ok {
				return ""
			}

			seconds := int(time.Since(timeVal).Seconds())
			switch {
			case seconds < 60:
				return fmt.Sprintf("%ds ago", seconds)
			case seconds < 3600:
				return fmt.Sprintf("%dm ago", seconds/60)
			case seconds < 86400:
				return fmt.Sprintf("%dh ago", seconds/3600)
			case seconds < 2592000:
				return fmt.Sprintf("%dd ago", seconds/86400)
			case seconds < 31536000:
				return fmt.Sprintf("%dmo ago", seconds/2592000)
			}
			return fmt.Sprintf("%dy ago", seconds/31536000)
		},
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
		"truncate": func(s string, n int) string {
			runes := []rune(s)
			if len(runes) <= n {
				return s
			}
			return string(runes[:n]) + "..."
		},
	}

	// Manual registration to ensure keys match handler expectation
	// Posts
	r.AddFromFilesFuncs("posts/index.html", funcMap, assemble(templatesDir+"/views/posts/index.html")...)
	r.AddFromFilesFuncs("posts/group_list.html", funcMap, assemble(templatesDir+"/views/posts/group_list.html")...)
	r.AddFromFilesFuncs("posts/profile.html", funcMap, assemble(templatesDir+"/views/posts/profile.html")...)
	r.AddFromFilesFuncs("posts/follow.html", funcMap, assemble(templatesDir+"/views/posts/follow.html")...)
	r.AddFromFilesFuncs("posts/detail.html", funcMap, assemble(templatesDir+"/views/posts/detail.html")...)
	r.AddFromFilesFuncs("posts/create.html", funcMap, assemble(templatesDir+"/views/posts/create.html")...)
	r.AddFromFilesFuncs("posts/edit.html", funcMap, assemble(templatesDir+"/views/posts/edit.html")...)

	// Auth
	r.AddFromFilesFuncs("auth/login.html", funcMap, assemble(templatesDir+"/views/auth/login.html")...)
	r.AddFromFilesFuncs("auth/signup.html", funcMap, assemble(templatesDir+"/views/auth/signup.html")...)

	// About
	r.AddFromFilesFuncs("about/author.html", funcMap, assemble(templatesDir+"/views/about/author.html")...)
	r.AddFromFilesFuncs("about/tech.html", funcMap, assemble(templatesDir+"/views/about/tech.html")...)

	// Misc
	r.AddFromFilesFuncs("ip.html", funcMap, assemble(templatesDir+"/views/ip.html")...)
	r.AddFromFilesFuncs("error.html", funcMap, assemble(templatesDir+"/views/error.html")...)

	return r
}
