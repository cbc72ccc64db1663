package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/hackmatehq/hackmate/config"
	"github.com/hackmatehq/hackmate/internal/auth"
	"github.com/hackmatehq/hackmate/internal/event"
	"github.com/hackmatehq/hackmate/internal/team"
)

func SetupRoutes(db *gorm.DB, appConfig *config.Config) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if appConfig.App.FrontendURL != "" {
		corsConfig.AllowOrigins = []string{appConfig.App.FrontendURL}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	// Welcome page
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(`
			<html>
				<head><title>HackMate</title></head>
				<body style="text-align:center; margin-top: 40px;">
					<h1>HackMate — find your hackathon team</h1>
					<p><a href="/swagger/index.html">API docs</a></p>
				</body>
			</html>
		`))
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Activity events are recorded once here and shared by every feature
	// group that mutates state.
	recorder := event.NewRecorder(db, event.NewBus())

	api := r.Group("/api")
	auth.RegisterAuthRoutes(api, db, appConfig)
	team.RegisterTeamRoutes(api, db, appConfig, recorder)
	event.RegisterActivityRoutes(api, db, appConfig)

	return r
}
