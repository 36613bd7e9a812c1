package routes

import (
	"github.com/gin-gonic/gin"

	"atfplatform/backend/config"
	"atfplatform/backend/controllers"
	"atfplatform/backend/middlewares"
	"atfplatform/backend/models"
	"atfplatform/backend/realtime"
	"atfplatform/backend/storage"
)

func Register(r *gin.Engine, cfg config.Config, hub *realtime.Hub, store storage.Store) {
	r.Use(middlewares.Locale())

	api := r.Group("/api")
	{
		api.POST("register", controllers.Register(cfg))
		api.POST("login", middlewares.RateLimit("login", cfg.LoginRatePerMinute), controllers.Login(cfg))
		api.GET("email/verify/:token", controllers.VerifyEmail())

		// HS code tree
		api.POST("code-categories", controllers.Categories())
		api.POST("code-categories-search", controllers.SearchCategories())
		api.GET("declarations/:id", controllers.Declaration())

		// Transport adverts
		api.GET("adverts", controllers.AdvertList(""))
		api.GET("adverts/individuals", controllers.AdvertList(models.RoleIndividual))
		api.GET("adverts/legal-entities", controllers.AdvertList(models.RoleLegalEntity))
		api.GET("adverts/entrepreneurs", controllers.AdvertList(models.RoleEntrepreneur))
		api.GET("adverts/:slug", controllers.AdvertDetail())
		api.GET("entrepreneur-details/:slug", controllers.EntrepreneurDetails())
		api.GET("lookups", controllers.Lookups())

		// Catalog content
		api.GET("home", controllers.Home())
		api.GET("services", controllers.Services())
		api.GET("faqs", controllers.FAQs())
		api.POST("send", middlewares.RateLimit("contact", cfg.ContactRatePerMinute), controllers.Send())

		priv := api.Group("/")
		priv.Use(middlewares.Auth(cfg.JWTSecret))
		priv.GET("user", controllers.Me())
		priv.POST("logout", controllers.Logout(cfg))
		priv.POST("profile/edit", controllers.ProfileEdit(store))
		priv.POST("profile/password/edit", controllers.PasswordEdit())

		// Application wizard
		priv.POST("code-categories-documents", controllers.Documents())
		priv.POST("code-categories-downloads", controllers.Downloads(cfg))
		priv.GET("requests", controllers.Requests())

		priv.POST("adverts/store", controllers.AdvertStore(store))

		// Support chat
		priv.GET("chat/messages", controllers.ChatMessages())
		priv.POST("chat/send", controllers.ChatSend(cfg, hub))

		admin := priv.Group("/admin")
		admin.Use(middlewares.AdminOnly(controllers.IsAdmin))
		admin.GET("chats", controllers.AdminChats())
		admin.GET("chats/:id/messages", controllers.AdminChatMessages())
		admin.POST("chats/:id/send", controllers.AdminChatSend(hub))
		admin.GET("requests/export", controllers.RequestsExport())
	}

	r.POST("/broadcasting/auth", middlewares.Auth(cfg.JWTSecret), controllers.BroadcastingAuth(cfg))
}
