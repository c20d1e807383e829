package api

import (
	"event_booking/internal/domain"     // Role names
	"event_booking/internal/middleware" // JWT and role guards
	"event_booking/internal/service"    // Domain services
	"event_booking/internal/storage"    // Blob store

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// NewRouter wires the services, middleware, and routes into a gin engine
func NewRouter(db *gorm.DB, rdb *redis.Client, store storage.Store, jwtSecret, storageDir string) *gin.Engine {
	r := gin.Default() // Gin router instance

	// Domain services
	categories := service.NewCategoryService(db, store) // Category catalog
	events := service.NewEventService(db, store)        // Event catalog
	bookings := service.NewBookingService(db)           // Booking lifecycle

	// Guards
	authed := middleware.JWTAuthMiddleware(jwtSecret, rdb)       // Any authenticated user
	adminOnly := middleware.RequireRole(db, domain.RoleAdmin)    // Admin role
	userOnly := middleware.RequireRole(db, domain.RoleUser)      // User role

	// Uploaded images are served read-only under /storage
	r.Static("/storage", storageDir)

	// Identity surface
	r.POST("/register", RegisterHandler(db))            // Registration endpoint
	r.POST("/login", LoginHandler(db, jwtSecret))       // Login endpoint
	r.POST("/logout", authed, LogoutHandler(jwtSecret, rdb)) // Token revocation endpoint
	r.GET("/user", authed, MeHandler(db))               // Current user endpoint

	// Public read surface
	r.GET("/events", ListEventsHandler(events, rdb))                           // Paginated event list
	r.GET("/events/categories", ListCategoriesHandler(categories, rdb))        // Category list
	r.GET("/events/search", SearchEventsHandler(events))                       // Name/description search
	r.GET("/events/filter/date", FilterEventsByDateHandler(events))            // Exact-date filter
	r.GET("/events/filter/location", FilterEventsByLocationHandler(events))    // Location substring filter
	r.GET("/events/filter/category", FilterEventsByCategoryHandler(events))    // Category substring filter
	r.GET("/events/:id", GetEventHandler(events, rdb))                         // Single event

	// Booking routes (user role, ownership-scoped)
	userGroup := r.Group("/")
	userGroup.Use(authed, userOnly) // Authenticated users only
	userGroup.POST("/events/:id/bookings", CreateBookingHandler(bookings))      // Book an event
	userGroup.GET("/events/:id/bookings/check", CheckBookingHandler(bookings))  // Advisory booked check
	userGroup.PUT("/events/bookings/:id", UpdateBookingHandler(bookings))       // Change ticket count
	userGroup.DELETE("/events/bookings/:id", DeleteBookingHandler(bookings))    // Cancel a booking
	userGroup.GET("/user/bookings", GetUserBookingsHandler(bookings))           // Paginated own bookings

	// Admin routes (admin role only)
	adminGroup := r.Group("/admin")
	adminGroup.Use(authed, adminOnly) // Admins only
	adminGroup.POST("/events", CreateEventHandler(events, rdb))            // Create event
	adminGroup.PUT("/events/:id", UpdateEventHandler(events, rdb))         // Update event
	adminGroup.DELETE("/events/:id", DeleteEventHandler(events, rdb))      // Delete event
	adminGroup.GET("/events/:id/bookings", EventBookingsHandler(bookings)) // Bookings of one event
	adminGroup.GET("/events-with-revenue", RevenueSummaryHandler(events))  // Revenue report
	adminGroup.GET("/bookings", ListAllBookingsHandler(bookings))          // All bookings
	adminGroup.GET("/bookings/total", TotalBookingsHandler(bookings))      // Booking count
	adminGroup.POST("/categories", CreateCategoryHandler(categories, rdb))       // Create category
	adminGroup.PUT("/categories/:id", UpdateCategoryHandler(categories, rdb))    // Update category
	adminGroup.POST("/categories/:id", UpdateCategoryHandler(categories, rdb))   // Multipart clients send POST for updates
	adminGroup.DELETE("/categories/:id", DeleteCategoryHandler(categories, rdb)) // Delete category

	return r
}
