package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/eventure-app/eventure-api/docs"
	v1 "github.com/eventure-app/eventure-api/internal/api/handler/v1"
	"github.com/eventure-app/eventure-api/internal/api/middleware"
	"github.com/eventure-app/eventure-api/internal/config"
	"github.com/eventure-app/eventure-api/internal/repository"
	"github.com/eventure-app/eventure-api/internal/repository/dao"
	"github.com/eventure-app/eventure-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))

	authHandler := s.initAuthHandler(db)
	userHandler := v1.NewUserHandler(uSvc)
	eventHandler := s.initEventHandler(db, uSvc)
	attendanceHandler := s.initAttendanceHandler(db, uSvc)
	categoryHandler := s.initCategoryHandler(db, uSvc)
	placeHandler := s.initPlaceHandler(db, uSvc)
	reviewHandler := s.initReviewHandler(db, uSvc)
	admissionHandler := s.initAdmissionHandler(db, uSvc)

	s.MountHandlers(
		authHandler,
		userHandler,
		eventHandler,
		attendanceHandler,
		categoryHandler,
		placeHandler,
		reviewHandler,
		admissionHandler,
	)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initEventHandler(db *gorm.DB, uSvc v1.UserService) *v1.EventHandler {
	eventDAO := dao.NewEventDAO(db)
	repo := repository.NewEventRepository(eventDAO)
	svc := service.NewEventService(repo)
	handler := v1.NewEventHandler(svc, uSvc)

	return handler
}

func (s *Server) initAttendanceHandler(db *gorm.DB, uSvc v1.UserService) *v1.AttendanceHandler {
	attendanceDAO := dao.NewAttendanceDAO(db)
	repo := repository.NewAttendanceRepository(attendanceDAO)
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	svc := service.NewAttendanceService(repo, eventRepo)
	handler := v1.NewAttendanceHandler(svc, uSvc)

	return handler
}

func (s *Server) initCategoryHandler(db *gorm.DB, uSvc v1.UserService) *v1.CategoryHandler {
	categoryDAO := dao.NewCategoryDAO(db)
	repo := repository.NewCategoryRepository(categoryDAO)
	svc := service.NewCategoryService(repo)
	handler := v1.NewCategoryHandler(svc, uSvc)

	return handler
}

func (s *Server) initPlaceHandler(db *gorm.DB, uSvc v1.UserService) *v1.PlaceHandler {
	placeDAO := dao.NewPlaceDAO(db)
	repo := repository.NewPlaceRepository(placeDAO)
	svc := service.NewPlaceService(repo)
	handler := v1.NewPlaceHandler(svc, uSvc)

	return handler
}

func (s *Server) initReviewHandler(db *gorm.DB, uSvc v1.UserService) *v1.ReviewHandler {
	reviewDAO := dao.NewReviewDAO(db)
	repo := repository.NewReviewRepository(reviewDAO)
	attendanceRepo := repository.NewAttendanceRepository(dao.NewAttendanceDAO(db))
	svc := service.NewReviewService(repo, attendanceRepo)
	handler := v1.NewReviewHandler(svc, uSvc)

	return handler
}

func (s *Server) initAdmissionHandler(db *gorm.DB, uSvc v1.UserService) *v1.AdmissionHandler {
	admissionDAO := dao.NewAdmissionDAO(db)
	repo := repository.NewAdmissionRepository(admissionDAO)
	svc := service.NewAdmissionService(repo)
	handler := v1.NewAdmissionHandler(svc, uSvc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(middleware.RequestLogger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	eventHandler *v1.EventHandler,
	attendanceHandler *v1.AttendanceHandler,
	categoryHandler *v1.CategoryHandler,
	placeHandler *v1.PlaceHandler,
	reviewHandler *v1.ReviewHandler,
	admissionHandler *v1.AdmissionHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	authed := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authed.GET("/users/me", userHandler.HandleGetMe)
		authed.GET("/users", userHandler.HandleSearchUsers)
		authed.PUT("/users/:userID/role", userHandler.HandleUpdateRole)

		authed.GET("/events", eventHandler.HandleListEvents)
		authed.POST("/events", eventHandler.HandleCreateEvent)
		authed.GET("/events/:eventID", eventHandler.HandleGetEvent)
		authed.PUT("/events/:eventID", eventHandler.HandleEditEvent)
		authed.POST("/events/:eventID/approve", eventHandler.HandleApproveEvent)

		authed.POST("/events/:eventID/attend", attendanceHandler.HandleAttend)
		authed.DELETE("/events/:eventID/attend", attendanceHandler.HandleCancelAttendance)
		authed.GET("/events/:eventID/attendees", attendanceHandler.HandleListAttendees)
		authed.POST("/events/:eventID/requests/:userID/approve", attendanceHandler.HandleApproveRequest)
		authed.DELETE("/events/:eventID/requests/:userID", attendanceHandler.HandleRejectRequest)

		authed.GET("/events/:eventID/reviews", reviewHandler.HandleListReviews)
		authed.POST("/events/:eventID/reviews", reviewHandler.HandleCreateReview)
		authed.DELETE("/reviews/:reviewID", reviewHandler.HandleDeleteReview)

		authed.GET("/categories", categoryHandler.HandleListCategoryChoices)
		authed.POST("/categories", categoryHandler.HandleProposeCategory)
		authed.POST("/categories/:categoryID/approve", categoryHandler.HandleApproveCategory)

		authed.GET("/places", placeHandler.HandleListPlaces)
		authed.POST("/places", placeHandler.HandleProposePlace)
		authed.POST("/places/:placeID/approve", placeHandler.HandleApprovePlace)

		authed.GET("/admissions", admissionHandler.HandleListAdmissions)
		authed.POST("/admissions", admissionHandler.HandleCreateAdmission)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Eventure API"
	docs.SwaggerInfo.Description = "Community event platform API."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
