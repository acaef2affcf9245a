package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/config"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/api/handler"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/api/middleware"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/model"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/jwt"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/redis"
)

// Version reported by the root endpoint.
const Version = "1.1.0"

// Setup builds the gin engine. rdb may be nil.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── infrastructure ──
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "University Management API",
			"version": Version,
			"health":  "/health",
		})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": cfg.Server.ServiceName})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	auth := middleware.JWTAuth(jwtMgr, rdb, logger)
	staff := middleware.RoleAuth(model.RoleAdmin, model.RoleDepartmentHead)
	teaching := middleware.RoleAuth(model.RoleAdmin, model.RoleDepartmentHead, model.RoleTeacher)

	// ── auth ──
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", middleware.RateLimit(rdb, cfg.Auth.LoginRateLimit, cfg.Auth.LoginWindow), h.Auth.Login)
		authGroup.POST("/verify", h.Auth.Verify)
		authGroup.GET("/me", auth, h.Auth.Me)
		authGroup.POST("/logout", auth, h.Auth.Logout)
	}

	// ── users ──
	users := api.Group("/users")
	{
		users.GET("", h.User.ListUsers)
		users.GET("/:id", h.User.GetUser)
		users.POST("", auth, staff, h.User.CreateUser)
	}

	// ── departments and academic structure ──
	departments := api.Group("/departments")
	{
		departments.GET("", h.Department.ListDepartments)
		departments.GET("/:id", h.Department.GetDepartment)
		departments.GET("/:id/students", h.Department.ListStudents)
		departments.POST("", auth, staff, h.Department.CreateDepartment)
		departments.PUT("/:id", auth, staff, h.Department.UpdateDepartment)
		departments.DELETE("/:id", auth, staff, h.Department.DeleteDepartment)
	}

	specialties := api.Group("/specialties")
	{
		specialties.GET("", h.Academic.ListSpecialties)
		specialties.GET("/:id", h.Academic.GetSpecialty)
		specialties.POST("", auth, staff, h.Academic.CreateSpecialty)
		specialties.PUT("/:id", auth, staff, h.Academic.UpdateSpecialty)
		specialties.DELETE("/:id", auth, staff, h.Academic.DeleteSpecialty)
	}

	levels := api.Group("/levels")
	{
		levels.GET("", h.Academic.ListLevels)
		levels.GET("/:id", h.Academic.GetLevel)
		levels.POST("", auth, staff, h.Academic.CreateLevel)
		levels.DELETE("/:id", auth, staff, h.Academic.DeleteLevel)
	}

	groups := api.Group("/groups")
	{
		groups.GET("", h.Academic.ListGroups)
		groups.GET("/:id", h.Academic.GetGroup)
		groups.GET("/:id/timetable.ics", h.Timetable.GroupCalendar)
		groups.POST("", auth, staff, h.Academic.CreateGroup)
		groups.PUT("/:id", auth, staff, h.Academic.UpdateGroup)
		groups.DELETE("/:id", auth, staff, h.Academic.DeleteGroup)
	}

	// ── people ──
	students := api.Group("/students")
	{
		students.GET("", h.People.ListStudents)
		students.GET("/:id", h.People.GetStudent)
		students.POST("", auth, staff, h.People.CreateStudent)
		students.PUT("/:id", auth, staff, h.People.UpdateStudent)
		students.DELETE("/:id", auth, staff, h.People.DeleteStudent)
	}

	teachers := api.Group("/teachers")
	{
		teachers.GET("", h.People.ListTeachers)
		teachers.GET("/:id", h.People.GetTeacher)
		teachers.GET("/:id/timetable.ics", h.Timetable.TeacherCalendar)
		teachers.POST("", auth, staff, h.People.CreateTeacher)
		teachers.PUT("/:id", auth, staff, h.People.UpdateTeacher)
		teachers.DELETE("/:id", auth, staff, h.People.DeleteTeacher)
	}

	// ── subjects and rooms ──
	subjects := api.Group("/subjects")
	{
		subjects.GET("", h.Timetable.ListSubjects)
		subjects.GET("/:id", h.Timetable.GetSubject)
		subjects.POST("", auth, staff, h.Timetable.CreateSubject)
		subjects.PUT("/:id", auth, staff, h.Timetable.UpdateSubject)
		subjects.DELETE("/:id", auth, staff, h.Timetable.DeleteSubject)
	}

	rooms := api.Group("/rooms")
	{
		rooms.GET("/availability", h.Room.Availability)
		rooms.GET("/availability/export", h.Export.ExportAvailability)
		rooms.GET("", h.Room.ListRooms)
		rooms.GET("/:id", h.Room.GetRoom)
		rooms.POST("", auth, staff, h.Room.CreateRoom)
		rooms.PUT("/:id", auth, staff, h.Room.UpdateRoom)
		rooms.DELETE("/:id", auth, staff, h.Room.DeleteRoom)
	}

	// ── timetable ──
	slots := api.Group("/timetable-slots")
	{
		slots.GET("", h.Timetable.ListSlots)
		slots.GET("/:id", h.Timetable.GetSlot)
		slots.POST("", auth, staff, h.Timetable.CreateSlot)
		slots.PUT("/:id", auth, staff, h.Timetable.UpdateSlot)
		slots.DELETE("/:id", auth, staff, h.Timetable.DeleteSlot)
	}

	sessions := api.Group("/sessions")
	{
		sessions.GET("", h.Timetable.ListSessions)
		sessions.GET("/:id", h.Timetable.GetSession)
		sessions.POST("", auth, teaching, h.Timetable.CreateSession)
		sessions.POST("/:id/transition", auth, teaching, h.Timetable.TransitionSession)
	}

	// ── academic records ──
	absences := api.Group("/absences")
	{
		absences.GET("", h.Record.ListAbsences)
		absences.GET("/:id", h.Record.GetAbsence)
		absences.POST("", auth, teaching, h.Record.CreateAbsence)
		absences.PUT("/:id", auth, teaching, h.Record.UpdateAbsence)
		absences.DELETE("/:id", auth, teaching, h.Record.DeleteAbsence)
	}

	grades := api.Group("/grades")
	{
		grades.GET("", h.Record.ListGrades)
		grades.GET("/:id", h.Record.GetGrade)
		grades.POST("", auth, teaching, h.Record.CreateGrade)
		grades.PUT("/:id", auth, teaching, h.Record.UpdateGrade)
		grades.DELETE("/:id", auth, teaching, h.Record.DeleteGrade)
	}

	events := api.Group("/events")
	{
		events.GET("", h.Event.ListEvents)
		events.GET("/:id", h.Event.GetEvent)
		events.POST("", auth, staff, h.Event.CreateEvent)
		events.PUT("/:id", auth, staff, h.Event.UpdateEvent)
		events.DELETE("/:id", auth, staff, h.Event.DeleteEvent)
	}

	// ── messaging (caller scoped) ──
	messages := api.Group("/messages", auth)
	{
		messages.POST("", h.Messaging.SendMessage)
		messages.GET("/inbox", h.Messaging.Inbox)
		messages.GET("/outbox", h.Messaging.Outbox)
		messages.GET("/:id", h.Messaging.GetMessage)
		messages.PATCH("/:id/read", h.Messaging.MarkMessageRead)
	}

	notifications := api.Group("/notifications", auth)
	{
		notifications.GET("", h.Messaging.ListNotifications)
		notifications.POST("", staff, h.Messaging.CreateNotification)
		notifications.PATCH("/:id/read", h.Messaging.MarkNotificationRead)
		notifications.POST("/read-all", h.Messaging.MarkAllNotificationsRead)
	}

	return r
}
