package routes

import (
	"github.com/Job-Wilhelm/course-booking/internal/config"
	"github.com/Job-Wilhelm/course-booking/internal/handlers"
	"github.com/Job-Wilhelm/course-booking/internal/middleware"
	"github.com/Job-Wilhelm/course-booking/internal/models"
	"github.com/Job-Wilhelm/course-booking/internal/repository"
	"github.com/Job-Wilhelm/course-booking/internal/services"
	seatws "github.com/Job-Wilhelm/course-booking/internal/websocket"
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) error {
	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	creditRepo := repository.NewCreditRepository(db)
	skillRepo := repository.NewSkillRepository(db)
	coachProfileRepo := repository.NewCoachProfileRepository(db)

	seatHub := seatws.NewHub()
	go seatHub.Run()

	ledger := services.NewPgLedger(db)
	bookingService := services.NewBookingService(ledger, seatHub)
	userService := services.NewUserService(userRepo, creditRepo, bookingRepo, cfg.JWTSecret, cfg.JWTTTL)
	creditService := services.NewCreditService(creditRepo)
	skillService := services.NewSkillService(skillRepo)
	coachService := services.NewCoachService(db, coachProfileRepo, courseRepo)
	revenueService := services.NewRevenueService(bookingRepo, creditRepo)

	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	courseHandler := handlers.NewCourseHandler(courseRepo, bookingService)
	creditPackageHandler := handlers.NewCreditPackageHandler(creditService)
	skillHandler := handlers.NewSkillHandler(skillService)
	coachHandler := handlers.NewCoachHandler(coachService)
	coachAdminHandler := handlers.NewCoachAdminHandler(coachService, revenueService)
	seatFeedHandler := handlers.NewSeatFeedHandler(ledger, seatHub)

	authRequired := middleware.AuthRequired(cfg.JWTSecret)
	coachRequired := middleware.RoleRequired(models.RoleCoach)

	api := app.Group("/api")

	users := api.Group("/users")
	users.Post("/signup", authHandler.Signup)
	users.Post("/login", authHandler.Login)
	users.Get("/profile", authRequired, userHandler.GetProfile)
	users.Put("/profile", authRequired, userHandler.UpdateProfile)
	users.Put("/password", authRequired, userHandler.ChangePassword)
	users.Get("/credit-package", authRequired, userHandler.ListPurchases)
	users.Get("/courses", authRequired, userHandler.ListCourseBookings)

	creditPackages := api.Group("/credit-package")
	creditPackages.Get("", creditPackageHandler.List)
	creditPackages.Post("", authRequired, creditPackageHandler.Create)
	creditPackages.Post("/:creditPackageId", authRequired, creditPackageHandler.Purchase)
	creditPackages.Delete("/:creditPackageId", authRequired, creditPackageHandler.Delete)

	skills := api.Group("/skills")
	skills.Get("", skillHandler.List)
	skills.Post("", authRequired, skillHandler.Create)
	skills.Delete("/:skillId", authRequired, skillHandler.Delete)

	courses := api.Group("/courses")
	courses.Get("", courseHandler.ListCourses)
	courses.Post("/:courseId", authRequired, courseHandler.BookCourse)
	courses.Delete("/:courseId", authRequired, courseHandler.CancelBooking)

	coaches := api.Group("/coaches")
	coaches.Get("", coachHandler.ListCoaches)
	coaches.Get("/revenue", authRequired, coachRequired, coachAdminHandler.Revenue)
	coaches.Get("/:coachId", coachHandler.GetCoach)
	coaches.Get("/:coachId/courses", coachHandler.ListCoachCourses)

	admin := api.Group("/admin/coaches", authRequired)
	admin.Get("", coachRequired, coachAdminHandler.GetProfile)
	admin.Put("", coachRequired, coachAdminHandler.UpdateProfile)
	admin.Get("/revenue", coachRequired, coachAdminHandler.Revenue)
	admin.Get("/courses", coachRequired, coachAdminHandler.ListCourses)
	admin.Post("/courses", coachRequired, coachAdminHandler.CreateCourse)
	admin.Get("/courses/:courseId", coachRequired, coachAdminHandler.GetCourse)
	admin.Put("/courses/:courseId", coachRequired, coachAdminHandler.UpdateCourse)
	admin.Post("/:userId", coachAdminHandler.Enroll)

	api.Get("/ws/courses/:courseId", seatFeedHandler.Upgrade, websocket.New(seatFeedHandler.HandleWebSocket))

	return registerDocsRoutes(app, cfg)
}
