package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/VitalCareServices/clinic-scheduler/internal/audit"
	"github.com/VitalCareServices/clinic-scheduler/internal/auth"
	"github.com/VitalCareServices/clinic-scheduler/internal/authz"
	"github.com/VitalCareServices/clinic-scheduler/internal/config"
	"github.com/VitalCareServices/clinic-scheduler/internal/handlers"
	infraRepo "github.com/VitalCareServices/clinic-scheduler/internal/infra/repository"
	"github.com/VitalCareServices/clinic-scheduler/internal/middleware"
	"github.com/VitalCareServices/clinic-scheduler/internal/slotlock"
	"github.com/VitalCareServices/clinic-scheduler/internal/storage"
	ucAppointment "github.com/VitalCareServices/clinic-scheduler/internal/usecase/appointment"
	ucAuth "github.com/VitalCareServices/clinic-scheduler/internal/usecase/auth"
	ucVisit "github.com/VitalCareServices/clinic-scheduler/internal/usecase/visit"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	userRepo := infraRepo.NewUserGormRepository(db)

	codec := auth.NewTokenCodec(
		cfg.AccessSecret,
		cfg.RefreshSecret,
		cfg.AccessTTL,
		cfg.RefreshTTL,
	)

	var locker slotlock.Locker
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		locker = slotlock.NewRedisLocker(client)
		log.Printf("slot locking via redis at %s", cfg.RedisAddr)
	} else {
		locker = slotlock.NewLocalLocker()
		log.Println("slot locking in-process (single node)")
	}

	attachmentStore := storage.NewAttachmentStore(cfg)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES
	// ======================================================
	registerUC := ucAuth.NewRegisterUser(userRepo, auditDispatcher)
	loginUC := ucAuth.NewLogin(userRepo, codec, auditDispatcher)
	refreshUC := ucAuth.NewRefresh(userRepo, codec)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		locker,
		auditDispatcher,
	)

	updateAppointmentUC := ucAppointment.NewUpdateAppointment(
		appointmentRepo,
		locker,
		auditDispatcher,
	)

	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo)

	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	completeVisitUC := ucVisit.NewCompleteVisit(appointmentRepo, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(registerUC, loginUC, refreshUC)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateAppointmentUC,
		listAppointmentsUC,
		deleteAppointmentUC,
	)

	patientHandler := handlers.NewPatientHandler(db)
	recordHandler := handlers.NewMedicalRecordHandler(db, completeVisitUC, auditDispatcher)
	attachmentHandler := handlers.NewAttachmentHandler(db, attachmentStore)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/refresh", authHandler.Refresh)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(codec))
		{
			secured.GET("/auth/me", authHandler.Me)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			appointments := secured.Group("/appointments")
			{
				appointments.POST("",
					middleware.Require(authz.AppointmentCreate),
					appointmentHandler.Create)

				appointments.GET("",
					middleware.Require(authz.AppointmentListAll),
					appointmentHandler.ListAll)

				appointments.GET("/doctor/me",
					middleware.Require(authz.AppointmentListDoctor),
					appointmentHandler.ListForDoctor)

				appointments.GET("/patient/me",
					middleware.Require(authz.AppointmentListMine),
					appointmentHandler.ListMine)

				appointments.GET("/:id",
					middleware.Require(authz.AppointmentGet),
					appointmentHandler.Get)

				appointments.PUT("/:id",
					middleware.Require(authz.AppointmentUpdate),
					appointmentHandler.Update)

				appointments.DELETE("/:id",
					middleware.Require(authz.AppointmentDelete),
					appointmentHandler.Delete)
			}

			// ------------------------------
			// PATIENTS
			// ------------------------------
			patients := secured.Group("/patients")
			{
				patients.POST("",
					middleware.Require(authz.PatientCreate),
					patientHandler.Create)

				patients.GET("",
					middleware.Require(authz.PatientList),
					patientHandler.List)

				patients.POST("/me",
					middleware.Require(authz.PatientSelfProfile),
					patientHandler.CreateMyProfile)

				patients.GET("/me",
					middleware.Require(authz.PatientSelfProfile),
					patientHandler.GetMyProfile)

				patients.PUT("/me",
					middleware.Require(authz.PatientSelfProfile),
					patientHandler.UpdateMyProfile)

				patients.GET("/:id",
					middleware.Require(authz.PatientGet),
					patientHandler.Get)

				patients.PUT("/:id",
					middleware.Require(authz.PatientUpdate),
					patientHandler.Update)

				patients.DELETE("/:id",
					middleware.Require(authz.PatientDelete),
					patientHandler.Delete)
			}

			// ------------------------------
			// MEDICAL RECORDS
			// ------------------------------
			records := secured.Group("/medical-records")
			{
				records.POST("",
					middleware.Require(authz.RecordCreate),
					recordHandler.Create)

				records.POST("/from-appointment/:appointmentId",
					middleware.Require(authz.VisitComplete),
					recordHandler.CompleteFromAppointment)

				records.GET("",
					middleware.Require(authz.RecordListAll),
					recordHandler.ListAll)

				records.GET("/patient/:patientId",
					middleware.Require(authz.RecordListByPatient),
					recordHandler.ListByPatient)

				records.GET("/my",
					middleware.Require(authz.RecordListOwn),
					recordHandler.ListOwn)

				records.GET("/me",
					middleware.Require(authz.RecordListMine),
					recordHandler.ListMine)

				records.PUT("/:id",
					middleware.Require(authz.RecordUpdate),
					recordHandler.Update)

				records.DELETE("/:id",
					middleware.Require(authz.RecordDelete),
					recordHandler.Delete)

				records.POST("/:id/attachments",
					middleware.Require(authz.RecordAttach),
					attachmentHandler.Upload)

				records.GET("/:id/attachments",
					middleware.Require(authz.RecordListByPatient),
					attachmentHandler.List)
			}

			// ------------------------------
			// AUDIT
			// ------------------------------
			secured.GET("/audit-logs",
				middleware.Require(authz.AuditList),
				auditLogsHandler.List)
		}
	}
}
