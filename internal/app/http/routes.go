package routes

import (
	"vet-clinic-api/config"
	authapi "vet-clinic-api/internal/api/auth"
	patientsapi "vet-clinic-api/internal/api/patients"
	vetsapi "vet-clinic-api/internal/api/vets"
	"vet-clinic-api/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Register(r *gin.Engine, db *gorm.DB, cfg *config.Config, mail authapi.Mailer) {
	authHandler := authapi.NewHandler(db, cfg, mail)
	vetHandler := vetsapi.NewHandler(db)
	patientHandler := patientsapi.NewHandler(db)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeJSONInput())

	public.POST("/registro", authHandler.Register)
	public.GET("/confirmar/:token", authHandler.ConfirmEmail)
	public.POST("/login", authHandler.Login)
	public.POST("/recuperar-password", authHandler.RecoverPassword)
	public.GET("/recuperar-password/:token", authHandler.CheckRecoveryToken)
	public.POST("/nuevo-password/:token", authHandler.NewPassword)
	public.GET("/veterinarios", vetHandler.List)

	// Authenticated
	authed := r.Group("/")
	authed.Use(middleware.Auth(db, cfg))

	authed.GET("/perfil", vetHandler.Profile)
	authed.PUT("/veterinario/actualizarpassword", authHandler.ChangePassword)
	authed.GET("/veterinario/:id", vetHandler.Detail)
	authed.PUT("/veterinario/:id", vetHandler.Update)

	authed.GET("/pacientes", patientHandler.List)
	authed.GET("/paciente/:id", patientHandler.Detail)
	authed.POST("/paciente/registro", patientHandler.Create)
	authed.PUT("/paciente/actualizar/:id", patientHandler.Update)
	authed.DELETE("/paciente/eliminar/:id", patientHandler.Delete)
}
