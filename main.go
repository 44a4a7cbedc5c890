package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

var (
	config       *Config
	refDate      time.Time
	patientStore PatientStore
)

func init() {
	var err error

	// Extract necessary environment variables
	appVersion = os.Getenv("APP_VERSION")

	// Read service configuration
	config, err = readConfig()
	if err != nil {
		log.Fatal(err)
	}

	// Resolve the injected reference date once at startup
	refDate, err = config.referenceTime()
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	// Connect the persistence collaborator
	patientStore = NewRedisPatientStore(newRedisClient(config.Redis), config.PatientsKey)

	// Create new Echo object
	e := echo.New()

	// Add basic middleware to log all requests
	e.Use(middleware.Logger())

	// Configure elastic apm logging
	initAPM(e)

	// Sets CORS headers to allow all origins, but restrict HTTP method type
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
	}))

	// Middleware to provide more control over response status for APM transactions
	// This must go after the Elastic APM middleware
	e.Use(filterError)

	// Adds a heartbeat handler
	e.GET("/heartbeat", heartbeat)

	// Credential gate issuing session tokens
	e.POST("/login", login)

	// Creates API group to simplify middleware declaration
	patientGroup := e.Group("/patients", requireToken)

	// Composed, filtered, sorted patient view
	patientGroup.GET("", listPatients)

	// Collection mutations; each one re-saves the whole collection
	patientGroup.POST("", createPatient)
	patientGroup.POST("/:id/checkin", checkInPatient)
	patientGroup.POST("/:id/undo", undoCheckIn)
	patientGroup.DELETE("/:id", deletePatient)

	// Spreadsheet/CSV import
	patientGroup.POST("/import", importPatients)

	// Start server
	e.Logger.Fatal(e.Start(":8000"))
}
