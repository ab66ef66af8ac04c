package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"lastmile/cmd"
	"lastmile/internal/adapters/out/postgres/courierrepo"
	"lastmile/internal/adapters/out/postgres/deliveryrepo"
	"lastmile/internal/adapters/out/postgres/earningrepo"
	"lastmile/internal/adapters/out/postgres/zonerepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := openDatabase(configs)

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Failed to assemble application: %v", err)
	}

	jobManager := app.NewJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),

		RoutingBaseURL: os.Getenv("ROUTING_BASE_URL"),
		RoutingTimeout: durationVariable("ROUTING_TIMEOUT", 2*time.Second),

		DefaultBaseRate:         floatVariable("DEFAULT_BASE_RATE", 2000),
		DefaultPerKgRate:        floatVariable("DEFAULT_PER_KG_RATE", 200),
		DefaultPerKmRate:        floatVariable("DEFAULT_PER_KM_RATE", 100),
		DefaultIncludedWeightKg: floatVariable("DEFAULT_INCLUDED_WEIGHT_KG", 5),

		PickupProximityKm:  floatVariable("PICKUP_PROXIMITY_KM", 0.5),
		AutoAssignSchedule: stringVariable("AUTO_ASSIGN_SCHEDULE", "*/5 * * * * *"),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func stringVariable(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func floatVariable(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Fatalf("Invalid value for %s: %v", key, err)
	}
	return value
}

func durationVariable(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Invalid value for %s: %v", key, err)
	}
	return value
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&deliveryrepo.DeliveryDTO{},
		&courierrepo.CourierDTO{},
		&zonerepo.ZoneDTO{},
		&zonerepo.TariffDTO{},
		&earningrepo.EarningDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	app.NewHTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
