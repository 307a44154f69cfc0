package main

import (
	"fmt"
	"log/slog"
	stdhttp "net/http"
	"os"
	"time"

	"bookstore/cmd"
	"bookstore/internal/adapters/in/http"
	"bookstore/internal/adapters/out/postgres/orderrepo"
	"bookstore/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	var gormDB *gorm.DB
	if configs.StorageBackend == cmd.StorageBackendPostgres {
		gormDB = connectDatabase(configs)
	}

	app := cmd.NewCompositionRoot(configs, gormDB)

	jobManager := jobs.NewJobManager(
		app.CreateCancelStaleOrdersCommandHandler(),
		configs.StaleOrderMaxAge,
		slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:         goDotEnvVariable("HTTP_PORT"),
		StorageBackend:   storageBackend(),
		DBHost:           goDotEnvVariable("DB_HOST"),
		DBPort:           goDotEnvVariable("DB_PORT"),
		DBUser:           goDotEnvVariable("DB_USER"),
		DBPassword:       goDotEnvVariable("DB_PASSWORD"),
		DBName:           goDotEnvVariable("DB_NAME"),
		DBSslMode:        goDotEnvVariable("DB_SSLMODE"),
		StaleOrderMaxAge: staleOrderMaxAge(),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

// storageBackend reads STORAGE_BACKEND, defaulting to postgres when the
// variable is empty.
func storageBackend() string {
	backend := goDotEnvVariable("STORAGE_BACKEND")
	switch backend {
	case "":
		return cmd.StorageBackendPostgres
	case cmd.StorageBackendPostgres, cmd.StorageBackendMemory:
		return backend
	default:
		log.Fatalf("Invalid STORAGE_BACKEND %q: must be %q or %q",
			backend, cmd.StorageBackendPostgres, cmd.StorageBackendMemory)
		return ""
	}
}

// staleOrderMaxAge reads STALE_ORDER_MAX_AGE as a Go duration, defaulting to
// 24 hours when the variable is empty.
func staleOrderMaxAge() time.Duration {
	raw := goDotEnvVariable("STALE_ORDER_MAX_AGE")
	if raw == "" {
		return 24 * time.Hour
	}

	maxAge, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Invalid STALE_ORDER_MAX_AGE %q: %v", raw, err)
	}
	return maxAge
}

func connectDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(stdhttp.StatusOK, "Healthy")
	})

	server := http.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateAddOrderLineCommandHandler(),
		app.CreateRemoveOrderLineCommandHandler(),
		app.CreateAddPaymentCommandHandler(),
		app.CreateApplyDiscountCommandHandler(),
		app.CreateChangeOrderStatusCommandHandler(),
		app.CreateCreateShipmentCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateGetCustomerOrdersQueryHandler(),
	)
	server.RegisterRoutes(e)
	if app.SupportsQueries() {
		server.RegisterQueryRoutes(e)
	} else {
		log.Warn("Query endpoints disabled: storage backend has no SQL read side")
	}

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
