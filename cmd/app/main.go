package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"pharmadelivery/cmd"
	httpadapter "pharmadelivery/internal/adapters/in/http"
	"pharmadelivery/internal/adapters/out/dispatchhttp"
	"pharmadelivery/internal/adapters/out/postgres/deliveryrepo"
	"pharmadelivery/internal/adapters/out/postgres/partnerrepo"
	"pharmadelivery/internal/adapters/out/postgres/routerepo"
	"pharmadelivery/internal/adapters/out/postgres/trackingrepo"
	"pharmadelivery/internal/adapters/out/s3blob"
	"pharmadelivery/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	ctx := context.Background()

	db := mustConnectDB(configs)

	blobStore, err := s3blob.NewS3BlobStore(ctx, s3blob.Config{
		Region:          configs.S3Region,
		Bucket:          configs.S3Bucket,
		AccessKeyID:     configs.S3AccessKeyID,
		SecretAccessKey: configs.S3SecretAccessKey,
		Endpoint:        configs.S3Endpoint,
	})
	if err != nil {
		log.Fatalf("Failed to create blob store: %v", err)
	}

	dispatchProvider, err := dispatchhttp.NewHTTPDispatchProvider(
		configs.DispatchProviderURL, configs.DispatchProviderAPIKey)
	if err != nil {
		log.Fatalf("Failed to create dispatch provider: %v", err)
	}

	root, err := cmd.NewCompositionRoot(configs, db, blobStore, dispatchProvider)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	jobManager := jobs.NewJobManager(root.CreateDispatchPendingCommandHandler(), logger)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Fatalf("Error loading .env file")
	}

	return cmd.Config{
		HTTPPort:   os.Getenv("HTTP_PORT"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  os.Getenv("DB_SSLMODE"),

		S3Region:          os.Getenv("S3_REGION"),
		S3Bucket:          os.Getenv("S3_BUCKET"),
		S3AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		S3SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		S3Endpoint:        os.Getenv("S3_ENDPOINT"),

		DispatchProviderURL:    os.Getenv("DISPATCH_PROVIDER_URL"),
		DispatchProviderAPIKey: os.Getenv("DISPATCH_PROVIDER_API_KEY"),
	}
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&deliveryrepo.DeliveryDTO{},
		&partnerrepo.PartnerDTO{},
		&routerepo.RouteDTO{},
		&trackingrepo.TrackingEventDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	server := httpadapter.NewServer(
		root.CreateCreateDeliveryCommandHandler(),
		root.CreateAssignPartnerCommandHandler(),
		root.CreateUpdateStatusCommandHandler(),
		root.CreateSubmitProofCommandHandler(),
		root.CreateOptimizeRouteCommandHandler(),
		root.CreateRegisterPartnerCommandHandler(),
		root.CreateUpdatePartnerLocationCommandHandler(),
		root.CreateSetPartnerActiveCommandHandler(),
		root.CreateGetTrackingQueryHandler(),
		root.CreateListAvailablePartnersQueryHandler(),
		root.CreateListPartnerDeliveriesQueryHandler(),
		root.CreateListCustomerDeliveriesQueryHandler(),
	)

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
