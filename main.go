package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	api "github.com/rpupo63/bsd-portfolio/api"
	"github.com/rpupo63/bsd-portfolio/config"
	"github.com/rpupo63/bsd-portfolio/database"
	"github.com/rpupo63/bsd-portfolio/models"
	"github.com/rpupo63/bsd-portfolio/services"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if !config.LoadDotEnv() {
		fmt.Println("Warning: no .env file found, using process environment")
	}
	c := config.New()

	// Secrets can live in SSM Parameter Store instead of the environment
	if prefix := config.GetString(c, "SSM_PARAMETER_PATH", ""); prefix != "" {
		if err := overlaySSM(prefix, c); err != nil {
			fmt.Printf("Error loading parameters from SSM: %v\n", err)
			os.Exit(1)
		}
	}

	connStr, err := connectionString(c)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	// Reads go to the replica when one is configured; writes and transactions stay on the primary
	if replicaDSN := config.GetString(c, "DB_REPLICA_DSN", ""); replicaDSN != "" {
		err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.New(postgres.Config{
				DSN:                  replicaDSN,
				PreferSimpleProtocol: true,
			})},
			Policy: dbresolver.RandomPolicy{},
		}))
		if err != nil {
			fmt.Printf("Error registering read replica: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Read replica registered")
	}

	// Enable required PostgreSQL extensions
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"pgcrypto\"").Error; err != nil {
		fmt.Printf("Error enabling pgcrypto extension: %v\n", err)
		os.Exit(1)
	}

	// Test database connection
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		fmt.Printf("Error testing database connection: %v\n", err)
		os.Exit(1)
	}

	// If generating models, run generation and exit
	if config.GetBool(c, "GENERATE_MODELS", false) {
		fmt.Println("Generating models and query helpers...")
		if err := models.GenerateModels(db); err != nil {
			fmt.Printf("Error generating models: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// If generating column mismatch report, run report and exit
	if config.GetBool(c, "GENERATE_COLUMN_REPORT", false) {
		fmt.Println("Generating column mismatch report...")
		models.GenerateColumnMismatchReport(db)
		return
	}

	if err := models.Migrate(db); err != nil {
		fmt.Printf("Error migrating database: %v\n", err)
		os.Exit(1)
	}

	currentDB := database.New(db)

	var svc api.Services
	if config.GetString(c, "S3_BUCKET", "") != "" {
		store, err := services.NewMediaStore(context.Background(), c)
		if err != nil {
			fmt.Printf("Error configuring media storage: %v\n", err)
			os.Exit(1)
		}
		svc.Media = store
	} else {
		fmt.Println("S3_BUCKET not set, media uploads disabled")
	}
	svc.Mailer = services.NewMailer(c)

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB, c, svc)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// connectionString builds the Postgres DSN from DB_TYPE
func connectionString(c map[string]string) (string, error) {
	dbType := config.GetString(c, "DB_TYPE", "url")
	fmt.Printf("DB_TYPE: %s\n", dbType)

	switch dbType {
	case "supa":
		fmt.Println("Connecting to Supabase database...")
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
			config.GetString(c, "SUPABASE_DB_HOST", ""),
			config.GetString(c, "SUPABASE_DB_USER", ""),
			config.GetString(c, "SUPABASE_DB_PASSWORD", ""),
			config.GetString(c, "SUPABASE_DB_NAME", ""),
			config.GetString(c, "SUPABASE_DB_PORT", "5432"),
		), nil
	case "url":
		dsn := config.GetString(c, "DATABASE_URL", "")
		if dsn == "" {
			return "", fmt.Errorf("DATABASE_URL is required when DB_TYPE=url")
		}
		fmt.Println("Connecting to database from DATABASE_URL...")
		return dsn, nil
	default:
		return "", fmt.Errorf("unsupported DB_TYPE %q, expected supa or url", dbType)
	}
}

func overlaySSM(prefix string, c map[string]string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(config.GetString(c, "S3_REGION", "us-east-1")))
	if err != nil {
		return err
	}

	n, err := config.OverlaySSM(ctx, ssm.NewFromConfig(awsCfg), prefix, c)
	if err != nil {
		return err
	}
	fmt.Printf("Loaded %d parameters from SSM path %s\n", n, prefix)
	return nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
