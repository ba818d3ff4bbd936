package cmd

// Config carries all runtime settings, loaded from the environment by cmd/app.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	S3Region          string
	S3Bucket          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Endpoint        string

	DispatchProviderURL    string
	DispatchProviderAPIKey string
}
