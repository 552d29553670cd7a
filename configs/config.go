package config

import "os"

type CDN struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	PublicURL  string
}

type Config struct {
	PostgresURI    string
	MigrationsPath string
	RedisURI       string
	StorageBackend string
	FileStorePath  string
	FrontendURL    string
	CDN            CDN
	SecretKey      string
	CookieName     string
	ListenAddr     string
}

func LoadConfig() *Config {
	return &Config{
		PostgresURI:    getEnv("POSTGRES_URI", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "file://migrations"),
		RedisURI:       getEnv("REDIS_URI", "localhost:6379"),
		StorageBackend: getEnv("STORAGE_BACKEND", "postgres"),
		FileStorePath:  getEnv("FILE_STORE_PATH", "data/store.json"),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:5173"),
		CDN: CDN{
			AccountID:  getEnv("CDN_ACCOUNT_ID", ""),
			AccessKey:  getEnv("CDN_ACCESS_KEY", ""),
			SecretKey:  getEnv("CDN_SECRET_KEY", ""),
			BucketName: getEnv("CDN_BUCKET_NAME", ""),
			PublicURL:  getEnv("CDN_PUBLIC_URL", ""),
		},
		SecretKey:  getEnv("SECRET_KEY", ""),
		CookieName: getEnv("COOKIE_NAME", "streampanel_session"),
		ListenAddr: getEnv("LISTEN_ADDR", ":3000"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
