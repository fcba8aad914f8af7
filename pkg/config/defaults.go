package config

import "time"

const (
	BackendMongo  = "mongo"
	BackendSQLite = "sqlite"
)

const (
	DefaultMongoDatabaseName = "travelbook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultStoreBackend = BackendMongo
	DefaultSQLitePath   = "travelbook.db"

	DefaultAPIPort = "4000"
	DefaultWebPort = "3000"
	DefaultAPIURL  = "http://localhost:4000/graphql"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)
