// pkg/config/storage.go
package config

type StorageConfig struct {
	Mode      string // "local" or "s3"
	LocalDir  string
	AWSRegion string
	AWSBucket string
	// IndexDocument is served on GET /
	IndexDocument string
}

func loadStorageConfig() StorageConfig {
	return StorageConfig{
		Mode:          getEnv("STORAGE_MODE", "local"),
		LocalDir:      getEnv("STATIC_DIR", "./static"),
		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),
		AWSBucket:     getEnv("AWS_BUCKET", "council-static"),
		IndexDocument: getEnv("INDEX_DOCUMENT", "index.html"),
	}
}
