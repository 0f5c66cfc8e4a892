package config

type ServerConfig struct {
	Addr      string `yaml:"addr" validate:"required"`
	PublicURL string `yaml:"public_url" validate:"required,url"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn" validate:"required"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" validate:"required"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" validate:"gte=0"`
}

// StorageConfig : выбор хранилища блобов, type = local | s3
type StorageConfig struct {
	Type      string      `yaml:"type" validate:"required,oneof=local s3"`
	Namespace string      `yaml:"namespace" validate:"required"`
	Local     LocalConfig `yaml:"local"`
	S3        S3Config    `yaml:"s3"`
}

type LocalConfig struct {
	Root string `yaml:"root"`
}

type S3Config struct {
	Bucket   string `yaml:"bucket"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
	Local    bool   `yaml:"local"`
}

type JWTConfig struct {
	SecretKey       string `yaml:"secret_key" validate:"required,min=16"`
	AccessTokenTTL  string `yaml:"access_token_ttl" validate:"required"`
	RefreshTokenTTL string `yaml:"refresh_token_ttl" validate:"required"`
}

// UploadsConfig : параметры генерации идентификаторов и блокировки пространства имён
type UploadsConfig struct {
	PublicIDLength   int `yaml:"public_id_length" validate:"gte=10,lte=32"`
	MaxNameAttempts  int `yaml:"max_name_attempts" validate:"gte=1"`
	LockTTLSeconds   int `yaml:"lock_ttl_seconds" validate:"gte=1"`
	LockWaitSeconds  int `yaml:"lock_wait_seconds" validate:"gte=1"`
	MaxUploadSizeMiB int `yaml:"max_upload_size_mib" validate:"gte=1"`
	// ограничения на каждый файл в запросе
	MaxFileSizeKiB    int      `yaml:"max_file_size_kib" validate:"gte=1"`
	AllowedExtensions []string `yaml:"allowed_extensions" validate:"dive,required"`
}

type TTL struct {
	FileCache int `yaml:"file_cache" validate:"gte=1"`
}
