package config

type APIConfig struct {
	BaseURL          string `yaml:"base_url"`
	AuthPathPrefix   string `yaml:"auth_path_prefix"`
	RefreshPath      string `yaml:"refresh_path"`
	RequestTimeout   string `yaml:"request_timeout"`
	UploadTimeout    string `yaml:"upload_timeout"`
	SerializeRefresh bool   `yaml:"serialize_refresh"`
}

type StorageConfig struct {
	// Backend выбирает хранилище учётных данных: memory, file, redis или postgres
	Backend  string `yaml:"backend"`
	Account  string `yaml:"account"`
	FilePath string `yaml:"file_path"`
	// Secret включает шифрование файла с токенами; пустая строка — без шифрования
	Secret string `yaml:"secret"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}
