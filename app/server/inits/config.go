package inits

import (
	"college-portal/app/server/config"
	"college-portal/app/server/constants"
	"fmt"
	"os"
	"strings"
)

func Config() (*config.Config, error) {
	var cfg config.Config

	// 手动配置映射
	{
		mode, exist := os.LookupEnv("MODE")
		cfg.System.IsProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")
	}

	if listen, exist := os.LookupEnv("LISTEN"); !exist {
		cfg.System.Listen = ":5000" // 默认监听地址
	} else {
		cfg.System.Listen = listen
	}

	if dbconn, err := DBConnection(); err != nil {
		return nil, err
	} else {
		cfg.System.DBConnectionString = dbconn
	}

	// Redis 是可选的
	cfg.System.RedisConnectionString = os.Getenv("REDIS_CONN")

	if origins, exist := os.LookupEnv("CORS_ORIGINS"); !exist {
		cfg.System.CORSOrigins = []string{"*"}
	} else {
		cfg.System.CORSOrigins = splitList(origins)
	}

	cfg.System.TrustedProxies = splitList(os.Getenv("TRUSTED_PROXIES"))

	if secret, exist := os.LookupEnv("JWT_SECRET"); !exist || secret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	} else {
		cfg.Security.JWTSecret = secret
	}

	cfg.Security.AdminUsername = os.Getenv("ADMIN_USERNAME")
	cfg.Security.AdminPassword = os.Getenv("ADMIN_PASSWORD")

	// 媒体存储
	if provider, exist := os.LookupEnv("MEDIA_PROVIDER"); !exist {
		cfg.Media.Provider = constants.MediaProviderCloudinary
	} else {
		cfg.Media.Provider = strings.ToLower(provider)
	}

	switch cfg.Media.Provider {
	case constants.MediaProviderCloudinary:
		for env, target := range map[string]*string{
			"CLOUDINARY_CLOUD_NAME": &cfg.Media.CloudinaryCloudName,
			"CLOUDINARY_API_KEY":    &cfg.Media.CloudinaryAPIKey,
			"CLOUDINARY_API_SECRET": &cfg.Media.CloudinaryAPISecret,
		} {
			if value, exist := os.LookupEnv(env); !exist {
				return nil, fmt.Errorf("%s environment variable not set", env)
			} else {
				*target = value
			}
		}
		if folder, exist := os.LookupEnv("CLOUDINARY_FOLDER"); !exist {
			cfg.Media.CloudinaryFolder = constants.MediaDefaultFolder
		} else {
			cfg.Media.CloudinaryFolder = folder
		}
	case constants.MediaProviderS3:
		for env, target := range map[string]*string{
			"S3_REGION":     &cfg.Media.S3Region,
			"S3_ACCESS_KEY": &cfg.Media.S3AccessKey,
			"S3_SECRET_KEY": &cfg.Media.S3SecretKey,
			"S3_BUCKET":     &cfg.Media.S3Bucket,
			"S3_PUBLIC_URL": &cfg.Media.S3PublicURL,
		} {
			if value, exist := os.LookupEnv(env); !exist {
				return nil, fmt.Errorf("%s environment variable not set", env)
			} else {
				*target = value
			}
		}
		cfg.Media.S3Endpoint = os.Getenv("S3_ENDPOINT")
	default:
		return nil, fmt.Errorf("unknown MEDIA_PROVIDER: %s", cfg.Media.Provider)
	}

	cfg.Static.PublicDir = os.Getenv("PUBLIC_DIR")
	cfg.Static.AdminDir = os.Getenv("ADMIN_DIR")

	return &cfg, nil
}

// DBConnection 只读取数据库连接串，供不需要完整配置的命令使用
func DBConnection() (string, error) {
	dbconn, exist := os.LookupEnv("DB_CONN")
	if !exist {
		return "", fmt.Errorf("DB_CONN environment variable not set")
	}
	return dbconn, nil
}

func splitList(raw string) []string {
	var list []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
