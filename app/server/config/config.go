package config

type Config struct {
	System struct {
		IsProd                bool     // 是否为生产环境
		Listen                string   // 监听地址
		DBConnectionString    string   // Postgres 数据库的连接字符串
		RedisConnectionString string   // Redis 连接字符串，留空时限流计数只保存在进程内存中
		CORSOrigins           []string // 允许跨域的来源
		TrustedProxies        []string // 可信代理的 CIDR ，只有来自这些地址的请求才会读取 X-Forwarded-For
	}
	Security struct {
		JWTSecret     string // 签名密钥，用于签发 JWT ，更换后所有旧令牌失效
		AdminUsername string // 初始管理员用户名，只在账户表为空时使用
		AdminPassword string // 初始管理员密码
	}
	Media struct {
		Provider string // cloudinary 或 s3

		CloudinaryCloudName string
		CloudinaryAPIKey    string
		CloudinaryAPISecret string
		CloudinaryFolder    string // 上传目录

		S3Region    string
		S3AccessKey string
		S3SecretKey string
		S3Endpoint  string
		S3Bucket    string
		S3PublicURL string // 对外访问的基础地址，拼接 key 得到图片地址
	}
	Static struct {
		PublicDir string // 前台静态页面
		AdminDir  string // 管理后台静态页面
	}
}
