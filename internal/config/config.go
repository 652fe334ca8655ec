package config

import (
	"github.com/spf13/viper"
	"github.com/supermodularxyz/simplegrants-sub000/internal/logger"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Payment  PaymentConfig  `mapstructure:"payment"`
	Task     TaskConfig     `mapstructure:"task"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// PaymentConfig 链上转账配置
type PaymentConfig struct {
	RpcUrl     string  `mapstructure:"rpc_url"`      // RPC节点URL
	PrivateKey string  `mapstructure:"private_key"`  // 出款账户私钥
	ChainId    int64   `mapstructure:"chain_id"`     // 链ID
	EthUsdRate float64 `mapstructure:"eth_usd_rate"` // 1 ETH 对应的USD汇率
}

// TaskConfig 定时任务配置
type TaskConfig struct {
	Interval        int  `mapstructure:"interval"`         // 秒
	MarkPaidFirst   bool `mapstructure:"mark_paid_first"`  // 转账前先标记已支付（防止重复支付，失败的转账需人工对账）
	TransferTimeout int  `mapstructure:"transfer_timeout"` // 单笔转账超时（秒）
	PoolSize        int  `mapstructure:"pool_size"`        // 转账协程池大小
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, stderr, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

// GetLevel 实现 logger.LogConfig 接口
func (l LogConfig) GetLevel() string {
	return l.Level
}

// GetOutput 实现 logger.LogConfig 接口
func (l LogConfig) GetOutput() string {
	return l.Output
}

// GetFile 实现 logger.LogConfig 接口
func (l LogConfig) GetFile() string {
	return l.File
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/simplegrants")

	// 设置默认值
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "simplegrants")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("payment.chain_id", 1)
	viper.SetDefault("payment.eth_usd_rate", 2000.0)
	viper.SetDefault("task.interval", 3600)
	viper.SetDefault("task.mark_paid_first", true)
	viper.SetDefault("task.transfer_timeout", 30)
	viper.SetDefault("task.pool_size", 8)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 自动读取环境变量
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
