package conf

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	MongoDB MongoConfig
	JWT     JWTConfig
	Cron    CronConfig
}

type ServerConfig struct {
	Port string
}

type MongoConfig struct {
	URI      string
	Database string
}

type JWTConfig struct {
	Secret string
}

type CronConfig struct {
	// 每日評估的預設排程，可被資料庫內的設定覆蓋
	EvaluateSchedule string `mapstructure:"evaluate_schedule"`
}

func LoadConfig() (*Config, error) {
	viper.AddConfigPath("./config") // 設定檔路徑
	viper.SetConfigName("config")   // 檔名
	viper.SetConfigType("yaml")     // 格式

	viper.AutomaticEnv() // 允許讀取環境變數

	// 預設值
	viper.SetDefault("server.port", ":8080")
	viper.SetDefault("cron.evaluate_schedule", "0 6 * * *")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	log.Println("設定檔讀取成功")
	return &cfg, nil
}
