package app

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// 环境变量名
const (
	EnvScene   = "NEONBUBBLE_SCENE"
	EnvVerbose = "NEONBUBBLE_VERBOSE"
)

// ConfigFromEnv 读取 .env 文件与环境变量，返回默认启动配置
// files 为空时读取当前目录的 .env；文件不存在时忽略。已存在的环境变量不会被覆盖。
// 命令行参数在 main 中覆盖这些值。
func ConfigFromEnv(files ...string) Config {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[App] Warning: failed to load env file: %v", err)
	}

	cfg := Config{
		ScenePath: os.Getenv(EnvScene),
	}
	if raw := os.Getenv(EnvVerbose); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			log.Printf("[App] Warning: invalid %s=%q, ignored", EnvVerbose, raw)
		} else {
			cfg.Verbose = v
		}
	}
	return cfg
}
