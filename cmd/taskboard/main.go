package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"taskboard/internal/api/router"
	"taskboard/internal/pkg/config"
	"taskboard/internal/pkg/database"
	"taskboard/internal/pkg/logger"
	"taskboard/internal/pkg/metrics"
	"taskboard/internal/pkg/session"
	"taskboard/internal/repository"
)

// @title Taskboard API
// @version 1.0
// @description 多租户项目与任务管理 API
// @description 会话通过 HttpOnly cookie 下发

// @BasePath /

// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name session

var (
	configFile = flag.String("config", "", "配置文件路径 (例如: -config=configs/config.yaml)")
	version    = flag.Bool("version", false, "显示版本信息")
)

const (
	appVersion = "1.0.0"
	appName    = "taskboard"
)

func main() {
	// 解析命令行参数
	flag.Parse()

	// 显示版本信息
	if *version {
		fmt.Printf("%s version %s\n", appName, appVersion)
		os.Exit(0)
	}

	// init config logger
	var cfg *config.Config
	{
		// 优先级: 命令行参数 > 环境变量 > 默认路径
		configPath := getConfigPath()

		c, err := config.Load(configPath)
		if err != nil {
			fmt.Printf("加载配置失败: %v\n", err)
			fmt.Println("\n使用方式:")
			fmt.Println("  1. 命令行参数指定:")
			fmt.Println("     ./taskboard -config=configs/config.yaml")
			fmt.Println("  2. 环境变量指定:")
			fmt.Println("     export CONFIG_FILE=configs/config.yaml")
			fmt.Println("  会话密钥可通过 TASKBOARD_SESSION_SECRET 设置")
			os.Exit(1)
		}
		cfg = c

		// 初始化日志
		if err := logger.Init(&cfg.Log); err != nil {
			fmt.Printf("初始化日志失败: %v\n", err)
			os.Exit(1)
		}
		logger.Info(fmt.Sprintf("Load config file: %s of %s", configPath, getConfigSource()))

		defer func() {
			_ = logger.Close()
		}()
	}

	logger.Info(fmt.Sprintf("服务 %s 启动中...", appName), zap.String("version", appVersion))

	// 初始化数据库
	db, err := database.Open(&cfg.Database)
	if err != nil {
		logger.Fatal("初始化数据库失败", zap.Error(err))
	}
	defer func() {
		_ = database.Close(db)
	}()
	logger.Info("数据库连接成功", zap.String("driver", cfg.Database.Driver))

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Fatal("数据库迁移失败", zap.Error(err))
		}
	}

	// 会话吊销表(可选)
	var registry session.Registry
	if cfg.Redis.Enabled {
		redisRegistry, err := session.NewRedisRegistry(context.Background(), cfg.Redis.URL)
		if err != nil {
			logger.Fatal("连接 Redis 失败", zap.Error(err))
		}
		defer func() {
			_ = redisRegistry.Close()
		}()
		registry = redisRegistry
		logger.Info("会话吊销表已启用")
	}
	sessions := session.NewManager(cfg.Session.Secret, cfg.Session.TTL(), registry)

	// 任务统计在抓取 /metrics 时实时查询
	prometheus.MustRegister(metrics.NewTaskCollector(repository.NewTaskRepository(db)))

	// 设置路由
	r := router.Setup(cfg, db, sessions)

	// 创建HTTP服务器
	addr := cfg.Server.Addr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 启动服务器
	go func() {
		logger.Info(fmt.Sprintf("%s 服务启动成功", cfg.Server.Name),
			zap.String("address", addr),
			zap.String("mode", cfg.Server.Mode),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("服务器启动失败", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("服务正在关闭...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	logger.Info("服务已关闭")
}

// getConfigPath 获取配置文件路径
// 优先级: 命令行参数 > 环境变量 > 默认路径(空串, 由 config 包查找)
func getConfigPath() string {
	if *configFile != "" {
		return *configFile
	}
	if envConfig := os.Getenv("CONFIG_FILE"); envConfig != "" {
		return envConfig
	}
	return ""
}

// getConfigSource 获取配置来源说明
func getConfigSource() string {
	if *configFile != "" {
		return "命令行参数"
	}
	if os.Getenv("CONFIG_FILE") != "" {
		return "环境变量"
	}
	return "默认配置"
}
