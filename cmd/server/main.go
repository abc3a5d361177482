// Package main 是应用程序的入口点。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"book-admin-go/internal/auth"
	appcache "book-admin-go/internal/cache"
	"book-admin-go/internal/config"
	"book-admin-go/internal/handler"
	"book-admin-go/internal/middleware"
	"book-admin-go/internal/model"
	"book-admin-go/internal/repository"
	"book-admin-go/internal/service"
	"book-admin-go/pkg/authority"
	"book-admin-go/pkg/cache"
	"book-admin-go/pkg/database"
	"book-admin-go/pkg/log"
	"book-admin-go/pkg/response"
	"book-admin-go/pkg/token"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 初始化配置
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync()
	log.Info("日志记录器初始化成功")

	// 3. 初始化数据库和 Redis
	database.InitMySQL(cfg.Database.MySQL.DSN)
	database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
	if err := database.DB.AutoMigrate(&model.User{}, &model.Book{}, &model.Label{}, &model.BookLabel{}); err != nil {
		log.Fatal("数据库迁移失败", err)
	}

	// 4. 初始化 Repository 和通用资源存储
	userRepo := repository.NewUserRepository(database.DB)
	bookRepo := repository.NewBookRepository(database.DB)

	bookStore := repository.NewResourceStore[model.Book](database.DB,
		repository.WithScope[model.Book](model.ActiveScope),
	)
	labelStore := repository.NewResourceStore[model.Label](database.DB,
		repository.WithScope[model.Label](model.ActiveScope),
		// 已被使用的标签不允许删除
		repository.WithDeleteScope[model.Label](model.LabelDeletableScope),
	)
	relationStore := repository.NewResourceStore[model.BookLabel](database.DB)

	// 5. 初始化缓存映射（显式注入，错误只记日志不外抛）
	cacheStore := cache.Logged(cache.NewRedisStore(database.RDB))
	labelMap := appcache.NewLabelMap(cacheStore, func() ([]model.Label, error) {
		return labelStore.Filter(nil)
	})

	// 6. 初始化 Service (依赖注入)
	jwtManager := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpireHours, cfg.JWT.RefreshTokenExpireDays)
	authorityClient := authority.NewClient(cfg.Authority.BaseURL,
		time.Duration(cfg.Authority.TimeoutSeconds)*time.Second, cfg.Authority.Retry)

	bookResource := service.NewResource[model.Book](bookStore, service.ResourceConfig{
		Resource:            "书籍",
		QueryField:          []string{"id", "name", "writer", "kind", "publishing", "publication_date"},
		CreateField:         []string{"name", "writer", "kind", "link", "publishing", "publication_date"},
		UpdateField:         []string{"id", "name", "writer", "kind", "link", "publishing", "publication_date"},
		CreateRequiredField: []string{"name", "kind", "publishing"},
	})
	labelResource := service.NewResource[model.Label](labelStore, service.ResourceConfig{
		Resource:            "标签",
		QueryField:          []string{"id", "name"},
		CreateField:         []string{"name", "description"},
		UpdateField:         []string{"id", "name", "description"},
		CreateRequiredField: []string{"name"},
	}, service.WithWriteHook[model.Label](func() {
		labelMap.Invalidate(context.Background())
	}))
	relationResource := service.NewResource[model.BookLabel](relationStore, service.ResourceConfig{
		Resource:            "书籍标签关系",
		CreateField:         []string{"book_id", "label_id"},
		CreateRequiredField: []string{"book_id", "label_id"},
	})

	userService := service.NewUserService(userRepo, authorityClient, jwtManager)
	bookService := service.NewBookService(bookResource, relationStore, labelMap)
	labelService := service.NewLabelService(labelResource, relationStore, bookRepo)

	// 7. 确保内置系统账号存在（幂等）
	if err := userService.EnsureSystemAccounts(cfg.Account.AdminPassword, cfg.Account.APIPassword); err != nil {
		log.Fatal("初始化内置账号失败", err)
	}

	// 8. 组装认证链：api-key -> 第三方 token -> bearer JWT，先匹配者生效
	chain := auth.NewChain(
		auth.NewAPIKeyChecker(userRepo),
		auth.NewThirdPartyChecker(userRepo, authorityClient),
		auth.NewJWTChecker(jwtManager, userRepo),
	)

	// 9. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery(), middleware.AuthChain(chain))

	// 10. 注册路由
	r.GET("/", func(c *gin.Context) {
		response.JSON(c, response.CodeOK, "this is Books app home.", nil)
	})

	authGroup := r.Group("/auth")
	{
		authHandler := handler.NewAuthHandler(userService)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refreshToken", authHandler.RefreshToken)
		authGroup.POST("/logout", authHandler.Logout)
	}

	bookHandler := handler.NewBookHandler(handler.NewResourceHandler(bookResource), bookService)
	book := r.Group("/book", middleware.LoginRequired())
	{
		book.GET("/menu_option/", bookHandler.MenuOption)
		book.POST("/query_attach_label/", bookHandler.QueryAttachLabel)
		book.POST("/post_query/", bookHandler.PostQuery)
		book.GET("/", bookHandler.GetQuery)
		book.POST("/", bookHandler.Create)
		book.PUT("/", bookHandler.Update)
		book.DELETE("/", bookHandler.Delete)
	}

	labelHandler := handler.NewLabelHandler(handler.NewResourceHandler(labelResource), labelService)
	label := r.Group("/label", middleware.LoginRequired())
	{
		label.POST("/query_attach_book/", labelHandler.QueryAttachBook)
		label.POST("/post_query/", labelHandler.PostQuery)
		label.GET("/", labelHandler.GetQuery)
		label.POST("/", labelHandler.Create)
		label.PUT("/", labelHandler.Update)
		label.DELETE("/", labelHandler.Delete)
	}

	relationHandler := handler.NewResourceHandler(relationResource)
	related := r.Group("/related", middleware.LoginRequired())
	{
		related.POST("/", relationHandler.Create)
		related.DELETE("/", relationHandler.AbsDelete)
	}

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}
	log.Info("服务已优雅关闭")
}
