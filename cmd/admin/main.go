// 命令行创建管理员账号：
//
//	go run ./cmd/admin --email root@example.com --password secret
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"crud-api/internal/app"
	"crud-api/internal/core/config"
	"crud-api/internal/core/database"
	"crud-api/internal/domain"
	"crud-api/internal/repo"
	"crud-api/internal/service"
)

func main() {
	os.Exit(run())
}

func run() int {
	var email, password, first, last string
	pflag.StringVar(&email, "email", "", "admin email (required)")
	pflag.StringVar(&password, "password", "", "admin password (required)")
	pflag.StringVar(&first, "first", "", "first name")
	pflag.StringVar(&last, "last", "", "last name")
	pflag.Parse()

	if email == "" || password == "" {
		fmt.Fprintln(os.Stderr, "usage: admin --email <email> --password <password> [--first name] [--last name]")
		return 2
	}

	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := app.NewLogger(cfg)
	defer cleanup()

	db, err := app.OpenDB(cfg, log)
	if err != nil {
		log.Error("db open", zap.Error(err))
		return 1
	}
	defer database.Close(db)

	svc := service.NewAuthService(repo.NewUserRepo(db), app.NewJWTer(cfg), log)
	in := service.RegisterInput{Email: email, Password: password, Role: domain.RoleAdmin}
	if first != "" {
		in.FirstName = &first
	}
	if last != "" {
		in.LastName = &last
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	u, tok, err := svc.Register(ctx, in)
	if err != nil {
		log.Error("create admin FAILED", zap.String("email", email), zap.Error(err))
		return 1
	}
	log.Info("admin created", zap.String("id", u.ID), zap.String("email", u.Email))
	fmt.Println(tok)
	return 0
}
