// cmd/seeder/main.go
package main

import (
	"context"
	"flag"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/unclebandit/adreport-backend/internal/config"
	"github.com/unclebandit/adreport-backend/internal/db"
	"github.com/unclebandit/adreport-backend/internal/logger"
	"github.com/unclebandit/adreport-backend/internal/model"
	"github.com/unclebandit/adreport-backend/internal/repository"
	"github.com/unclebandit/adreport-backend/internal/service"
)

func main() {
	demo := flag.Bool("demo", false, "also create a demo company with a developer account")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, ServiceName: cfg.ServiceName + "-seeder"})
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	conn, err := db.Open(ctx, db.Options{DSN: cfg.DB.DSN()}, log)
	if err != nil {
		log.Fatal("cannot connect", zap.Error(err))
	}
	defer conn.Close()

	if err := db.Migrate(ctx, conn, log); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	if *demo {
		if err := seedDemo(ctx, conn, log); err != nil {
			log.Fatal("demo seed failed", zap.Error(err))
		}
	}
	log.Info("database seeding completed successfully")
}

const demoEmail = "developer@example.com"

func seedDemo(ctx context.Context, conn *sqlx.DB, log *zap.Logger) error {
	companyRepo := &repository.CompanyRepository{DB: conn}
	userRepo := &repository.UserRepository{DB: conn}

	existing, err := userRepo.GetByEmail(ctx, demoEmail)
	if err != nil {
		return err
	}
	if existing != nil {
		log.Info("demo data already present", zap.Int64("uid", existing.UID))
		return nil
	}

	company, err := (&service.CompanyService{CompanyRepo: companyRepo}).Register(ctx, service.RegisterCompanyInput{Name: "Demo Company"})
	if err != nil {
		return err
	}

	users := &service.UserService{UserRepo: userRepo, CompanyRepo: companyRepo}
	u, err := users.Register(ctx, service.RegisterUserInput{
		CID:      company.CID,
		Email:    demoEmail,
		Username: "developer",
		Password: "developer123",
	})
	if err != nil {
		return err
	}
	if err := userRepo.SetRole(ctx, u.UID, model.RoleDeveloper); err != nil {
		return err
	}

	log.Info("demo data created", zap.Int64("cid", company.CID), zap.Int64("uid", u.UID), zap.String("email", u.Email))
	return nil
}
