// Command seed creates the bootstrap administrator and the demo rooms referenced
// by the default availability policy. Running it twice is harmless.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/config"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/dto"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/model"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/repository"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/service"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/database"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/password"
	applogger "github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	adminEmail := flag.String("admin-email", "admin@university.tn", "bootstrap admin email")
	adminCIN := flag.String("admin-cin", "00000000", "bootstrap admin CIN")
	adminPassword := flag.String("admin-password", "", "bootstrap admin password (defaults to the CIN)")
	skipRooms := flag.Bool("skip-rooms", false, "do not insert demo rooms")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := applogger.NewLogger(&cfg.Log, zap.String("service", "seed"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("get sql.DB failed", zap.Error(err))
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	repo := repository.NewRepository(db)
	users := service.NewUserService(repo, password.NewHasher(cfg.Auth.BcryptCost), logger)

	admin, err := users.Create(ctx, &dto.CreateUserRequest{
		Email:     *adminEmail,
		FirstName: "System",
		LastName:  "Administrator",
		Role:      model.RoleAdmin,
		CIN:       *adminCIN,
		Password:  *adminPassword,
	})
	switch {
	case err == nil:
		logger.Info("admin created", zap.Int("id", admin.ID), zap.String("email", admin.Email))
	case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrCINTaken):
		logger.Info("admin already present", zap.String("email", *adminEmail))
	default:
		logger.Fatal("create admin failed", zap.Error(err))
	}

	if *skipRooms {
		return
	}
	if err := repo.Room.CreateIfAbsent(ctx, demoRooms()); err != nil {
		logger.Fatal("seed rooms failed", zap.Error(err))
	}
	logger.Info("demo rooms seeded", zap.Int("count", len(demoRooms())))
}

func demoRooms() []model.Room {
	str := func(s string) *string { return &s }
	floor := func(n int) *int { return &n }
	return []model.Room{
		{Code: "A101", Name: str("Amphitheater A101"), Building: str("A"), Floor: floor(1), Capacity: 200, RoomType: str(model.RoomTypeAmphitheater), HasProjector: true, IsAvailable: true},
		{Code: "A102", Name: str("Classroom A102"), Building: str("A"), Floor: floor(1), Capacity: 40, RoomType: str(model.RoomTypeClassroom), HasProjector: true, IsAvailable: true},
		{Code: "B205", Name: str("Computer Lab B205"), Building: str("B"), Floor: floor(2), Capacity: 30, RoomType: str(model.RoomTypeLab), HasProjector: true, HasComputers: true, IsAvailable: true},
		{Code: "B210", Name: str("Classroom B210"), Building: str("B"), Floor: floor(2), Capacity: 35, RoomType: str(model.RoomTypeClassroom), IsAvailable: true},
		{Code: "C301", Name: str("Classroom C301"), Building: str("C"), Floor: floor(3), Capacity: 45, RoomType: str(model.RoomTypeClassroom), HasProjector: true, IsAvailable: true},
		{Code: "C305", Name: str("Workshop C305"), Building: str("C"), Floor: floor(3), Capacity: 20, RoomType: str(model.RoomTypeWorkshop), IsAvailable: false},
	}
}
