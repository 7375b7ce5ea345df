package main

import (
	"context"
	"flag"
	"os"
	"time"

	"go-pos-admin/internal/model"
	"go-pos-admin/internal/repository"
	"go-pos-admin/pkg/config"
	"go-pos-admin/pkg/database"
	"go-pos-admin/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	email := flag.String("email", "", "staff email")
	password := flag.String("password", "", "new password (min 6 characters)")
	pin := flag.String("pin", "", "new POS PIN (4-8 digits)")
	flag.Parse()

	// 1. Load Env
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := logger.New(cfg.App.Env, cfg.LogLevel)

	if *email == "" || (*password == "" && *pin == "") {
		flag.Usage()
		os.Exit(2)
	}
	if *password != "" && len(*password) < 6 {
		log.Fatal().Msg("password must be at least 6 characters")
	}

	// 2. Setup Database
	db, err := database.ConnectDB(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 3. Find staff
	staffRepo := repository.NewStaffRepo(db)
	staff, err := staffRepo.FindByEmail(ctx, *email)
	if err != nil {
		log.Fatal().Err(err).Str("email", *email).Msg("staff not found")
	}

	// 4. Hash new credentials
	var hashed model.Staff
	if *password != "" {
		if err := hashed.SetPassword(*password); err != nil {
			log.Fatal().Err(err).Msg("hash password")
		}
	}
	if *pin != "" {
		if err := hashed.SetPin(*pin); err != nil {
			log.Fatal().Err(err).Msg("hash pin")
		}
	}

	// 5. Update
	if err := staffRepo.UpdateCredentials(ctx, staff.ID, hashed.Password, hashed.PosPin); err != nil {
		log.Fatal().Err(err).Msg("update credentials")
	}

	log.Info().
		Str("email", staff.Email).
		Bool("password", *password != "").
		Bool("pin", *pin != "").
		Msg("credentials reset")
}
