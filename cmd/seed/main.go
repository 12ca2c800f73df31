package main

import (
	"context"
	"flag"
	"os"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	"github.com/BruksfildServices01/barber-agenda/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-agenda/internal/db"
	"github.com/BruksfildServices01/barber-agenda/internal/infra/lock"
	infraRepo "github.com/BruksfildServices01/barber-agenda/internal/infra/repository"
	"github.com/BruksfildServices01/barber-agenda/internal/logging"
	"github.com/BruksfildServices01/barber-agenda/internal/seed"
	ucSchedule "github.com/BruksfildServices01/barber-agenda/internal/usecase/schedule"
)

func main() {
	path := flag.String("file", "seed.yaml", "arquivo YAML com barbearia, serviços e expediente")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.NewWithWriter(os.Stderr, "", true).Fatal().Err(err).Msg("failed to load config")
	}
	log := logging.New(cfg.Log.Level, cfg.IsProduction())

	if err := run(cfg, log, *path); err != nil {
		log.Fatal().Err(err).Str("file", *path).Msg("seed failed")
	}
}

func run(cfg *config.Config, log *zerolog.Logger, path string) error {
	fh, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fh.Close()

	f, err := seed.Parse(fh)
	if err != nil {
		return err
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}

	d := audit.NewDispatcher(audit.NewRecorder(db), log)
	defer d.Close()

	weekly := ucSchedule.NewSyncWeekly(infraRepo.NewScheduleGormRepository(db), lock.NewMemoryLocker(), d)

	res, err := seed.Apply(context.Background(), db, weekly, f)
	if err != nil {
		return err
	}

	log.Info().
		Uint("barbershop_id", res.BarbershopID).
		Int("services", res.Services).
		Int("barbers", res.Barbers).
		Int("weekly_rows", res.WeeklyRows).
		Msg("seed applied")

	return nil
}
