// Package testutil monta banco em memória e dados de apoio para os testes.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-agenda/internal/db"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
	"github.com/BruksfildServices01/barber-agenda/internal/timezone"
)

// NewDB abre um SQLite em memória já migrado. Uma única conexão mantém o
// banco vivo e serializa as transações.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb, timezone.DefaultTimezone))
	return gdb
}

type Fixture struct {
	Shop     models.Barbershop
	Barber   models.User
	Haircut  models.BarberProduct
	Beard    models.BarberProduct
	Inactive models.BarberProduct
}

// Seed cria barbearia, barbeiro dono e serviços (corte 30min, barba 15min).
func Seed(t *testing.T, gdb *gorm.DB) Fixture {
	t.Helper()

	f := Fixture{
		Shop: models.Barbershop{
			Name:     "Barbearia do Zé",
			Slug:     "barbearia-do-ze",
			Timezone: timezone.DefaultTimezone,
		},
	}
	require.NoError(t, gdb.Create(&f.Shop).Error)

	f.Barber = models.User{BarbershopID: f.Shop.ID, Name: "Zé", Role: "owner"}
	require.NoError(t, gdb.Create(&f.Barber).Error)

	f.Haircut = models.BarberProduct{BarbershopID: f.Shop.ID, Name: "Corte", DurationMin: 30, Price: 40, Active: true}
	f.Beard = models.BarberProduct{BarbershopID: f.Shop.ID, Name: "Barba", DurationMin: 15, Price: 25, Active: true}
	f.Inactive = models.BarberProduct{BarbershopID: f.Shop.ID, Name: "Luzes", DurationMin: 90, Price: 120}
	require.NoError(t, gdb.Create(&f.Haircut).Error)
	require.NoError(t, gdb.Create(&f.Beard).Error)
	require.NoError(t, gdb.Create(&f.Inactive).Error)

	return f
}

// MondayShift é o expediente de segunda 09:00-18:00 com almoço 12:00-13:00.
func MondayShift(barberID uint) models.WeeklyAvailability {
	return models.WeeklyAvailability{
		BarberID:   barberID,
		DayOfWeek:  1,
		StartTime:  "09:00",
		EndTime:    "18:00",
		LunchStart: "12:00",
		LunchEnd:   "13:00",
		IsActive:   true,
	}
}
