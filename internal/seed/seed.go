// Package seed importa barbearia, serviços e expediente a partir de um YAML.
package seed

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-agenda/internal/models"
	"github.com/BruksfildServices01/barber-agenda/internal/timezone"
)

type File struct {
	Barbershop Barbershop `yaml:"barbershop"`
	Services   []Service  `yaml:"services"`
	Barbers    []Barber   `yaml:"barbers"`
}

type Barbershop struct {
	Name              string `yaml:"name"`
	Slug              string `yaml:"slug"`
	Timezone          string `yaml:"timezone"`
	MinAdvanceMinutes int    `yaml:"min_advance_minutes"`
	Granularity       int    `yaml:"slot_granularity_minutes"`
}

type Service struct {
	Name        string  `yaml:"name"`
	DurationMin int     `yaml:"duration_min"`
	Price       float64 `yaml:"price"`
	Category    string  `yaml:"category"`
}

type Barber struct {
	Name   string        `yaml:"name"`
	Phone  string        `yaml:"phone"`
	Role   string        `yaml:"role"`
	Weekly []WeeklyEntry `yaml:"weekly"`
}

type WeeklyEntry struct {
	Day        int    `yaml:"day"`
	Start      string `yaml:"start"`
	End        string `yaml:"end"`
	LunchStart string `yaml:"lunch_start"`
	LunchEnd   string `yaml:"lunch_end"`
}

// WeeklySyncer é o caso de uso que grava o expediente semanal.
type WeeklySyncer interface {
	Execute(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
		entries []models.WeeklyAvailability,
	) ([]models.WeeklyAvailability, error)
}

func Parse(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	f.Barbershop.Slug = strings.TrimSpace(f.Barbershop.Slug)
	if f.Barbershop.Slug == "" || strings.TrimSpace(f.Barbershop.Name) == "" {
		return nil, fmt.Errorf("seed: barbershop name and slug are required")
	}
	if f.Barbershop.Timezone == "" {
		f.Barbershop.Timezone = timezone.DefaultTimezone
	}
	if !timezone.IsValid(f.Barbershop.Timezone) {
		return nil, fmt.Errorf("seed: invalid timezone %q", f.Barbershop.Timezone)
	}
	for _, s := range f.Services {
		if s.DurationMin <= 0 {
			return nil, fmt.Errorf("seed: service %q needs a positive duration", s.Name)
		}
	}

	return &f, nil
}

// Result resume o que foi gravado.
type Result struct {
	BarbershopID uint
	Services     int
	Barbers      int
	WeeklyRows   int
}

// Apply é idempotente: barbearia por slug, serviço e barbeiro por nome.
// O expediente passa pelo mesmo caminho de validação da API.
func Apply(ctx context.Context, db *gorm.DB, weekly WeeklySyncer, f *File) (*Result, error) {
	shop := models.Barbershop{Slug: f.Barbershop.Slug}
	if err := db.WithContext(ctx).
		Where(models.Barbershop{Slug: f.Barbershop.Slug}).
		Assign(models.Barbershop{
			Name:                   f.Barbershop.Name,
			Timezone:               f.Barbershop.Timezone,
			MinAdvanceMinutes:      f.Barbershop.MinAdvanceMinutes,
			SlotGranularityMinutes: f.Barbershop.Granularity,
		}).
		FirstOrCreate(&shop).Error; err != nil {
		return nil, fmt.Errorf("upsert barbershop: %w", err)
	}

	res := &Result{BarbershopID: shop.ID}

	for _, s := range f.Services {
		p := models.BarberProduct{}
		if err := db.WithContext(ctx).
			Where(models.BarberProduct{BarbershopID: shop.ID, Name: s.Name}).
			Assign(map[string]any{
				"duration_min": s.DurationMin,
				"price":        s.Price,
				"category":     s.Category,
				"active":       true,
			}).
			FirstOrCreate(&p).Error; err != nil {
			return nil, fmt.Errorf("upsert service %q: %w", s.Name, err)
		}
		res.Services++
	}

	for _, b := range f.Barbers {
		role := b.Role
		if role == "" {
			role = "owner"
		}

		u := models.User{}
		if err := db.WithContext(ctx).
			Where(models.User{BarbershopID: shop.ID, Name: b.Name}).
			Assign(models.User{Phone: b.Phone, Role: role}).
			FirstOrCreate(&u).Error; err != nil {
			return nil, fmt.Errorf("upsert barber %q: %w", b.Name, err)
		}

		entries := make([]models.WeeklyAvailability, 0, len(b.Weekly))
		for _, e := range b.Weekly {
			entries = append(entries, models.WeeklyAvailability{
				DayOfWeek:  e.Day,
				StartTime:  e.Start,
				EndTime:    e.End,
				LunchStart: e.LunchStart,
				LunchEnd:   e.LunchEnd,
				IsActive:   true,
			})
		}

		saved, err := weekly.Execute(ctx, shop.ID, u.ID, entries)
		if err != nil {
			return nil, fmt.Errorf("weekly schedule of %q: %w", b.Name, err)
		}

		res.Barbers++
		res.WeeklyRows += len(saved)
	}

	return res, nil
}
