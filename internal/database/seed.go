package database

import (
	"context"
	"log"

	"github.com/iliyamo/hotel-room-reservation/internal/model"
	"github.com/iliyamo/hotel-room-reservation/internal/repository"
)

// Seed populates an empty database with a starter data set: one
// receptionist, one client and a small room catalog. It is a no-op
// when any user already exists, so restarting the server never
// duplicates data. Individual insert failures are logged and skipped
// rather than aborting startup.
func Seed(ctx context.Context, users *repository.UserRepo, rooms *repository.RoomRepo, bcryptCost int) error {
	n, err := users.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	if _, err := users.Create(ctx, "Admin Reception", "reception@hotel.com", "reception123", model.RoleReceptionist, bcryptCost); err != nil {
		return err
	}
	if _, err := users.Create(ctx, "Client Test", "client@test.com", "client123", model.RoleClient, bcryptCost); err != nil {
		return err
	}

	catalog := []model.Room{
		{Number: "101", Type: "Simple", Capacity: 1, PricePerNightCents: 8000, IsActive: true},
		{Number: "102", Type: "Double", Capacity: 2, PricePerNightCents: 12000, IsActive: true},
		{Number: "103", Type: "Double", Capacity: 2, PricePerNightCents: 12000, IsActive: true},
		{Number: "201", Type: "Suite", Capacity: 3, PricePerNightCents: 20000, IsActive: true},
		{Number: "202", Type: "Suite", Capacity: 4, PricePerNightCents: 25000, IsActive: true},
		{Number: "301", Type: "Simple", Capacity: 1, PricePerNightCents: 9000, IsActive: true},
		{Number: "302", Type: "Double", Capacity: 2, PricePerNightCents: 13000, IsActive: true},
		{Number: "303", Type: "Double", Capacity: 2, PricePerNightCents: 13000, IsActive: true},
	}
	for i := range catalog {
		if _, err := rooms.Create(ctx, &catalog[i]); err != nil {
			log.Printf("seed: room %s: %v", catalog[i].Number, err)
		}
	}

	log.Printf("seed: created %d users and %d rooms", 2, len(catalog))
	return nil
}
