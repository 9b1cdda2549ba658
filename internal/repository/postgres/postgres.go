package postgres

import (
	"database/sql"

	"fleetrent-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.VehicleRepository
	repository.SubunitRepository
	repository.NoteRepository
	repository.BookingRepository
	repository.CustomerRepository
	repository.LocationRepository
	repository.AdminRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                 db,
		VehicleRepository:  NewVehicleRepository(db),
		SubunitRepository:  NewSubunitRepository(db),
		NoteRepository:     NewNoteRepository(db),
		BookingRepository:  NewBookingRepository(db),
		CustomerRepository: NewCustomerRepository(db),
		LocationRepository: NewLocationRepository(db),
		AdminRepository:    NewAdminRepository(db),
	}
}
