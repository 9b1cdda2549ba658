package service

import (
	"context"
	"fmt"
	"time"

	"fleetrent-backend/internal/availability"
	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
	subunitRepo repository.SubunitRepository
	noteRepo    repository.NoteRepository
	bookingRepo repository.BookingRepository
	engine      *availability.Engine
}

func NewVehicleService(
	vehicleRepo repository.VehicleRepository,
	subunitRepo repository.SubunitRepository,
	noteRepo repository.NoteRepository,
	bookingRepo repository.BookingRepository,
) VehicleService {
	return &vehicleService{
		vehicleRepo: vehicleRepo,
		subunitRepo: subunitRepo,
		noteRepo:    noteRepo,
		bookingRepo: bookingRepo,
		engine:      availability.NewEngine(subunitRepo, noteRepo, bookingRepo),
	}
}

func (s *vehicleService) GetVehicle(ctx context.Context, id int32) (*domain.Vehicle, []domain.Subunit, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	subunits, err := s.subunitRepo.ListByVehicle(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return vehicle, subunits, nil
}

// ListVehicles returns the active catalog page. When both availability dates
// are present the same engine query that backs the per-vehicle availability
// endpoint filters the page, so the storefront list and the detail page can
// never disagree.
//
// The returned count is the pre-filter catalog total, not the number of
// listings that survived the availability filter: it drives pagination over
// the catalog, and availability is only evaluated for the page in hand.
func (s *vehicleService) ListVehicles(ctx context.Context, category, availableFrom, availableTo string, page, pageSize int32) ([]VehicleListing, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var from, to time.Time
	filterByDates := availableFrom != "" || availableTo != ""
	if filterByDates {
		var err error
		from, to, err = parseWindow(availableFrom, availableTo)
		if err != nil {
			return nil, 0, err
		}
	}

	vehicles, count, err := s.vehicleRepo.List(ctx, category, true, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	listings := make([]VehicleListing, 0, len(vehicles))
	for i := range vehicles {
		v := vehicles[i]
		if !filterByDates {
			listings = append(listings, VehicleListing{Vehicle: v})
			continue
		}
		result, err := s.engine.Query(ctx, v.ID, from, to)
		if err != nil {
			return nil, 0, err
		}
		if result.AvailableCount == 0 {
			continue
		}
		listings = append(listings, VehicleListing{Vehicle: v, Availability: result})
	}
	return listings, count, nil
}

func parseWindow(fromStr, toStr string) (time.Time, time.Time, error) {
	ve := &domain.ValidationError{}
	var from, to time.Time
	var err error
	if fromStr == "" {
		ve.Add("from", "is required")
	} else if from, err = parseBookingDate(fromStr); err != nil {
		ve.Add("from", "must be an ISO 8601 date")
	}
	if toStr == "" {
		ve.Add("to", "is required")
	} else if to, err = parseBookingDate(toStr); err != nil {
		ve.Add("to", "must be an ISO 8601 date")
	}
	if !from.IsZero() && !to.IsZero() && !from.Before(to) {
		ve.Add("to", "must be after from")
	}
	if ve.HasErrors() {
		return time.Time{}, time.Time{}, ve
	}
	return from, to, nil
}

func (s *vehicleService) QueryAvailability(ctx context.Context, vehicleID int32, fromStr, toStr string) (*AvailabilityResult, error) {
	from, to, err := parseWindow(fromStr, toStr)
	if err != nil {
		return nil, err
	}

	// Unknown and deactivated vehicles are a 404, not an empty result,
	// matching the booking write path.
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if !vehicle.IsActive {
		return nil, domain.ErrNotFound
	}

	result, err := s.engine.Query(ctx, vehicleID, from, to)
	if err != nil {
		return nil, err
	}

	occupied, err := s.bookingRepo.ListActiveOverlapping(ctx, vehicleID, from, to)
	if err != nil {
		return nil, err
	}
	booked := make([]DateRange, 0, len(occupied))
	for i := range occupied {
		booked = append(booked, DateRange{From: occupied[i].PickupDate, To: occupied[i].DropoffDate})
	}

	return &AvailabilityResult{
		Available:      result.AvailableCount > 0,
		AvailableCount: result.AvailableCount,
		TotalCount:     result.TotalSubunitCount,
		BookedDates:    booked,
	}, nil
}

// BlockedDates returns twelve months of calendar data starting at the given
// month. Bookings of every status are included so the UI can grey out
// cancelled ones differently; only the engine decides what actually
// obstructs.
func (s *vehicleService) BlockedDates(ctx context.Context, vehicleID int32, month, year int) (*BlockedDatesResult, error) {
	ve := &domain.ValidationError{}
	if month < 1 || month > 12 {
		ve.Add("month", "must be between 1 and 12")
	}
	if year < 2000 || year > 2200 {
		ve.Add("year", "must be a four-digit year")
	}
	if ve.HasErrors() {
		return nil, ve
	}

	if _, err := s.vehicleRepo.GetByID(ctx, vehicleID); err != nil {
		return nil, err
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, -1)

	bookings, err := s.bookingRepo.ListByVehicleInRange(ctx, vehicleID, from, to)
	if err != nil {
		return nil, err
	}

	notes, err := s.noteRepo.ListObstructions(ctx, vehicleID, from, to)
	if err != nil {
		return nil, err
	}
	idx := availability.NewObstructionIndex(notes)
	blocked := idx.ObstructedDatesInRange(availability.VehicleTarget(vehicleID), from, to)

	if bookings == nil {
		bookings = []domain.Booking{}
	}
	return &BlockedDatesResult{Bookings: bookings, BlockedDates: blocked}, nil
}

func (s *vehicleService) AddNote(ctx context.Context, n *domain.VehicleNote) error {
	ve := &domain.ValidationError{}
	if !domain.ValidNoteType(n.NoteType) {
		ve.Add("note_type", fmt.Sprintf("unknown note type %q", n.NoteType))
	}
	if n.NoteDate.IsZero() {
		ve.Add("note_date", "is required")
	}
	if ve.HasErrors() {
		return ve
	}

	if _, err := s.vehicleRepo.GetByID(ctx, n.VehicleID); err != nil {
		return err
	}
	if n.SubunitID != nil {
		subunit, err := s.subunitRepo.GetByID(ctx, *n.SubunitID)
		if err != nil {
			return err
		}
		if subunit.VehicleID != n.VehicleID {
			return ve.Add("subunit_id", "does not belong to this vehicle")
		}
	}
	return s.noteRepo.Create(ctx, n)
}

func (s *vehicleService) ListNotes(ctx context.Context, vehicleID int32, from, to time.Time) ([]domain.VehicleNote, error) {
	return s.noteRepo.ListByVehicle(ctx, vehicleID, from, to)
}

func (s *vehicleService) DeleteNote(ctx context.Context, noteID int32) error {
	return s.noteRepo.Delete(ctx, noteID)
}

func (s *vehicleService) SetSubunitStatus(ctx context.Context, subunitID int32, status domain.SubunitStatus) error {
	return s.subunitRepo.SetStatus(ctx, subunitID, status)
}
