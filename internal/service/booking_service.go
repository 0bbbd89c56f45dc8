package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"nexfolio_backend/internal/model"
)

const bookingDateLayout = "2006-01-02"

type CreateBookingInput struct {
	ProviderID  uint
	ServiceType string
	BookingDate time.Time
	BookingTime string
	IsTrial     bool
	Price       float64
	Notes       *string
	Location    *string
}

type BookingService struct {
	db *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{db: db}
}

// ParseBookingDate accepts an RFC 3339 timestamp or a plain YYYY-MM-DD date.
func ParseBookingDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(bookingDateLayout, s); err == nil {
		return t, nil
	}
	return time.Time{}, Validation(fmt.Sprintf("Invalid booking date %q", s))
}

// Create books the provider for the caller, who acts as the client.
func (s *BookingService) Create(ctx context.Context, userID uint, in CreateBookingInput) (*model.Booking, error) {
	const failMsg = "Failed to create booking"

	if in.Price < 0 {
		return nil, Validation("Price must not be negative")
	}

	profile, err := loadProfile(ctx, s.db, userID, "Profile not found", failMsg)
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&model.Provider{}).Where("id = ?", in.ProviderID).Count(&count).Error; err != nil {
		return nil, Internal(failMsg, err)
	}
	if count == 0 {
		return nil, NotFound("Provider not found")
	}

	booking := model.Booking{
		ProviderID:  in.ProviderID,
		ClientID:    profile.ID,
		ServiceType: in.ServiceType,
		BookingDate: in.BookingDate,
		BookingTime: in.BookingTime,
		Status:      model.BookingPending,
		IsTrial:     in.IsTrial,
		Price:       in.Price,
		Notes:       in.Notes,
		Location:    in.Location,
	}
	if err := db.Create(&booking).Error; err != nil {
		return nil, Internal(failMsg, err)
	}
	return &booking, nil
}

// List returns the caller's bookings. A provider sees bookings made with it,
// anyone else sees the bookings they made as a client.
func (s *BookingService) List(ctx context.Context, userID uint) ([]model.Booking, error) {
	const failMsg = "Failed to fetch bookings"

	profile, err := loadProfile(ctx, s.db, userID, "Profile not found", failMsg)
	if err != nil {
		return nil, err
	}

	q := s.db.WithContext(ctx).
		Preload("Provider").
		Preload("Provider.Profile").
		Preload("Client").
		Order("booking_date desc, id desc")

	switch p := profile.Participant().(type) {
	case model.ProviderParticipant:
		q = q.Where("provider_id = ?", p.Provider.ID)
	case model.ClientParticipant:
		q = q.Where("client_id = ?", p.Profile.ID)
	}

	var bookings []model.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return nil, Internal(failMsg, err)
	}
	return bookings, nil
}

// UpdateStatus sets any of the four statuses. Only the booking's provider or
// client may change it; transitions are not otherwise restricted.
func (s *BookingService) UpdateStatus(ctx context.Context, userID, bookingID uint, status model.BookingStatus) error {
	const failMsg = "Failed to update booking status"

	if !status.Valid() {
		return Validation("Invalid booking status")
	}

	profile, err := loadProfile(ctx, s.db, userID, "Profile not found", failMsg)
	if err != nil {
		return err
	}

	db := s.db.WithContext(ctx)

	var booking model.Booking
	err = db.First(&booking, bookingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("Booking not found")
	}
	if err != nil {
		return Internal(failMsg, err)
	}

	if !participatesIn(profile.Participant(), &booking) {
		return Forbidden("Unauthorized")
	}

	if err := db.Model(&booking).Update("status", status).Error; err != nil {
		return Internal(failMsg, err)
	}
	return nil
}

func participatesIn(p model.Participant, b *model.Booking) bool {
	switch p := p.(type) {
	case model.ProviderParticipant:
		return p.Provider.ID == b.ProviderID || p.Profile.ID == b.ClientID
	case model.ClientParticipant:
		return p.Profile.ID == b.ClientID
	}
	return false
}
