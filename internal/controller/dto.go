package controller

import (
	"encoding/json"
	"time"

	"nexfolio_backend/internal/model"
	"nexfolio_backend/internal/service"
	"nexfolio_backend/pkg/subscription"
)

// Request schemas.

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateProfileRequest struct {
	Handle      string  `json:"handle" validate:"required,min=3,max=50"`
	Role        string  `json:"role" validate:"required,oneof=provider client"`
	Bio         *string `json:"bio"`
	Location    *string `json:"location"`
	PhoneNumber *string `json:"phoneNumber"`
}

type SetupProviderRequest struct {
	Profession   *string            `json:"profession"`
	ServiceTypes []string           `json:"serviceTypes" validate:"required,min=1,dive,required"`
	Pricing      map[string]float64 `json:"pricing"`
	TravelRadius *float64           `json:"travelRadius" validate:"omitempty,gte=0"`
	SocialLinks  map[string]string  `json:"socialLinks"`
	Availability json.RawMessage    `json:"availability"`
}

type AddPortfolioItemRequest struct {
	ImageURL    string  `json:"imageUrl" validate:"required"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type CreateBookingRequest struct {
	ProviderID  uint     `json:"providerId" validate:"required"`
	ServiceType string   `json:"serviceType" validate:"required"`
	BookingDate string   `json:"bookingDate" validate:"required"`
	BookingTime string   `json:"bookingTime" validate:"required"`
	IsTrial     *bool    `json:"isTrial" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Notes       *string  `json:"notes"`
	Location    *string  `json:"location"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}

type CreateReviewRequest struct {
	BookingID uint    `json:"bookingId" validate:"required"`
	Rating    int     `json:"rating" validate:"required,min=1,max=5"`
	Comment   *string `json:"comment"`
}

type UpgradeSubscriptionRequest struct {
	Tier            string `json:"tier" validate:"required,oneof=free starter pro elite"`
	PaymentMethodID string `json:"paymentMethodId"`
}

// Response schemas.

type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type LoginEntryResponse struct {
	Device    string    `json:"device"`
	IP        string    `json:"ip"`
	CreatedAt time.Time `json:"createdAt"`
}

type ProviderFields struct {
	ID               uint               `json:"id"`
	ProfileID        uint               `json:"profileId"`
	Profession       *string            `json:"profession"`
	ServiceTypes     []string           `json:"serviceTypes"`
	Pricing          map[string]float64 `json:"pricing"`
	TravelRadius     *float64           `json:"travelRadius"`
	SocialLinks      map[string]string  `json:"socialLinks"`
	Availability     json.RawMessage    `json:"availability"`
	SubscriptionTier subscription.Tier  `json:"subscriptionTier"`
	IsVerified       bool               `json:"isVerified"`
	TotalBookings    int                `json:"totalBookings"`
	AverageRating    float64            `json:"averageRating"`
}

type ProfileResponse struct {
	ID          uint            `json:"id"`
	UserID      uint            `json:"userId"`
	Handle      string          `json:"handle"`
	Role        model.Role      `json:"role"`
	Bio         *string         `json:"bio"`
	Location    *string         `json:"location"`
	PhoneNumber *string         `json:"phoneNumber"`
	Provider    *ProviderFields `json:"provider"`
}

type ProviderListProfile struct {
	Handle   string  `json:"handle"`
	Bio      *string `json:"bio"`
	Location *string `json:"location"`
}

type ProviderListItem struct {
	ProviderFields
	Profile ProviderListProfile `json:"profile"`
}

type ProviderDetailProfile struct {
	Handle      string  `json:"handle"`
	Bio         *string `json:"bio"`
	Location    *string `json:"location"`
	PhoneNumber *string `json:"phoneNumber"`
}

type PortfolioItemResponse struct {
	ID          uint    `json:"id"`
	ImageURL    string  `json:"imageUrl"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type ReviewClient struct {
	Handle string `json:"handle"`
}

type ReviewResponse struct {
	ID        uint         `json:"id"`
	Rating    int          `json:"rating"`
	Comment   *string      `json:"comment"`
	CreatedAt time.Time    `json:"createdAt"`
	Client    ReviewClient `json:"client"`
}

type ProviderDetail struct {
	ProviderFields
	Profile         ProviderDetailProfile   `json:"profile"`
	PortfolioItems  []PortfolioItemResponse `json:"portfolioItems"`
	ProviderReviews []ReviewResponse        `json:"providerReviews"`
}

type BookingProviderProfile struct {
	Handle   string  `json:"handle"`
	Location *string `json:"location"`
}

type BookingProvider struct {
	ID      uint                   `json:"id"`
	Profile BookingProviderProfile `json:"profile"`
}

type BookingClient struct {
	Handle string `json:"handle"`
}

type BookingResponse struct {
	ID          uint                `json:"id"`
	ProviderID  uint                `json:"providerId"`
	ClientID    uint                `json:"clientId"`
	ServiceType string              `json:"serviceType"`
	BookingDate time.Time           `json:"bookingDate"`
	BookingTime string              `json:"bookingTime"`
	Status      model.BookingStatus `json:"status"`
	IsTrial     bool                `json:"isTrial"`
	Price       float64             `json:"price"`
	Notes       *string             `json:"notes"`
	Location    *string             `json:"location"`
	CreatedAt   time.Time           `json:"createdAt"`
	Provider    BookingProvider     `json:"provider"`
	Client      BookingClient       `json:"client"`
}

type CurrentSubscriptionResponse struct {
	SubscriptionTier      subscription.Tier `json:"subscriptionTier"`
	Features              []string          `json:"features"`
	PortfolioLimit        int               `json:"portfolioLimit"`
	CurrentPortfolioCount int64             `json:"currentPortfolioCount"`
	Price                 float64           `json:"price"`
	SubscriptionStartDate *time.Time        `json:"subscriptionStartDate"`
	SubscriptionEndDate   *time.Time        `json:"subscriptionEndDate"`
}

type SubscriptionHistoryResponse struct {
	ID         uint                `json:"id"`
	ProviderID uint                `json:"providerId"`
	Tier       subscription.Tier   `json:"tier"`
	Action     subscription.Action `json:"action"`
	Amount     float64             `json:"amount"`
	StartDate  time.Time           `json:"startDate"`
	CreatedAt  time.Time           `json:"createdAt"`
}

// Mapping from models.

func newUserResponse(u *model.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt}
}

func newProviderFields(p *model.Provider) ProviderFields {
	serviceTypes := []string(p.ServiceTypes)
	if serviceTypes == nil {
		serviceTypes = []string{}
	}
	var availability json.RawMessage
	if len(p.Availability) > 0 {
		availability = json.RawMessage(p.Availability)
	}
	return ProviderFields{
		ID:               p.ID,
		ProfileID:        p.ProfileID,
		Profession:       p.Profession,
		ServiceTypes:     serviceTypes,
		Pricing:          p.Pricing.Data(),
		TravelRadius:     p.TravelRadius,
		SocialLinks:      p.SocialLinks.Data(),
		Availability:     availability,
		SubscriptionTier: p.SubscriptionTier,
		IsVerified:       p.IsVerified,
		TotalBookings:    p.TotalBookings,
		AverageRating:    p.AverageRating,
	}
}

func newProfileResponse(p *model.Profile) ProfileResponse {
	out := ProfileResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		Handle:      p.Handle,
		Role:        p.Role,
		Bio:         p.Bio,
		Location:    p.Location,
		PhoneNumber: p.PhoneNumber,
	}
	if pp, ok := p.Participant().(model.ProviderParticipant); ok {
		fields := newProviderFields(pp.Provider)
		out.Provider = &fields
	}
	return out
}

func newProviderListItem(p *model.Provider) ProviderListItem {
	item := ProviderListItem{ProviderFields: newProviderFields(p)}
	if p.Profile != nil {
		item.Profile = ProviderListProfile{
			Handle:   p.Profile.Handle,
			Bio:      p.Profile.Bio,
			Location: p.Profile.Location,
		}
	}
	return item
}

func newProviderDetail(p *model.Provider) ProviderDetail {
	out := ProviderDetail{
		ProviderFields:  newProviderFields(p),
		PortfolioItems:  make([]PortfolioItemResponse, 0, len(p.PortfolioItems)),
		ProviderReviews: make([]ReviewResponse, 0, len(p.ProviderReviews)),
	}
	if p.Profile != nil {
		out.Profile = ProviderDetailProfile{
			Handle:      p.Profile.Handle,
			Bio:         p.Profile.Bio,
			Location:    p.Profile.Location,
			PhoneNumber: p.Profile.PhoneNumber,
		}
	}
	for _, item := range p.PortfolioItems {
		out.PortfolioItems = append(out.PortfolioItems, PortfolioItemResponse{
			ID:          item.ID,
			ImageURL:    item.ImageURL,
			Title:       item.Title,
			Description: item.Description,
		})
	}
	for _, r := range p.ProviderReviews {
		rr := ReviewResponse{ID: r.ID, Rating: r.Rating, Comment: r.Comment, CreatedAt: r.CreatedAt}
		if r.Client != nil {
			rr.Client.Handle = r.Client.Handle
		}
		out.ProviderReviews = append(out.ProviderReviews, rr)
	}
	return out
}

func newBookingResponse(b *model.Booking) BookingResponse {
	out := BookingResponse{
		ID:          b.ID,
		ProviderID:  b.ProviderID,
		ClientID:    b.ClientID,
		ServiceType: b.ServiceType,
		BookingDate: b.BookingDate,
		BookingTime: b.BookingTime,
		Status:      b.Status,
		IsTrial:     b.IsTrial,
		Price:       b.Price,
		Notes:       b.Notes,
		Location:    b.Location,
		CreatedAt:   b.CreatedAt,
		Provider:    BookingProvider{ID: b.ProviderID},
	}
	if b.Provider != nil && b.Provider.Profile != nil {
		out.Provider.Profile = BookingProviderProfile{
			Handle:   b.Provider.Profile.Handle,
			Location: b.Provider.Profile.Location,
		}
	}
	if b.Client != nil {
		out.Client.Handle = b.Client.Handle
	}
	return out
}

func newCurrentSubscriptionResponse(s *service.CurrentSubscription) CurrentSubscriptionResponse {
	return CurrentSubscriptionResponse{
		SubscriptionTier:      s.Tier,
		Features:              s.Features,
		PortfolioLimit:        s.PortfolioLimit,
		CurrentPortfolioCount: s.CurrentPortfolioCount,
		Price:                 s.Price,
		SubscriptionStartDate: s.StartDate,
		SubscriptionEndDate:   s.EndDate,
	}
}

func newSubscriptionHistoryResponse(h *model.SubscriptionHistory) SubscriptionHistoryResponse {
	return SubscriptionHistoryResponse{
		ID:         h.ID,
		ProviderID: h.ProviderID,
		Tier:       h.Tier,
		Action:     h.Action,
		Amount:     h.Amount,
		StartDate:  h.StartDate,
		CreatedAt:  h.CreatedAt,
	}
}
