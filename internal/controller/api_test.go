package controller

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	var res map[string]string
	status := env.do(t, http.MethodGet, "/api/health", "", nil, &res)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", res["status"])
}

func TestAuthEndpoints(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "ana@example.com")

	var dup errorBody
	status := env.do(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email": "ana@example.com", "password": "password123", "name": "Ana",
	}, &dup)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Email already registered", dup.Error)

	var short errorBody
	status = env.do(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email": "bo@example.com", "password": "short", "name": "Bo",
	}, &short)
	assert.Equal(t, fiber.StatusBadRequest, status)
	require.Len(t, short.Issues, 1)
	assert.Equal(t, "password", short.Issues[0].Field)

	status = env.do(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "ana@example.com", "password": "wrong-password",
	}, nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status = env.do(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "ana@example.com", "password": "password123",
	}, nil)
	assert.Equal(t, fiber.StatusOK, status)

	var me UserResponse
	status = env.do(t, http.MethodGet, "/api/me", token, nil, &me)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ana@example.com", me.Email)

	var logins []LoginEntryResponse
	status = env.do(t, http.MethodGet, "/api/me/logins", token, nil, &logins)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Len(t, logins, 1)

	status = env.do(t, http.MethodGet, "/api/me", "", nil, nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestProfileEndpoints(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "mia@example.com")
	other := env.register(t, "zoe@example.com")

	status := env.do(t, http.MethodGet, "/api/profile", token, nil, nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	var bad errorBody
	status = env.do(t, http.MethodPost, "/api/profile/create", token, fiber.Map{"handle": "ab", "role": "client"}, &bad)
	assert.Equal(t, fiber.StatusBadRequest, status)
	require.NotEmpty(t, bad.Issues)
	assert.Equal(t, "handle", bad.Issues[0].Field)

	status = env.do(t, http.MethodPost, "/api/profile/create", token, fiber.Map{
		"handle": "mia_glam", "role": "provider", "bio": "Bridal looks",
	}, nil)
	require.Equal(t, fiber.StatusOK, status)

	var profile ProfileResponse
	status = env.do(t, http.MethodGet, "/api/profile", token, nil, &profile)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "mia_glam", profile.Handle)
	assert.EqualValues(t, "provider", profile.Role)
	require.NotNil(t, profile.Bio)
	assert.Equal(t, "Bridal looks", *profile.Bio)
	assert.Nil(t, profile.Provider)

	var taken errorBody
	status = env.do(t, http.MethodPost, "/api/profile/create", other, fiber.Map{"handle": "mia_glam", "role": "client"}, &taken)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Handle already taken", taken.Error)

	status = env.do(t, http.MethodPost, "/api/profile/create", "", fiber.Map{"handle": "nobody", "role": "client"}, nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestProviderEndpoints(t *testing.T) {
	env := newTestEnv(t)
	_, providerID := env.newProvider(t, "glam_pro")
	clientToken := env.newClient(t, "plain_client")

	status := env.do(t, http.MethodPost, "/api/provider/setup", clientToken, fiber.Map{"serviceTypes": []string{"Hair"}}, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	var list []ProviderListItem
	status = env.do(t, http.MethodGet, "/api/provider?search=bridal", "", nil, &list)
	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, list, 1)
	assert.Equal(t, "glam_pro", list[0].Profile.Handle)
	assert.Equal(t, []string{"Bridal", "Editorial"}, list[0].ServiceTypes)
	assert.Equal(t, 40.0, list[0].Pricing["trial"])

	status = env.do(t, http.MethodGet, "/api/provider?serviceType=Plumbing", "", nil, &list)
	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, list)

	var detail ProviderDetail
	status = env.do(t, http.MethodGet, fmt.Sprintf("/api/provider/%d", providerID), "", nil, &detail)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, providerID, detail.ID)
	assert.NotNil(t, detail.PortfolioItems)

	status = env.do(t, http.MethodGet, "/api/provider/abc", "", nil, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status = env.do(t, http.MethodGet, "/api/provider/9999", "", nil, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestPortfolioEndpoints(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.newProvider(t, "shooter")
	otherToken, _ := env.newProvider(t, "rival")

	var added struct {
		ItemID uint `json:"itemId"`
	}
	for i := 0; i < 5; i++ {
		status := env.do(t, http.MethodPost, "/api/portfolio/add", token, fiber.Map{
			"imageUrl": fmt.Sprintf("/uploads/%d.png", i),
			"title":    "Look",
		}, &added)
		require.Equal(t, fiber.StatusOK, status)
	}

	var limit map[string]interface{}
	status := env.do(t, http.MethodPost, "/api/portfolio/add", token, fiber.Map{"imageUrl": "/uploads/x.png"}, &limit)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.EqualValues(t, 5, limit["currentCount"])
	assert.EqualValues(t, 5, limit["maxLimit"])

	status = env.do(t, http.MethodDelete, fmt.Sprintf("/api/portfolio/%d", added.ItemID), otherToken, nil, nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status = env.do(t, http.MethodDelete, "/api/portfolio/nope", token, nil, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status = env.do(t, http.MethodDelete, fmt.Sprintf("/api/portfolio/%d", added.ItemID), token, nil, nil)
	assert.Equal(t, fiber.StatusOK, status)
}

// A client books, the provider confirms, the review is refused until the
// booking is completed, then the provider page shows it.
func TestBookingReviewScenario(t *testing.T) {
	env := newTestEnv(t)
	providerToken, providerID := env.newProvider(t, "artist")
	clientToken := env.newClient(t, "bride")
	strangerToken := env.newClient(t, "stranger")

	var created struct {
		BookingID uint `json:"bookingId"`
	}
	status := env.do(t, http.MethodPost, "/api/booking/create", clientToken, fiber.Map{
		"providerId":  providerID,
		"serviceType": "Bridal",
		"bookingDate": "2025-06-14",
		"bookingTime": "10:00",
		"isTrial":     true,
		"price":       40,
	}, &created)
	require.Equal(t, fiber.StatusOK, status)

	var bookings []BookingResponse
	status = env.do(t, http.MethodGet, "/api/bookings", clientToken, nil, &bookings)
	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, bookings, 1)
	assert.EqualValues(t, "pending", bookings[0].Status)
	assert.Equal(t, "artist", bookings[0].Provider.Profile.Handle)
	assert.Equal(t, "bride", bookings[0].Client.Handle)

	statusURL := fmt.Sprintf("/api/booking/%d/status", created.BookingID)

	status = env.do(t, http.MethodPatch, statusURL, strangerToken, fiber.Map{"status": "cancelled"}, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status = env.do(t, http.MethodPatch, statusURL, providerToken, fiber.Map{"status": "archived"}, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status = env.do(t, http.MethodPatch, statusURL, providerToken, fiber.Map{"status": "confirmed"}, nil)
	require.Equal(t, fiber.StatusOK, status)

	review := fiber.Map{"bookingId": created.BookingID, "rating": 5, "comment": "Stunning"}

	var notDone errorBody
	status = env.do(t, http.MethodPost, "/api/review/create", clientToken, review, &notDone)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Can only review completed bookings", notDone.Error)

	status = env.do(t, http.MethodPatch, statusURL, providerToken, fiber.Map{"status": "completed"}, nil)
	require.Equal(t, fiber.StatusOK, status)

	status = env.do(t, http.MethodPost, "/api/review/create", clientToken, review, nil)
	require.Equal(t, fiber.StatusOK, status)

	status = env.do(t, http.MethodPost, "/api/review/create", clientToken, review, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	var detail ProviderDetail
	status = env.do(t, http.MethodGet, fmt.Sprintf("/api/provider/%d", providerID), "", nil, &detail)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 5.0, detail.AverageRating)
	assert.Equal(t, 1, detail.TotalBookings)
	require.Len(t, detail.ProviderReviews, 1)
	assert.Equal(t, "bride", detail.ProviderReviews[0].Client.Handle)

	var providerView []BookingResponse
	status = env.do(t, http.MethodGet, "/api/bookings", providerToken, nil, &providerView)
	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, providerView, 1)
	assert.EqualValues(t, "completed", providerView[0].Status)
}

func TestBookingValidation(t *testing.T) {
	env := newTestEnv(t)
	_, providerID := env.newProvider(t, "tailor")
	clientToken := env.newClient(t, "customer")

	status := env.do(t, http.MethodPost, "/api/booking/create", clientToken, fiber.Map{
		"providerId":  providerID,
		"serviceType": "Hem",
		"bookingDate": "next tuesday",
		"bookingTime": "10:00",
		"isTrial":     false,
		"price":       25,
	}, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	var missing errorBody
	status = env.do(t, http.MethodPost, "/api/booking/create", clientToken, fiber.Map{
		"providerId":  providerID,
		"serviceType": "Hem",
		"bookingDate": "2025-01-02",
		"bookingTime": "10:00",
		"price":       25,
	}, &missing)
	assert.Equal(t, fiber.StatusBadRequest, status)
	require.Len(t, missing.Issues, 1)
	assert.Equal(t, "isTrial", missing.Issues[0].Field)

	status = env.do(t, http.MethodPost, "/api/booking/create", clientToken, fiber.Map{
		"providerId":  providerID + 100,
		"serviceType": "Hem",
		"bookingDate": "2025-01-02",
		"bookingTime": "10:00",
		"isTrial":     false,
		"price":       25,
	}, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestSubscriptionEndpoints(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.newProvider(t, "upgrader")
	clientToken := env.newClient(t, "window_shopper")

	var tiers []map[string]interface{}
	status := env.do(t, http.MethodGet, "/api/subscription/tiers", "", nil, &tiers)
	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, tiers, 4)
	assert.Equal(t, "free", tiers[0]["tier"])
	assert.Equal(t, "elite", tiers[3]["tier"])

	var cur CurrentSubscriptionResponse
	status = env.do(t, http.MethodGet, "/api/subscription/current", token, nil, &cur)
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, "free", cur.SubscriptionTier)
	assert.Equal(t, 5, cur.PortfolioLimit)

	var up struct {
		Success          bool   `json:"success"`
		Message          string `json:"message"`
		SubscriptionTier string `json:"subscriptionTier"`
	}
	status = env.do(t, http.MethodPost, "/api/subscription/upgrade", token, fiber.Map{"tier": "pro", "paymentMethodId": "pm_1"}, &up)
	require.Equal(t, fiber.StatusOK, status)
	assert.True(t, up.Success)
	assert.Equal(t, "Successfully upgraded to Pro tier", up.Message)
	assert.Equal(t, "pro", up.SubscriptionTier)

	var same errorBody
	status = env.do(t, http.MethodPost, "/api/subscription/upgrade", token, fiber.Map{"tier": "pro"}, &same)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Already on this tier", same.Error)

	status = env.do(t, http.MethodPost, "/api/subscription/upgrade", token, fiber.Map{"tier": "diamond"}, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	var cancelled struct {
		Message string `json:"message"`
	}
	status = env.do(t, http.MethodPost, "/api/subscription/cancel", token, nil, &cancelled)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Subscription cancelled successfully. You are now on the Free tier.", cancelled.Message)

	var history []SubscriptionHistoryResponse
	status = env.do(t, http.MethodGet, "/api/subscription/history", token, nil, &history)
	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, history, 2)
	assert.EqualValues(t, "cancel", history[0].Action)
	assert.EqualValues(t, "upgrade", history[1].Action)
	assert.Equal(t, 24.99, history[1].Amount)

	status = env.do(t, http.MethodGet, "/api/subscription/current", clientToken, nil, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}
