package http

import (
	"time"

	"repair/internal/core/application/usecases/queries"
	"repair/internal/core/domain/model/kernel"
)

type SendCodeRequest struct {
	PhoneNumber string `json:"phone_number"`
}

type VerifyCodeRequest struct {
	PhoneNumber string `json:"phone_number"`
	Code        string `json:"code"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type Message struct {
	Message string `json:"message"`
}

type Actor struct {
	ID            string    `json:"id"`
	PhoneNumber   string    `json:"phone_number"`
	Role          string    `json:"role"`
	IsActive      bool      `json:"is_active"`
	PickupPointID *string   `json:"pickup_point_id"`
	ServiceID     *string   `json:"service_id"`
	CreatedAt     time.Time `json:"created_at"`
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active"`
}

type CreateOrderRequest struct {
	Category      string   `json:"category"`
	Subcategory   string   `json:"subcategory"`
	Description   string   `json:"description"`
	ReceivePVZID  string   `json:"receive_pvz_id"`
	DeliveryPVZID string   `json:"delivery_pvz_id"`
	PaymentMethod string   `json:"payment_method"`
	PriceLimit    *float64 `json:"price_limit"`
}

type TransitionRequest struct {
	Status  string         `json:"status"`
	Payload map[string]any `json:"payload,omitempty"`
}

type AssignServiceRequest struct {
	ServiceID *string `json:"service_id"`
}

type AddPhotoRequest struct {
	Stage string `json:"stage"`
	URL   string `json:"url"`
}

type ReviewRequest struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

type Photo struct {
	ID        string    `json:"id"`
	Stage     string    `json:"stage"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

type Order struct {
	ID                 string     `json:"id"`
	Number             string     `json:"order_number"`
	ClientID           string     `json:"client_id"`
	ServiceID          *string    `json:"service_id"`
	ReceivePVZID       string     `json:"receive_pvz_id"`
	DeliveryPVZID      string     `json:"delivery_pvz_id"`
	Category           string     `json:"category"`
	Subcategory        string     `json:"subcategory"`
	Description        string     `json:"description"`
	PaymentMethod      string     `json:"payment_method"`
	PriceLimit         *float64   `json:"price_limit"`
	Status             string     `json:"status"`
	ProposedPrice      *float64   `json:"proposed_price"`
	FinalPrice         *float64   `json:"final_price"`
	PriceJustification *string    `json:"price_justification"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	ReceivedAt         *time.Time `json:"received_at"`
	DeliveredAt        *time.Time `json:"delivered_at"`
	Photos             []Photo    `json:"photos"`
}

type CreatePickupPointRequest struct {
	OwnerID       *string  `json:"owner_id"`
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	WorkingHours  string   `json:"working_hours"`
	OperatorName  string   `json:"operator_name"`
	OperatorPhone *string  `json:"operator_phone"`
	Accepts       []string `json:"accepts"`
}

type PickupPoint struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"owner_id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	WorkingHours  string    `json:"working_hours"`
	OperatorName  string    `json:"operator_name"`
	OperatorPhone *string   `json:"operator_phone"`
	Accepts       []string  `json:"accepts"`
	IsActive      bool      `json:"is_active"`
	DistanceKm    *float64  `json:"distance_km,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CreateServiceProfileRequest struct {
	OwnerID      *string `json:"owner_id"`
	CompanyName  string  `json:"company_name"`
	INN          string  `json:"inn"`
	ActivityType string  `json:"activity_type"`
	Description  string  `json:"description"`
	Phone        *string `json:"phone"`
	Email        string  `json:"email"`
	BankAccount  string  `json:"bank_account"`
	BankBIK      string  `json:"bank_bik"`
}

type ServiceProfile struct {
	ID                 string    `json:"id"`
	OwnerID            string    `json:"owner_id"`
	CompanyName        string    `json:"company_name"`
	INN                string    `json:"inn"`
	ActivityType       string    `json:"activity_type"`
	Description        string    `json:"description"`
	Phone              *string   `json:"phone"`
	Email              string    `json:"email"`
	VerificationStatus string    `json:"verification_status"`
	AverageRating      float64   `json:"average_rating"`
	TotalReviews       int       `json:"total_reviews"`
	CreatedAt          time.Time `json:"created_at"`
}

type VerificationRequest struct {
	Status string `json:"status"`
}

type OfferingRequest struct {
	Name         string   `json:"name"`
	Price        *float64 `json:"price"`
	DurationDays int      `json:"duration_days"`
	Description  string   `json:"description"`
}

type Offering struct {
	ID           string    `json:"id"`
	ServiceID    string    `json:"service_id"`
	Name         string    `json:"name"`
	Price        *float64  `json:"price"`
	DurationDays int       `json:"duration_days"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}

func idString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func toActor(v queries.ActorView) Actor {
	return Actor{
		ID:            v.ID.String(),
		PhoneNumber:   v.Phone,
		Role:          v.Role.String(),
		IsActive:      v.Active,
		PickupPointID: idString(v.PickupPointID),
		ServiceID:     idString(v.ServiceID),
		CreatedAt:     v.CreatedAt,
	}
}

func toOrder(v queries.OrderView) Order {
	photos := make([]Photo, len(v.Photos))
	for i, p := range v.Photos {
		photos[i] = Photo{ID: p.ID.String(), Stage: p.Stage.String(), URL: p.URL, CreatedAt: p.CreatedAt}
	}
	return Order{
		ID:                 v.ID.String(),
		Number:             v.Number,
		ClientID:           v.ClientID.String(),
		ServiceID:          idString(v.ServiceID),
		ReceivePVZID:       v.ReceivePVZID.String(),
		DeliveryPVZID:      v.DeliveryPVZID.String(),
		Category:           v.Category.String(),
		Subcategory:        v.Subcategory,
		Description:        v.Description,
		PaymentMethod:      v.PaymentMethod.String(),
		PriceLimit:         v.PriceLimit,
		Status:             v.Status.String(),
		ProposedPrice:      v.ProposedPrice,
		FinalPrice:         v.FinalPrice,
		PriceJustification: v.PriceJustification,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
		ReceivedAt:         v.ReceivedAt,
		DeliveredAt:        v.DeliveredAt,
		Photos:             photos,
	}
}

func toPickupPoint(v queries.PickupPointView) PickupPoint {
	accepts := make([]string, len(v.Accepts))
	for i, c := range v.Accepts {
		accepts[i] = c.String()
	}
	return PickupPoint{
		ID:            v.ID.String(),
		OwnerID:       v.OwnerID.String(),
		Name:          v.Name,
		Address:       v.Address,
		Latitude:      v.Location.Lat(),
		Longitude:     v.Location.Lon(),
		WorkingHours:  v.WorkingHours,
		OperatorName:  v.OperatorName,
		OperatorPhone: v.OperatorPhone,
		Accepts:       accepts,
		IsActive:      v.Active,
		DistanceKm:    v.DistanceKm,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func toServiceProfile(v queries.ServiceProfileView) ServiceProfile {
	return ServiceProfile{
		ID:                 v.ID.String(),
		OwnerID:            v.OwnerID.String(),
		CompanyName:        v.CompanyName,
		INN:                v.INN,
		ActivityType:       v.ActivityType,
		Description:        v.Description,
		Phone:              v.Phone,
		Email:              v.Email,
		VerificationStatus: v.Verification.String(),
		AverageRating:      v.AverageRating,
		TotalReviews:       v.TotalReviews,
		CreatedAt:          v.CreatedAt,
	}
}

func toOffering(v queries.OfferingView) Offering {
	return Offering{
		ID:           v.ID.String(),
		ServiceID:    v.ServiceID.String(),
		Name:         v.Name,
		Price:        v.Price,
		DurationDays: v.DurationDays,
		Description:  v.Description,
		CreatedAt:    v.CreatedAt,
	}
}

func mapSlice[T, R any](in []T, f func(T) R) []R {
	out := make([]R, len(in))
	for i, v := range in {
		out[i] = f(v)
	}
	return out
}
