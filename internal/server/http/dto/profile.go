package dto

import "github.com/returnhelper/returnsvc/internal/domain/model"

// SubscriptionResponse describes the user's plan and usage.
type SubscriptionResponse struct {
	Plan         string `json:"plan"`
	ReturnsLimit int    `json:"returnsLimit"`
	ReturnsUsed  int    `json:"returnsUsed"`
}

// ProfileResponse describes GET /api/profile output.
type ProfileResponse struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Email        string                `json:"email"`
	Phone        string                `json:"phone"`
	Role         string                `json:"role"`
	Subscription *SubscriptionResponse `json:"subscription,omitempty"`
}

// ToProfileResponse maps the profile aggregate to its wire form.
func ToProfileResponse(p *model.Profile) ProfileResponse {
	resp := ProfileResponse{
		ID:    p.User.ID,
		Name:  p.User.Name,
		Email: p.User.Email,
		Phone: p.User.Phone,
		Role:  string(p.User.Role),
	}
	if p.Subscription != nil {
		resp.Subscription = &SubscriptionResponse{
			Plan:         string(p.Subscription.Plan),
			ReturnsLimit: p.Subscription.ReturnsLimit,
			ReturnsUsed:  p.Subscription.ReturnsUsed,
		}
	}
	return resp
}
