package profile

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name,omitempty" validate:"omitempty,max=20"`
	Info        *string `json:"info,omitempty"`

	ShowAdultContent *bool `json:"show_adult_content,omitempty"`

	// Staff-only fields. Submitting them as a non-staff actor is rejected
	// server-side no matter what the client UI allowed.
	Role        *string `json:"role,omitempty"`
	DateOfBirth *string `json:"date_of_birth,omitempty"` // YYYY-MM-DD
}

type DobChangeRequestInput struct {
	RequestedDob string `json:"requested_dob" binding:"required"` // YYYY-MM-DD
	Note         string `json:"note,omitempty"`
}

type ProfileResponse struct {
	ID               int64  `json:"id"`
	UserID           int64  `json:"user_id"`
	DisplayName      string `json:"display_name,omitempty"`
	Info             string `json:"info,omitempty"`
	Role             string `json:"role"`
	ShowAdultContent bool   `json:"show_adult_content"`
	DobChangePending bool   `json:"dob_change_pending"`
	IsAdult          bool   `json:"is_adult"`
	CanViewAdult     bool   `json:"can_view_adult_content"`
}
