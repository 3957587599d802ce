package members

import (
	"strings"
	"time"

	"fitcrm/internal/domain"
)

const (
	// unknownMemberName is the documented fallback when a member row has no
	// readable profile. Lists degrade instead of failing.
	unknownMemberName = "Unknown Member"

	searchMinLength = 2
	searchMaxHits   = 50
)

type AddressInput struct {
	Street     *string `json:"street,omitempty" validate:"omitempty,min=1,max=255,safetext"`
	City       *string `json:"city,omitempty" validate:"omitempty,min=1,max=100,safetext"`
	PostalCode *string `json:"postal_code,omitempty" validate:"omitempty,postalcode"`
	Country    *string `json:"country,omitempty" validate:"omitempty,min=2,max=100,safetext"`
}

type EmergencyContactInput struct {
	Name         string  `json:"name" validate:"required,min=1,max=255,safetext"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,min=5,max=20,phone"`
	Relationship *string `json:"relationship,omitempty" validate:"omitempty,min=1,max=100,safetext"`
}

type CreateMemberRequest struct {
	FirstName string `json:"first_name" validate:"required,min=1,max=100,safetext"`
	LastName  string `json:"last_name" validate:"required,min=1,max=100,safetext"`

	Email       *string       `json:"email,omitempty" validate:"omitempty,min=5,max=255,email"`
	Phone       *string       `json:"phone,omitempty" validate:"omitempty,min=5,max=20,phone"`
	DateOfBirth *string       `json:"date_of_birth,omitempty" validate:"omitempty,ymddate"`
	Address     *AddressInput `json:"address,omitempty"`

	MembershipTypeID  *string `json:"membership_type_id,omitempty" validate:"omitempty,uuid"`
	MemberNumber      *string `json:"member_number,omitempty" validate:"omitempty,min=3,max=20,membernum"`
	Status            string  `json:"status,omitempty" validate:"omitempty,oneof=active pending inactive suspended"`
	ContractStartDate *string `json:"contract_start_date,omitempty" validate:"omitempty,ymddate"`
	ContractEndDate   *string `json:"contract_end_date,omitempty" validate:"omitempty,ymddate"`

	HealthNotes      *string                `json:"health_notes,omitempty" validate:"omitempty,max=1000,safetext"`
	EmergencyContact *EmergencyContactInput `json:"emergency_contact,omitempty"`

	Notes *string  `json:"notes,omitempty" validate:"omitempty,max=2000,safetext"`
	Tags  []string `json:"tags,omitempty" validate:"omitempty,max=20,dive,min=1,max=50,safetext"`
}

// UpdateMemberRequest is fully partial: nil means "leave unchanged", never
// "set to null".
type UpdateMemberRequest struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,min=1,max=100,safetext"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,min=1,max=100,safetext"`

	Email       *string       `json:"email,omitempty" validate:"omitempty,min=5,max=255,email"`
	Phone       *string       `json:"phone,omitempty" validate:"omitempty,min=5,max=20,phone"`
	DateOfBirth *string       `json:"date_of_birth,omitempty" validate:"omitempty,ymddate"`
	Address     *AddressInput `json:"address,omitempty"`

	MembershipTypeID  *string `json:"membership_type_id,omitempty" validate:"omitempty,uuid"`
	MemberNumber      *string `json:"member_number,omitempty" validate:"omitempty,min=3,max=20,membernum"`
	Status            *string `json:"status,omitempty" validate:"omitempty,oneof=active pending inactive suspended"`
	ContractStartDate *string `json:"contract_start_date,omitempty" validate:"omitempty,ymddate"`
	ContractEndDate   *string `json:"contract_end_date,omitempty" validate:"omitempty,ymddate"`

	CreditsBalance *int    `json:"credits_balance,omitempty" validate:"omitempty,min=0,max=10000"`
	LoyaltyPoints  *int    `json:"loyalty_points,omitempty" validate:"omitempty,min=0,max=1000000"`
	LoyaltyTier    *string `json:"loyalty_tier,omitempty" validate:"omitempty,oneof=bronze silver gold platinum"`

	HealthNotes      *string                `json:"health_notes,omitempty" validate:"omitempty,max=1000,safetext"`
	EmergencyContact *EmergencyContactInput `json:"emergency_contact,omitempty"`

	Notes *string  `json:"notes,omitempty" validate:"omitempty,max=2000,safetext"`
	Tags  []string `json:"tags,omitempty" validate:"omitempty,max=20,dive,min=1,max=50,safetext"`
}

func (r *UpdateMemberRequest) hasPersonalData() bool {
	return r.FirstName != nil || r.LastName != nil || r.Phone != nil ||
		r.DateOfBirth != nil || r.Address != nil ||
		r.EmergencyContact != nil || r.HealthNotes != nil
}

type MembershipTypeDTO struct {
	Name  string  `json:"name"`
	Color *string `json:"color"`
}

// MemberListDTO is the reduced list projection. Email is left out of list
// views on purpose.
type MemberListDTO struct {
	ID             string             `json:"id"`
	FullName       string             `json:"full_name"`
	Phone          *string            `json:"phone"`
	Status         string             `json:"status"`
	MemberNumber   *string            `json:"member_number"`
	MembershipType *MembershipTypeDTO `json:"membership_type"`
	JoinedAt       time.Time          `json:"joined_at"`
}

type MembershipTypeDetailDTO struct {
	Name              string   `json:"name"`
	PriceMonthlyCents *int64   `json:"price_monthly_cents"`
	Color             *string  `json:"color"`
	Features          []string `json:"features"`
}

type MemberDetailDTO struct {
	ID           string  `json:"id"`
	MemberNumber *string `json:"member_number"`
	Status       string  `json:"status"`

	PersonalInfo struct {
		FirstName   string          `json:"first_name"`
		LastName    string          `json:"last_name"`
		FullName    string          `json:"full_name"`
		Phone       *string         `json:"phone"`
		DateOfBirth *string         `json:"date_of_birth"`
		Address     *domain.Address `json:"address"`
	} `json:"personal_info"`

	Membership struct {
		Type              *MembershipTypeDetailDTO `json:"type"`
		ContractStartDate *string                  `json:"contract_start_date"`
		ContractEndDate   *string                  `json:"contract_end_date"`
		CreditsBalance    int                      `json:"credits_balance"`
		LoyaltyPoints     int                      `json:"loyalty_points"`
		LoyaltyTier       *string                  `json:"loyalty_tier"`
	} `json:"membership"`

	Health struct {
		Notes            *string                  `json:"notes"`
		EmergencyContact *domain.EmergencyContact `json:"emergency_contact"`
	} `json:"health"`

	Meta struct {
		Notes     *string   `json:"notes"`
		Tags      []string  `json:"tags"`
		CreatedAt time.Time `json:"created_at"`
	} `json:"meta"`
}

type MemberStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Pending  int `json:"pending"`
	Inactive int `json:"inactive"`
}

func toListDTO(m domain.Member) MemberListDTO {
	dto := MemberListDTO{
		ID:           m.ID.String(),
		FullName:     unknownMemberName,
		Status:       string(m.Status),
		MemberNumber: m.MemberNumber,
		JoinedAt:     m.CreatedAt,
	}

	if m.Profile != nil {
		name := strings.TrimSpace(m.Profile.FirstName + " " + m.Profile.LastName)
		if name != "" {
			dto.FullName = name
		}
		dto.Phone = m.Profile.Phone
	}

	if m.MembershipType != nil {
		dto.MembershipType = &MembershipTypeDTO{
			Name:  m.MembershipType.Name,
			Color: m.MembershipType.Color,
		}
	}

	return dto
}

func toDetailDTO(m *domain.Member) *MemberDetailDTO {
	dto := &MemberDetailDTO{
		ID:           m.ID.String(),
		MemberNumber: m.MemberNumber,
		Status:       string(m.Status),
	}

	first, last := "Unknown", "Member"
	if m.Profile != nil {
		if m.Profile.FirstName != "" {
			first = m.Profile.FirstName
		}
		if m.Profile.LastName != "" {
			last = m.Profile.LastName
		}
		dto.PersonalInfo.Phone = m.Profile.Phone
		dto.PersonalInfo.DateOfBirth = formatDate(m.Profile.DateOfBirth)
		dto.PersonalInfo.Address = m.Profile.Address
		dto.Health.Notes = m.Profile.HealthNotes
		dto.Health.EmergencyContact = m.Profile.EmergencyContact
	}
	dto.PersonalInfo.FirstName = first
	dto.PersonalInfo.LastName = last
	dto.PersonalInfo.FullName = first + " " + last

	if m.MembershipType != nil {
		dto.Membership.Type = &MembershipTypeDetailDTO{
			Name:              m.MembershipType.Name,
			PriceMonthlyCents: m.MembershipType.PriceMonthlyCents,
			Color:             m.MembershipType.Color,
			Features:          m.MembershipType.Features,
		}
	}
	dto.Membership.ContractStartDate = formatDate(m.ContractStartDate)
	dto.Membership.ContractEndDate = formatDate(m.ContractEndDate)
	dto.Membership.CreditsBalance = m.CreditsBalance
	dto.Membership.LoyaltyPoints = m.LoyaltyPoints
	if m.LoyaltyTier != nil {
		tier := string(*m.LoyaltyTier)
		dto.Membership.LoyaltyTier = &tier
	}

	dto.Meta.Notes = m.Notes
	dto.Meta.Tags = m.Tags
	if dto.Meta.Tags == nil {
		dto.Meta.Tags = []string{}
	}
	dto.Meta.CreatedAt = m.CreatedAt

	return dto
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func parseDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &t
}
