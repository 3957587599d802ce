package members

import (
	"context"
	"errors"
	"log"
	"strings"

	"fitcrm/internal/domain"
	"fitcrm/internal/pkg/validator"
	"fitcrm/internal/session"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const membersListPath = "/dashboard/members"

// Service is the member data access layer. Every read and write takes the
// caller's verified session and is scoped to the session's studio; rows of
// other studios are unreachable and indistinguishable from missing ones.
type Service struct {
	members  MemberStore
	profiles ProfileStore
	views    ViewInvalidator
}

func NewService(members MemberStore, profiles ProfileStore, views ViewInvalidator) *Service {
	return &Service{
		members:  members,
		profiles: profiles,
		views:    views,
	}
}

// List returns the studio's members, newest first, as list DTOs.
func (s *Service) List(ctx context.Context, sess *session.Session) ([]MemberListDTO, error) {
	if !sess.HasStudio() {
		return nil, ErrNoStudioAssigned
	}

	rows, err := s.members.ListByStudio(ctx, *sess.StudioID)
	if err != nil {
		log.Printf("members: list failed for studio %s: %v", sess.StudioID, err)
		return nil, errors.New("failed to fetch members")
	}

	dtos := make([]MemberListDTO, 0, len(rows))
	for _, m := range rows {
		dtos = append(dtos, toListDTO(m))
	}
	return dtos, nil
}

// GetByID queries by id and studio together, so even a guessed id of
// another tenant yields ErrMemberNotFound.
func (s *Service) GetByID(ctx context.Context, sess *session.Session, id uuid.UUID) (*MemberDetailDTO, error) {
	if !sess.HasStudio() {
		return nil, ErrNoStudioAssigned
	}

	m, err := s.members.GetByIDAndStudio(ctx, id, *sess.StudioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		log.Printf("members: fetch %s failed for studio %s: %v", id, sess.StudioID, err)
		return nil, errors.New("failed to fetch member")
	}

	return toDetailDTO(m), nil
}

// Stats counts statuses in application code; no store-side aggregation is
// assumed.
func (s *Service) Stats(ctx context.Context, sess *session.Session) (*MemberStats, error) {
	if !sess.HasStudio() {
		return nil, ErrNoStudioAssigned
	}

	statuses, err := s.members.StatusesByStudio(ctx, *sess.StudioID)
	if err != nil {
		log.Printf("members: stats failed for studio %s: %v", sess.StudioID, err)
		return nil, errors.New("failed to fetch member stats")
	}

	stats := &MemberStats{Total: len(statuses)}
	for _, st := range statuses {
		switch st {
		case domain.StatusActive:
			stats.Active++
		case domain.StatusPending:
			stats.Pending++
		case domain.StatusInactive:
			stats.Inactive++
		}
	}
	return stats, nil
}

// Search matches first/last name case-insensitively within the studio.
// Queries under two characters are valid but unhelpful input and return an
// empty result without touching the store.
func (s *Service) Search(ctx context.Context, sess *session.Session, query string) ([]MemberListDTO, error) {
	if !sess.HasStudio() {
		return nil, ErrNoStudioAssigned
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if len(q) < searchMinLength {
		return []MemberListDTO{}, nil
	}

	rows, err := s.members.SearchByName(ctx, *sess.StudioID, q, searchMaxHits)
	if err != nil {
		log.Printf("members: search failed for studio %s: %v", sess.StudioID, err)
		return nil, errors.New("failed to search members")
	}

	dtos := make([]MemberListDTO, 0, len(rows))
	for _, m := range rows {
		dtos = append(dtos, toListDTO(m))
	}
	return dtos, nil
}

// Create validates the input, then inserts the backing profile and the
// member in one transaction. The email field is validated for inline form
// feedback but not stored here; login email lives on the user record.
func (s *Service) Create(ctx context.Context, sess *session.Session, req CreateMemberRequest) ActionResult {
	if !sess.HasStudio() {
		return failure(ErrNoStudioAssigned.Error())
	}

	if fe := validator.FirstError(req); fe != nil {
		return fieldFailure(fe)
	}

	profile := &domain.Profile{
		StudioID:    *sess.StudioID,
		Role:        domain.RoleMember,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Phone:       req.Phone,
		DateOfBirth: parseDate(req.DateOfBirth),
		HealthNotes: req.HealthNotes,
	}
	if req.Address != nil {
		profile.Address = toAddress(req.Address)
	}
	if req.EmergencyContact != nil {
		profile.EmergencyContact = toEmergencyContact(req.EmergencyContact)
	}

	status := domain.StatusPending
	if req.Status != "" {
		status = domain.MemberStatus(req.Status)
	}

	member := &domain.Member{
		StudioID:          *sess.StudioID,
		MemberNumber:      req.MemberNumber,
		Status:            status,
		ContractStartDate: parseDate(req.ContractStartDate),
		ContractEndDate:   parseDate(req.ContractEndDate),
		Notes:             req.Notes,
		Tags:              req.Tags,
	}
	if req.MembershipTypeID != nil {
		typeID, err := uuid.Parse(*req.MembershipTypeID)
		if err != nil {
			return failure("membership_type_id: must be a valid UUID")
		}
		member.MembershipTypeID = &typeID
	}

	if err := s.members.CreateWithProfile(ctx, profile, member); err != nil {
		log.Printf("members: create failed for studio %s: %v", sess.StudioID, err)
		return failure("Failed to create member - please contact support")
	}

	s.invalidate(*sess.StudioID, membersListPath)

	return success(map[string]string{"id": member.ID.String()})
}

// Update applies only the supplied fields. The ownership re-fetch is scoped
// by id and studio, so cross-tenant targets fail as not found.
func (s *Service) Update(ctx context.Context, sess *session.Session, id string, req UpdateMemberRequest) ActionResult {
	if !sess.HasStudio() {
		return failure(ErrNoStudioAssigned.Error())
	}

	memberID, err := uuid.Parse(id)
	if err != nil {
		return failure("Invalid member ID")
	}

	if fe := validator.FirstError(req); fe != nil {
		return fieldFailure(fe)
	}

	existing, err := s.members.GetByIDAndStudio(ctx, memberID, *sess.StudioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return failure(ErrMemberNotFound.Error())
		}
		log.Printf("members: update ownership check failed for %s: %v", memberID, err)
		return failure("Failed to update member - please contact support")
	}

	if req.hasPersonalData() {
		profileFields := map[string]interface{}{}
		if req.FirstName != nil {
			profileFields["first_name"] = *req.FirstName
		}
		if req.LastName != nil {
			profileFields["last_name"] = *req.LastName
		}
		if req.Phone != nil {
			profileFields["phone"] = *req.Phone
		}
		if req.DateOfBirth != nil {
			profileFields["date_of_birth"] = parseDate(req.DateOfBirth)
		}
		if req.Address != nil {
			profileFields["address"] = toAddress(req.Address)
		}
		if req.EmergencyContact != nil {
			profileFields["emergency_contact"] = toEmergencyContact(req.EmergencyContact)
		}
		if req.HealthNotes != nil {
			profileFields["health_notes"] = *req.HealthNotes
		}

		if err := s.profiles.UpdateFields(ctx, existing.ProfileID, profileFields); err != nil {
			log.Printf("members: profile update failed for %s: %v", memberID, err)
			return failure("Failed to update member - please contact support")
		}
	}

	memberFields := map[string]interface{}{}
	if req.MembershipTypeID != nil {
		typeID, err := uuid.Parse(*req.MembershipTypeID)
		if err != nil {
			return failure("membership_type_id: must be a valid UUID")
		}
		memberFields["membership_type_id"] = typeID
	}
	if req.MemberNumber != nil {
		memberFields["member_number"] = *req.MemberNumber
	}
	if req.Status != nil {
		memberFields["status"] = *req.Status
	}
	if req.ContractStartDate != nil {
		memberFields["contract_start_date"] = parseDate(req.ContractStartDate)
	}
	if req.ContractEndDate != nil {
		memberFields["contract_end_date"] = parseDate(req.ContractEndDate)
	}
	if req.CreditsBalance != nil {
		memberFields["credits_balance"] = *req.CreditsBalance
	}
	if req.LoyaltyPoints != nil {
		memberFields["loyalty_points"] = *req.LoyaltyPoints
	}
	if req.LoyaltyTier != nil {
		memberFields["loyalty_tier"] = *req.LoyaltyTier
	}
	if req.Notes != nil {
		memberFields["notes"] = *req.Notes
	}
	if req.Tags != nil {
		memberFields["tags"] = domain.StringList(req.Tags)
	}

	if _, err := s.members.UpdateFields(ctx, memberID, *sess.StudioID, memberFields); err != nil {
		log.Printf("members: update failed for %s: %v", memberID, err)
		return failure("Failed to update member - please contact support")
	}

	s.invalidate(*sess.StudioID, membersListPath, membersListPath+"/"+id)

	return success(nil)
}

// Delete is a soft delete: status flips to inactive in a single write that
// carries the tenant filter. The result is a redirect, not an error.
func (s *Service) Delete(ctx context.Context, sess *session.Session, id string) ActionResult {
	if !sess.HasStudio() {
		return failure(ErrNoStudioAssigned.Error())
	}

	memberID, err := uuid.Parse(id)
	if err != nil {
		return failure("Invalid member ID")
	}

	rows, err := s.members.SetStatus(ctx, memberID, *sess.StudioID, domain.StatusInactive)
	if err != nil {
		log.Printf("members: delete failed for %s: %v", memberID, err)
		return failure("Failed to delete member - please contact support")
	}
	if rows == 0 {
		return failure(ErrMemberNotFound.Error())
	}

	s.invalidate(*sess.StudioID, membersListPath)

	return redirect(membersListPath)
}

// Restore flips an inactive member back to active. Unlike Delete it stays
// on the page, so the result is a plain success.
func (s *Service) Restore(ctx context.Context, sess *session.Session, id string) ActionResult {
	if !sess.HasStudio() {
		return failure(ErrNoStudioAssigned.Error())
	}

	memberID, err := uuid.Parse(id)
	if err != nil {
		return failure("Invalid member ID")
	}

	rows, err := s.members.SetStatus(ctx, memberID, *sess.StudioID, domain.StatusActive)
	if err != nil {
		log.Printf("members: restore failed for %s: %v", memberID, err)
		return failure("Failed to restore member - please contact support")
	}
	if rows == 0 {
		return failure(ErrMemberNotFound.Error())
	}

	s.invalidate(*sess.StudioID, membersListPath, membersListPath+"/"+id)

	return success(nil)
}

func (s *Service) invalidate(studioID uuid.UUID, paths ...string) {
	if s.views != nil {
		s.views.Invalidate(studioID, paths...)
	}
}

func toAddress(in *AddressInput) *domain.Address {
	addr := &domain.Address{}
	if in.Street != nil {
		addr.Street = *in.Street
	}
	if in.City != nil {
		addr.City = *in.City
	}
	if in.PostalCode != nil {
		addr.PostalCode = *in.PostalCode
	}
	if in.Country != nil {
		addr.Country = *in.Country
	}
	return addr
}

func toEmergencyContact(in *EmergencyContactInput) *domain.EmergencyContact {
	ec := &domain.EmergencyContact{Name: in.Name}
	if in.Phone != nil {
		ec.Phone = *in.Phone
	}
	if in.Relationship != nil {
		ec.Relationship = *in.Relationship
	}
	return ec
}
