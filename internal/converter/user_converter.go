package converter

import (
	"sort"

	"stats-impact-backend/internal/delivery/dto"
	"stats-impact-backend/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	caps := make([]string, 0, 4)
	for c := range entity.CapabilitiesForRole(user.RoleID) {
		caps = append(caps, c)
	}
	sort.Strings(caps)

	return &dto.UserResponse{
		ID:             user.ID,
		Email:          user.Email,
		FullName:       user.FullName,
		Role:           user.Role.RoleName,
		SecteurAssigne: user.SecteurAssigne,
		Capabilities:   caps,
		CreatedAt:      user.CreatedAt,
	}
}
