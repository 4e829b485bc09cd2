package entity

// Role represents a user role in the system
type Role struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleName    string `gorm:"type:varchar(50);uniqueIndex;not null" json:"role_name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// Relationships
	Users []User `gorm:"foreignKey:RoleID" json:"users,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// Role ID constants
const (
	RoleIDAdmin              = 1
	RoleIDCoordination       = 2
	RoleIDResponsableSecteur = 3
)

// RoleNames constants
const (
	RoleAdmin              = "admin"
	RoleCoordination       = "coordination"
	RoleResponsableSecteur = "responsable_secteur"
)

// Capability strings consulted through the permission predicate.
const (
	CapStatsView           = "statsimpact:view"
	CapStatsViewAll        = "statsimpact:view_all"
	CapAllSecteurs         = "scope:all_secteurs"
	CapParticipantsViewAll = "participants:view_all"
)

var roleCapabilities = map[int][]string{
	RoleIDAdmin: {
		CapStatsView,
		CapStatsViewAll,
		CapAllSecteurs,
		CapParticipantsViewAll,
	},
	RoleIDCoordination: {
		CapStatsView,
		CapStatsViewAll,
		CapAllSecteurs,
		CapParticipantsViewAll,
	},
	// A responsable_secteur only sees their assigned sector.
	RoleIDResponsableSecteur: {
		CapStatsView,
	},
}

// CapabilitiesForRole returns the capability set granted to a role.
// Unknown roles get no capabilities.
func CapabilitiesForRole(roleID int) map[string]bool {
	caps := make(map[string]bool)
	for _, c := range roleCapabilities[roleID] {
		caps[c] = true
	}
	return caps
}
