package models

// UserType is the primitive account category. Granular capabilities live
// in Role; UserType only distinguishes citizens, municipality staff and
// administrators.
type UserType string

const (
	UserTypeCitizen      UserType = "citizen"
	UserTypeAdmin        UserType = "admin"
	UserTypeMunicipality UserType = "municipality_user"
)

// Role is a granular capability held by a user. A municipality user may
// hold several technical roles at once.
type Role string

const (
	RoleUrbanPlanner       Role = "urban_planner"
	RolePublicWorks        Role = "public_works"
	RoleEnvironment        Role = "environment"
	RoleMobility           Role = "mobility"
	RolePublicLighting     Role = "public_lighting"
	RoleWasteManagement    Role = "waste_management"
	RoleExternalMaintainer Role = "external_maintainer"
	RolePublicRelations    Role = "public_relations_officer"
)

// TechnicalRoles are the offices a report can be routed to, including the
// external maintainer capability.
var TechnicalRoles = []Role{
	RoleUrbanPlanner,
	RolePublicWorks,
	RoleEnvironment,
	RoleMobility,
	RolePublicLighting,
	RoleWasteManagement,
	RoleExternalMaintainer,
}

// InternalTechnicalRoles are the technical offices staffed by municipality
// officers. Reports are only ever assigned to these; external maintainers
// receive work by delegation, not by review.
var InternalTechnicalRoles = []Role{
	RoleUrbanPlanner,
	RolePublicWorks,
	RoleEnvironment,
	RoleMobility,
	RolePublicLighting,
	RoleWasteManagement,
}

func IsTechnicalRole(r Role) bool {
	for _, t := range TechnicalRoles {
		if t == r {
			return true
		}
	}
	return false
}

func IsInternalTechnicalRole(r Role) bool {
	return IsTechnicalRole(r) && r != RoleExternalMaintainer
}

func IsExternalMaintainer(r Role) bool {
	return r == RoleExternalMaintainer
}

func IsPublicRelationsOfficer(r Role) bool {
	return r == RolePublicRelations
}

func IsAdmin(t UserType) bool {
	return t == UserTypeAdmin
}

// ParseRole maps a wire string to a known Role. Unknown strings are
// rejected so a typo can never silently grant or deny access.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	if IsTechnicalRole(r) || IsPublicRelationsOfficer(r) {
		return r, true
	}
	return "", false
}
