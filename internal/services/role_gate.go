package services

// ProfileField identifies a required profile field by its human-readable label,
// the same label surfaced in missing-field lists.
type ProfileField string

const (
	FieldName               ProfileField = "Name"
	FieldCountry            ProfileField = "Country"
	FieldRole               ProfileField = "Role"
	FieldBio                ProfileField = "Bio"
	FieldProfession         ProfileField = "Profession"
	FieldSkills             ProfileField = "Skills"
	FieldTools              ProfileField = "Tools"
	FieldExpertise          ProfileField = "Platform expertise"
	FieldCompanyName        ProfileField = "Company name"
	FieldJobTitle           ProfileField = "Job title"
	FieldCompanyDescription ProfileField = "Company description"
	FieldProfilePhoto       ProfileField = "Profile Photo"
	FieldCV                 ProfileField = "CV"
	FieldLinkedin           ProfileField = "LinkedIn"
)

// FieldSpec is the set of role-specific requirements a profile must satisfy to
// count as complete. Scalars must be non-blank after trimming; Collections must
// hold at least one row.
type FieldSpec struct {
	// Exempt marks roles that bypass completion gating entirely.
	Exempt bool
	// Satisfiable is false when no profile data can ever complete the role.
	Satisfiable bool
	Scalars     []ProfileField
	Collections []ProfileField
}

// RequiredFieldsFor maps a role to its completion requirements. Unknown roles
// behave as RoleUnset and can never be complete.
func RequiredFieldsFor(role Role) FieldSpec {
	switch role {
	case RoleExpert:
		return FieldSpec{
			Satisfiable: true,
			Scalars:     []ProfileField{FieldBio, FieldProfession},
			Collections: []ProfileField{FieldSkills, FieldTools, FieldExpertise},
		}
	case RoleCustomer:
		return FieldSpec{
			Satisfiable: true,
			Scalars:     []ProfileField{FieldCompanyName, FieldJobTitle, FieldCompanyDescription},
		}
	case RoleAdmin:
		return FieldSpec{Exempt: true}
	default:
		return FieldSpec{}
	}
}
