package services

// ProfileSummary is the soft completion score shown on the dashboard. It
// deliberately checks a wider field list than the hard redirect gate (photo,
// CV, LinkedIn count here) and is never used for navigation decisions. The two
// predicates are kept as distinct names on purpose.
type ProfileSummary struct {
	CompletionPercent int
	MissingFields     []string
}

func SummarizeProfile(snapshot ProfileSnapshot) ProfileSummary {
	fields := summaryFieldsFor(ParseRole(snapshot.RoleName))

	missing := []string{}
	filled := 0
	for _, field := range fields {
		if summaryFieldFilled(snapshot, field) {
			filled++
			continue
		}
		missing = append(missing, string(field))
	}

	percent := 0
	if len(fields) > 0 {
		percent = filled * 100 / len(fields)
	}
	return ProfileSummary{CompletionPercent: percent, MissingFields: missing}
}

func summaryFieldsFor(role Role) []ProfileField {
	switch role {
	case RoleExpert:
		return []ProfileField{
			FieldName, FieldCountry, FieldProfession, FieldBio,
			FieldProfilePhoto, FieldCV, FieldLinkedin,
		}
	case RoleCustomer:
		return []ProfileField{
			FieldName, FieldCountry, FieldCompanyName, FieldJobTitle,
			FieldCompanyDescription, FieldProfilePhoto, FieldLinkedin,
		}
	default:
		return []ProfileField{FieldName, FieldCountry, FieldRole}
	}
}

func summaryFieldFilled(snapshot ProfileSnapshot, field ProfileField) bool {
	switch field {
	case FieldName:
		return !isBlank(snapshot.User.FirstName) && !isBlank(snapshot.User.LastName)
	case FieldCountry:
		return snapshot.User.CountryID != nil
	case FieldRole:
		return snapshot.User.RoleID != nil && ParseRole(snapshot.RoleName) != RoleUnset
	case FieldProfilePhoto:
		return !isBlank(snapshot.User.AvatarURL)
	case FieldCV:
		return !isBlank(snapshot.User.CVURL)
	case FieldLinkedin:
		return !isBlank(snapshot.User.LinkedinProfile)
	default:
		if !isBlank(snapshot.scalarValue(field)) {
			return true
		}
		return snapshot.collectionLen(field) >= 1
	}
}
