package enums

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func ParseGender(raw string) (Gender, bool) {
	switch Gender(raw) {
	case GenderMale:
		return GenderMale, true
	case GenderFemale:
		return GenderFemale, true
	default:
		return "", false
	}
}
