package domain

// FermentType classifies the fermentation method of a ferment. The type
// drives the reminder schedule generated when a ferment becomes active.
type FermentType string

// Possible ferment type values.
const (
	TypeKombucha   FermentType = "Kombucha"
	TypeKimchi     FermentType = "Kimchi"
	TypeSauerkraut FermentType = "Sauerkraut"
	TypeKefir      FermentType = "Kefir"
	TypePickles    FermentType = "Pickles"
	TypeSourdough  FermentType = "Sourdough"
	TypeYogurt     FermentType = "Yogurt"
	TypeMiso       FermentType = "Miso"
	TypeOther      FermentType = "Other"
)

// AllTypes lists every valid ferment type.
func AllTypes() []FermentType {
	return []FermentType{
		TypeKombucha, TypeKimchi, TypeSauerkraut, TypeKefir, TypePickles,
		TypeSourdough, TypeYogurt, TypeMiso, TypeOther,
	}
}

// IsValid reports whether the type is one of the closed-set values.
// The empty string is not valid; callers that tolerate an absent type
// (the scheduler) handle that case explicitly.
func (t FermentType) IsValid() bool {
	switch t {
	case TypeKombucha, TypeKimchi, TypeSauerkraut, TypeKefir, TypePickles,
		TypeSourdough, TypeYogurt, TypeMiso, TypeOther:
		return true
	default:
		return false
	}
}
