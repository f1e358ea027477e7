package domain

// DriverLicenseType represents the license class held by a deliverer.
type DriverLicenseType string

// List of possible driver license classes
const (
	LicenseA  DriverLicenseType = "A"
	LicenseB  DriverLicenseType = "B"
	LicenseAB DriverLicenseType = "A+B"
)

// Deliverer represents a registered deliverer. Owned by the user directory;
// this core only reads it.
type Deliverer struct {
	ID                  int64
	Name                string
	CNPJ                string
	DriverLicenseNumber string
	DriverLicenseType   DriverLicenseType
}

// Valid checks if the DriverLicenseType is valid
func (t DriverLicenseType) Valid() bool {
	switch t {
	case LicenseA, LicenseB, LicenseAB:
		return true
	}
	return false
}

// AllowsMotorcycle reports whether the license class permits renting a
// motorcycle. Class B alone does not.
func (t DriverLicenseType) AllowsMotorcycle() bool {
	return t == LicenseA || t == LicenseAB
}
