package domain

// Motorcycle represents one unit of the rentable fleet.
type Motorcycle struct {
	ID        int64
	Plate     string
	Year      int
	ModelName string
	// RentalID is the rental currently holding the unit, nil when the unit
	// is free.
	RentalID *int64
}
