package booking

// AvailabilityResult reports per-resource verdicts. A nil verdict means the
// resource was not part of the question.
type AvailabilityResult struct {
	DriverAvailable  *bool      `json:"driver_available,omitempty"`
	VehicleAvailable *bool      `json:"vehicle_available,omitempty"`
	Conflicts        []Conflict `json:"conflicts"`
}
