package model

// Step identifies one phase of the reservation wizard.
type Step string

const (
	StepRentalDetails Step = "rental_details"
	StepCustomerInfo  Step = "customer_info"
	StepConfirm       Step = "confirm"
	StepConfirmed     Step = "confirmed"
)

// DriverChoice selects between driving yourself and renting with a driver.
type DriverChoice string

const (
	DriverSelf DriverChoice = "self_drive"
	DriverWith DriverChoice = "with_driver"
)

// Selection is the full set of user-chosen inputs at a point in time.
// Dates are YYYY-MM-DD and times HH:MM, exactly as entered; coercion
// happens at submission, not here.
type Selection struct {
	PickupLocation string       `json:"pickupLocation"`
	ReturnLocation string       `json:"returnLocation"`
	PickupDate     string       `json:"pickupDate"`
	ReturnDate     string       `json:"returnDate"`
	PickupTime     string       `json:"pickupTime"`
	ReturnTime     string       `json:"returnTime"`
	FullName       string       `json:"fullName"`
	Email          string       `json:"email"`
	Phone          string       `json:"phone"`
	Age            string       `json:"age"`
	DriverLicense  string       `json:"driverLicense"`
	Accessories    []string     `json:"accessories"`
	InsuranceID    string       `json:"insuranceId"`
	Driver         DriverChoice `json:"driver"`
}
