package models

// Semester identifies which academic-calendar semester a term due date is
// anchored to.
type Semester int

const (
	Semester1 Semester = 1
	Semester2 Semester = 2
)

// FeeStatus defines the payment state of a single hostel-fee term.
type FeeStatus string

const (
	FeePaid   FeeStatus = "paid"
	FeeUnpaid FeeStatus = "unpaid"
)

// PaymentStatus defines the status of a payment
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// Payment types recognized by the ledger. Only hostel_fee payments count
// toward term fee status.
const (
	PaymentTypeHostelFee = "hostel_fee"
	PaymentTypeMessFee   = "mess_fee"
	PaymentTypeOther     = "other"
)

// Gender defines the possible gender values for a student.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
	Other  Gender = "other"
)

// NumTerms is the number of fee installments in an academic year.
const NumTerms = 3
