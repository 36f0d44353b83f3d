package models

// Roles are fixed at registration. The only sanctioned role change is the
// admin approval of a teacher application, which promotes student -> teacher.
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

const (
	BookingPendingPayment     = "pending_payment"
	BookingPaymentUnderReview = "payment_under_review"
	BookingConfirmed          = "confirmed"
	BookingCompleted          = "completed"
	BookingCancelled          = "cancelled"
)

const (
	ProofPending  = "pending"
	ProofApproved = "approved"
	ProofRejected = "rejected"
)

const (
	VerificationPending  = "pending"
	VerificationApproved = "approved"
	VerificationRejected = "rejected"
)

func IsValidBookingStatus(s string) bool {
	switch s {
	case BookingPendingPayment, BookingPaymentUnderReview, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}
