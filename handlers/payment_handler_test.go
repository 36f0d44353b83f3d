package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/anjiri1684/tutor_marketplace/database"
	"github.com/anjiri1684/tutor_marketplace/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// failBookingUpdates makes every update against the bookings table error out
// until the test ends, so the rollback paths of multi-write transactions can
// be observed.
func failBookingUpdates(t *testing.T) {
	t.Helper()
	injected := errors.New("bookings table unavailable")
	require.NoError(t, database.DB.Callback().Update().Before("gorm:update").Register("test_fail_booking_updates", func(tx *gorm.DB) {
		if tx.Statement.Table == "bookings" {
			_ = tx.AddError(injected)
		}
	}))
	t.Cleanup(func() {
		_ = database.DB.Callback().Update().Remove("test_fail_booking_updates")
	})
}

func TestSubmitPaymentProofMovesBookingUnderReview(t *testing.T) {
	app := setupTestApp(t)

	student := createStudent(t, "amina@example.com", "Grade 6-8 (Middle)")
	teacher := createTeacher(t, "otieno@example.com", "")
	subject := createSubjectWithTier(t, "Math", "Grade 6-8 (Middle)", 18)
	booking := createBooking(t, student, teacher, subject, models.BookingPendingPayment, time.Now().Add(24*time.Hour))

	resp, env := doJSON(t, app, "POST", "/api/v1/payments/bookings/"+booking.ID.String()+"/proof",
		tokenFor(t, student.ID, models.RoleStudent), map[string]string{
			"file_url":  "https://res.cloudinary.com/demo/receipt.jpg",
			"file_name": "receipt.jpg",
		})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var proof models.PaymentProof
	require.NoError(t, json.Unmarshal(env.Data, &proof))
	assert.Equal(t, models.ProofPending, proof.Status)

	var storedBooking models.Booking
	require.NoError(t, database.DB.First(&storedBooking, "id = ?", booking.ID).Error)
	assert.Equal(t, models.BookingPaymentUnderReview, storedBooking.Status)
}

func TestSubmitPaymentProofHidesForeignBookings(t *testing.T) {
	app := setupTestApp(t)

	owner := createStudent(t, "amina@example.com", "Grade 6-8 (Middle)")
	intruder := createStudent(t, "zawadi@example.com", "Grade 6-8 (Middle)")
	teacher := createTeacher(t, "otieno@example.com", "")
	subject := createSubjectWithTier(t, "Math", "Grade 6-8 (Middle)", 18)
	booking := createBooking(t, owner, teacher, subject, models.BookingPendingPayment, time.Now().Add(24*time.Hour))

	// Another student's booking answers 404, not 403, so booking ids
	// cannot be probed for existence.
	resp, _ := doJSON(t, app, "POST", "/api/v1/payments/bookings/"+booking.ID.String()+"/proof",
		tokenFor(t, intruder.ID, models.RoleStudent), map[string]string{
			"file_url":  "https://res.cloudinary.com/demo/receipt.jpg",
			"file_name": "receipt.jpg",
		})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var storedBooking models.Booking
	require.NoError(t, database.DB.First(&storedBooking, "id = ?", booking.ID).Error)
	assert.Equal(t, models.BookingPendingPayment, storedBooking.Status)
}

func TestSubmitPaymentProofRollsBackWhenBookingUpdateFails(t *testing.T) {
	app := setupTestApp(t)

	student := createStudent(t, "amina@example.com", "Grade 6-8 (Middle)")
	teacher := createTeacher(t, "otieno@example.com", "")
	subject := createSubjectWithTier(t, "Math", "Grade 6-8 (Middle)", 18)
	booking := createBooking(t, student, teacher, subject, models.BookingPendingPayment, time.Now().Add(24*time.Hour))

	failBookingUpdates(t)

	resp, _ := doJSON(t, app, "POST", "/api/v1/payments/bookings/"+booking.ID.String()+"/proof",
		tokenFor(t, student.ID, models.RoleStudent), map[string]string{
			"file_url":  "https://res.cloudinary.com/demo/receipt.jpg",
			"file_name": "receipt.jpg",
		})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	// neither write survives: no proof row, booking untouched
	var count int64
	require.NoError(t, database.DB.Model(&models.PaymentProof{}).Count(&count).Error)
	assert.Zero(t, count)

	var storedBooking models.Booking
	require.NoError(t, database.DB.First(&storedBooking, "id = ?", booking.ID).Error)
	assert.Equal(t, models.BookingPendingPayment, storedBooking.Status)
}

func TestReviewPaymentApproveConfirmsBooking(t *testing.T) {
	app := setupTestApp(t)

	student := createStudent(t, "amina@example.com", "Grade 6-8 (Middle)")
	teacher := createTeacher(t, "otieno@example.com", "")
	admin := createUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	subject := createSubjectWithTier(t, "Math", "Grade 6-8 (Middle)", 18)
	booking := createBooking(t, student, teacher, subject, models.BookingPaymentUnderReview, time.Now().Add(24*time.Hour))

	proof := models.PaymentProof{
		BookingID: booking.ID,
		FileURL:   "https://res.cloudinary.com/demo/receipt.jpg",
		FileName:  "receipt.jpg",
		Status:    models.ProofPending,
	}
	require.NoError(t, database.DB.Create(&proof).Error)

	resp, _ := doJSON(t, app, "PUT", "/api/v1/admin/payments/"+proof.ID.String()+"/review",
		tokenFor(t, admin.ID, models.RoleAdmin), map[string]string{"decision": "approved"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var storedProof models.PaymentProof
	var storedBooking models.Booking
	require.NoError(t, database.DB.First(&storedProof, "id = ?", proof.ID).Error)
	require.NoError(t, database.DB.First(&storedBooking, "id = ?", booking.ID).Error)

	assert.Equal(t, models.ProofApproved, storedProof.Status)
	assert.Equal(t, models.BookingConfirmed, storedBooking.Status)
	assert.NotNil(t, storedProof.ReviewedAt)
}

func TestReviewPaymentRejectReopensBooking(t *testing.T) {
	app := setupTestApp(t)

	student := createStudent(t, "amina@example.com", "Grade 6-8 (Middle)")
	teacher := createTeacher(t, "otieno@example.com", "")
	admin := createUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	subject := createSubjectWithTier(t, "Math", "Grade 6-8 (Middle)", 18)
	booking := createBooking(t, student, teacher, subject, models.BookingPaymentUnderReview, time.Now().Add(24*time.Hour))

	proof := models.PaymentProof{
		BookingID: booking.ID,
		FileURL:   "https://res.cloudinary.com/demo/receipt.jpg",
		FileName:  "receipt.jpg",
		Status:    models.ProofPending,
	}
	require.NoError(t, database.DB.Create(&proof).Error)

	resp, _ := doJSON(t, app, "PUT", "/api/v1/admin/payments/"+proof.ID.String()+"/review",
		tokenFor(t, admin.ID, models.RoleAdmin), map[string]string{"decision": "rejected", "notes": "illegible"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var storedProof models.PaymentProof
	var storedBooking models.Booking
	require.NoError(t, database.DB.First(&storedProof, "id = ?", proof.ID).Error)
	require.NoError(t, database.DB.First(&storedBooking, "id = ?", booking.ID).Error)

	assert.Equal(t, models.ProofRejected, storedProof.Status)
	assert.Equal(t, models.BookingPendingPayment, storedBooking.Status)
	require.NotNil(t, storedProof.ReviewNotes)
	assert.Equal(t, "illegible", *storedProof.ReviewNotes)

	// The student may resubmit; the booking goes back under review and both
	// proofs stay on record.
	resp, _ = doJSON(t, app, "POST", "/api/v1/payments/bookings/"+booking.ID.String()+"/proof",
		tokenFor(t, student.ID, models.RoleStudent), map[string]string{
			"file_url":  "https://res.cloudinary.com/demo/receipt2.jpg",
			"file_name": "receipt2.jpg",
		})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var count int64
	require.NoError(t, database.DB.Model(&models.PaymentProof{}).Where("booking_id = ?", booking.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	require.NoError(t, database.DB.First(&storedBooking, "id = ?", booking.ID).Error)
	assert.Equal(t, models.BookingPaymentUnderReview, storedBooking.Status)
}

func TestReviewPaymentRollsBackWhenBookingUpdateFails(t *testing.T) {
	app := setupTestApp(t)

	student := createStudent(t, "amina@example.com", "Grade 6-8 (Middle)")
	teacher := createTeacher(t, "otieno@example.com", "")
	admin := createUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	subject := createSubjectWithTier(t, "Math", "Grade 6-8 (Middle)", 18)
	booking := createBooking(t, student, teacher, subject, models.BookingPaymentUnderReview, time.Now().Add(24*time.Hour))

	proof := models.PaymentProof{
		BookingID: booking.ID,
		FileURL:   "https://res.cloudinary.com/demo/receipt.jpg",
		FileName:  "receipt.jpg",
		Status:    models.ProofPending,
	}
	require.NoError(t, database.DB.Create(&proof).Error)

	failBookingUpdates(t)

	resp, _ := doJSON(t, app, "PUT", "/api/v1/admin/payments/"+proof.ID.String()+"/review",
		tokenFor(t, admin.ID, models.RoleAdmin), map[string]string{"decision": "approved"})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	// the proof update ran first inside the transaction and must be rolled
	// back together with the failed booking update
	var storedProof models.PaymentProof
	require.NoError(t, database.DB.First(&storedProof, "id = ?", proof.ID).Error)
	assert.Equal(t, models.ProofPending, storedProof.Status)
	assert.Nil(t, storedProof.ReviewedAt)

	var storedBooking models.Booking
	require.NoError(t, database.DB.First(&storedBooking, "id = ?", booking.ID).Error)
	assert.Equal(t, models.BookingPaymentUnderReview, storedBooking.Status)
}

func TestReviewPaymentRejectsUnknownDecision(t *testing.T) {
	app := setupTestApp(t)

	student := createStudent(t, "amina@example.com", "Grade 6-8 (Middle)")
	teacher := createTeacher(t, "otieno@example.com", "")
	admin := createUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	subject := createSubjectWithTier(t, "Math", "Grade 6-8 (Middle)", 18)
	booking := createBooking(t, student, teacher, subject, models.BookingPaymentUnderReview, time.Now().Add(24*time.Hour))

	proof := models.PaymentProof{
		BookingID: booking.ID,
		FileURL:   "https://res.cloudinary.com/demo/receipt.jpg",
		FileName:  "receipt.jpg",
		Status:    models.ProofPending,
	}
	require.NoError(t, database.DB.Create(&proof).Error)

	resp, _ := doJSON(t, app, "PUT", "/api/v1/admin/payments/"+proof.ID.String()+"/review",
		tokenFor(t, admin.ID, models.RoleAdmin), map[string]string{"decision": "maybe"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListPendingPaymentsIsAdminOnly(t *testing.T) {
	app := setupTestApp(t)

	student := createStudent(t, "amina@example.com", "Grade 6-8 (Middle)")
	teacher := createTeacher(t, "otieno@example.com", "")
	admin := createUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	subject := createSubjectWithTier(t, "Math", "Grade 6-8 (Middle)", 18)
	booking := createBooking(t, student, teacher, subject, models.BookingPaymentUnderReview, time.Now().Add(24*time.Hour))

	older := models.PaymentProof{BookingID: booking.ID, FileURL: "https://x.example.com/a.jpg", FileName: "a.jpg", Status: models.ProofPending}
	require.NoError(t, database.DB.Create(&older).Error)
	newer := models.PaymentProof{BookingID: booking.ID, FileURL: "https://x.example.com/b.jpg", FileName: "b.jpg", Status: models.ProofPending}
	require.NoError(t, database.DB.Create(&newer).Error)
	// force distinct upload times for a deterministic queue order
	require.NoError(t, database.DB.Model(&older).Update("created_at", time.Now().Add(-time.Hour)).Error)

	resp, _ := doJSON(t, app, "GET", "/api/v1/admin/payments/pending", tokenFor(t, student.ID, models.RoleStudent), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, env := doJSON(t, app, "GET", "/api/v1/admin/payments/pending", tokenFor(t, admin.ID, models.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var proofs []models.PaymentProof
	require.NoError(t, json.Unmarshal(env.Data, &proofs))
	require.Len(t, proofs, 2)
	assert.Equal(t, older.ID, proofs[0].ID, "oldest upload reviewed first")
}

func TestListPaymentsScopedByRole(t *testing.T) {
	app := setupTestApp(t)

	student := createStudent(t, "amina@example.com", "Grade 6-8 (Middle)")
	otherStudent := createStudent(t, "zawadi@example.com", "Grade 6-8 (Middle)")
	teacher := createTeacher(t, "otieno@example.com", "")
	admin := createUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	subject := createSubjectWithTier(t, "Math", "Grade 6-8 (Middle)", 18)

	b1 := createBooking(t, student, teacher, subject, models.BookingPaymentUnderReview, time.Now().Add(24*time.Hour))
	b2 := createBooking(t, otherStudent, teacher, subject, models.BookingPaymentUnderReview, time.Now().Add(24*time.Hour))
	for _, b := range []models.Booking{b1, b2} {
		proof := models.PaymentProof{BookingID: b.ID, FileURL: "https://x.example.com/p.jpg", FileName: "p.jpg", Status: models.ProofPending}
		require.NoError(t, database.DB.Create(&proof).Error)
	}

	var proofs []models.PaymentProof

	resp, env := doJSON(t, app, "GET", "/api/v1/payments/me", tokenFor(t, student.ID, models.RoleStudent), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &proofs))
	assert.Len(t, proofs, 1)

	resp, env = doJSON(t, app, "GET", "/api/v1/payments/me", tokenFor(t, teacher.ID, models.RoleTeacher), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &proofs))
	assert.Len(t, proofs, 2)

	resp, env = doJSON(t, app, "GET", "/api/v1/payments/me", tokenFor(t, admin.ID, models.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &proofs))
	assert.Len(t, proofs, 2)
}
