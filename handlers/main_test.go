package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anjiri1684/tutor_marketplace/database"
	"github.com/anjiri1684/tutor_marketplace/models"
	"github.com/anjiri1684/tutor_marketplace/routes"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret"

// envelope mirrors the uniform response shape of every endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

// setupTestApp wires a fresh in-memory database and the full route table.
// The connection pool is capped at one so every query sees the same
// in-memory SQLite instance.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", testJWTSecret)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		SkipDefaultTransaction:                   true,
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Teacher{},
		&models.Student{},
		&models.Subject{},
		&models.PricingTier{},
		&models.TeacherSubject{},
		&models.AvailabilitySlot{},
		&models.Document{},
		&models.Booking{},
		&models.PaymentProof{},
	))

	database.DB = db

	app := fiber.New()
	routes.AuthRoutes(app)
	routes.ProfileRoutes(app)
	routes.SubjectRoutes(app)
	routes.TeacherRoutes(app)
	routes.BookingRoutes(app)
	routes.PaymentRoutes(app)
	routes.AdminRoutes(app)
	routes.UploadRoutes(app)

	return app
}

func tokenFor(t *testing.T, userID uuid.UUID, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		// CSV endpoints answer with non-JSON bodies; ignore decode failures.
		_ = json.Unmarshal(raw, &env)
	}
	return resp, env
}

func createUser(t *testing.T, fullName, email, role string) models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		FullName: fullName,
		Email:    email,
		Password: string(hashed),
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func createStudent(t *testing.T, email, gradeLevel string) models.User {
	t.Helper()
	user := createUser(t, "Student "+email, email, models.RoleStudent)
	student := models.Student{UserID: user.ID, GradeLevel: gradeLevel}
	require.NoError(t, database.DB.Create(&student).Error)
	return user
}

func createTeacher(t *testing.T, email, meetingLink string) models.User {
	t.Helper()
	user := createUser(t, "Teacher "+email, email, models.RoleTeacher)
	teacher := models.Teacher{
		UserID:             user.ID,
		VerificationStatus: models.VerificationApproved,
		IsLive:             true,
	}
	if meetingLink != "" {
		teacher.MeetingLink = &meetingLink
	}
	require.NoError(t, database.DB.Create(&teacher).Error)
	return user
}

func createSubjectWithTier(t *testing.T, name, gradeLevel string, pricePerHour float64) models.Subject {
	t.Helper()
	subject := models.Subject{Name: name, IsActive: true}
	require.NoError(t, database.DB.Create(&subject).Error)

	tier := models.PricingTier{
		SubjectID:    subject.ID,
		GradeLevel:   gradeLevel,
		PricePerHour: pricePerHour,
	}
	require.NoError(t, database.DB.Create(&tier).Error)
	return subject
}

func createBooking(t *testing.T, student, teacher models.User, subject models.Subject, status string, scheduledAt time.Time) models.Booking {
	t.Helper()
	booking := models.Booking{
		StudentID:       student.ID,
		TeacherID:       teacher.ID,
		SubjectID:       subject.ID,
		GradeLevel:      "Grade 6-8 (Middle)",
		ScheduledAt:     scheduledAt,
		DurationMinutes: 60,
		PricePerHour:    18,
		TotalAmount:     18,
		Status:          status,
	}
	require.NoError(t, database.DB.Create(&booking).Error)
	return booking
}
