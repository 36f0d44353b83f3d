package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/anjiri1684/tutor_marketplace/database"
	"github.com/anjiri1684/tutor_marketplace/models"
	"github.com/anjiri1684/tutor_marketplace/notifications"
)

// SendClassReminders emails both parties of confirmed bookings starting in
// roughly an hour. The 5-minute window matches the cron cadence so each
// booking is picked up exactly once.
func SendClassReminders() {
	log.Println("Running job: SendClassReminders...")

	now := time.Now()
	lowerBound := now.Add(60 * time.Minute)
	upperBound := now.Add(65 * time.Minute)

	var upcomingBookings []models.Booking
	err := database.DB.
		Preload("Student").
		Preload("Teacher").
		Preload("Subject").
		Where("status = ? AND scheduled_at BETWEEN ? AND ?", models.BookingConfirmed, lowerBound, upperBound).
		Find(&upcomingBookings).Error
	if err != nil {
		log.Printf("Error checking for upcoming classes: %v", err)
		return
	}

	for _, booking := range upcomingBookings {
		log.Printf("Sending reminder for booking ID: %s", booking.ID)

		link := ""
		if booking.MeetingLink != nil {
			link = *booking.MeetingLink
		}
		emailSubject := "Reminder: Your Class Starts in 1 Hour!"
		emailBody := fmt.Sprintf(
			"<h1>Class Reminder</h1><p>Hi there,</p><p>Your %s class is scheduled to start at %s.</p><p><b>Meeting Link:</b> <a href='%s'>Join Class</a></p>",
			booking.Subject.Name,
			booking.ScheduledAt.Format(time.Kitchen),
			link,
		)

		go notifications.SendEmail(booking.Student.FullName, booking.Student.Email, emailSubject, emailBody)
		go notifications.SendEmail(booking.Teacher.FullName, booking.Teacher.Email, emailSubject, emailBody)
	}
}
