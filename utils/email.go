package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

// BookingMail holds the fields rendered into the notification mails.
type BookingMail struct {
	BookingID    uint
	GuestName    string
	HotelName    string
	RoomName     string
	CheckInDate  string
	CheckOutDate string
	Guests       int
	TotalPrice   float64
	RefundAmount float64
}

// SendBookingConfirmation mails the guest after a successful booking. When
// SMTP is not configured the mail is logged instead so local setups keep
// working.
func SendBookingConfirmation(toEmail string, m BookingMail) error {
	subject := fmt.Sprintf("Booking confirmation #%d - BookingAI", m.BookingID)
	plain := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your booking is confirmed.\n\n"+
			"Hotel: %s\nRoom: %s\nCheck-in: %s\nCheck-out: %s\nGuests: %d\nTotal: %.0f\n\n"+
			"We look forward to welcoming you.\n",
		m.GuestName, m.HotelName, m.RoomName, m.CheckInDate, m.CheckOutDate, m.Guests, m.TotalPrice,
	)
	return sendMail(toEmail, subject, plain)
}

// SendBookingCancellation mails the guest after a cancellation, including
// the refunded amount when the booking was already paid.
func SendBookingCancellation(toEmail string, m BookingMail) error {
	subject := fmt.Sprintf("Booking cancellation #%d - BookingAI", m.BookingID)
	refundLine := ""
	if m.RefundAmount > 0 {
		refundLine = fmt.Sprintf("Refund amount: %.0f\n", m.RefundAmount)
	}
	plain := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your booking at %s (%s, %s to %s) has been cancelled.\n%s\n"+
			"We hope to see you another time.\n",
		m.GuestName, m.HotelName, m.RoomName, m.CheckInDate, m.CheckOutDate, refundLine,
	)
	return sendMail(toEmail, subject, plain)
}

func sendMail(toEmail, subject, plainBody string) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USERNAME")
	smtpPass := os.Getenv("SMTP_PASSWORD")
	fromName := os.Getenv("SMTP_FROM_NAME")

	if smtpUser == "" || smtpPass == "" || smtpHost == "" || smtpPort == "" {
		log.Printf("[MOCK EMAIL] to:%s subject:%q", toEmail, subject)
		return nil
	}

	from := fmt.Sprintf("%s <%s>", fromName, smtpUser)
	auth := smtp.PlainAuth("", smtpUser, smtpPass, smtpHost)
	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", toEmail))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(plainBody + "\r\n")

	if err := smtp.SendMail(addr, auth, smtpUser, []string{toEmail}, []byte(sb.String())); err != nil {
		log.Printf("Failed to send mail to %s: %v", toEmail, err)
		return err
	}
	return nil
}
