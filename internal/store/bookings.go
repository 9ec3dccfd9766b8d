package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// Booking is one persisted reservation row. Dry runs are stored too so the
// preview trail survives restarts.
type Booking struct {
	BookingID          string
	Kind               string // "flight" or "hotel"
	OfferID            string
	Status             string // "DRY_RUN" or "CONFIRMED"
	ConfirmationNumber string
	Details            map[string]any
	CreatedAt          time.Time
}

// ErrBookingNotFound is returned when a booking id has no row.
var ErrBookingNotFound = errors.New("booking not found")

// SaveBooking inserts one booking row.
func (db *DB) SaveBooking(b Booking) error {
	details, err := json.Marshal(b.Details)
	if err != nil {
		return err
	}
	var conf sql.NullString
	if b.ConfirmationNumber != "" {
		conf = sql.NullString{String: b.ConfirmationNumber, Valid: true}
	}
	_, err = db.Exec(
		"INSERT INTO bookings (booking_id, kind, offer_id, status, confirmation_number, details) VALUES (?, ?, ?, ?, ?, ?)",
		b.BookingID, b.Kind, b.OfferID, b.Status, conf, string(details),
	)
	return err
}

// GetBooking fetches one booking by its booking id.
func (db *DB) GetBooking(bookingID string) (Booking, error) {
	row := db.QueryRow(
		"SELECT booking_id, kind, offer_id, status, confirmation_number, details, created_at FROM bookings WHERE booking_id = ?",
		bookingID,
	)
	return scanBooking(row)
}

// ListBookings returns all bookings with the given status, newest first.
// An empty status returns everything.
func (db *DB) ListBookings(status string) ([]Booking, error) {
	query := "SELECT booking_id, kind, offer_id, status, confirmation_number, details, created_at FROM bookings"
	args := []any{}
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}
	query += " ORDER BY id DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (Booking, error) {
	var b Booking
	var conf sql.NullString
	var details, created string
	err := row.Scan(&b.BookingID, &b.Kind, &b.OfferID, &b.Status, &conf, &details, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Booking{}, ErrBookingNotFound
	}
	if err != nil {
		return Booking{}, err
	}
	if conf.Valid {
		b.ConfirmationNumber = conf.String
	}
	_ = json.Unmarshal([]byte(details), &b.Details)
	b.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", created)
	return b, nil
}
