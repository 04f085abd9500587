package availability

import (
	"fmt"

	"github.com/jammission/backend/internal/models"
	"gorm.io/gorm"
)

// GuardError is the validation failure returned when a booking asks for
// more tickets than the event has left. It surfaces on the tickets field
// of the originating form.
type GuardError struct {
	Available uint
}

func (e *GuardError) Error() string {
	return fmt.Sprintf("Only %d tickets are available.", e.Available)
}

// TicketsSold sums tickets over confirmed and paid bookings for the
// event. Pending bookings do not hold capacity.
func TicketsSold(db *gorm.DB, eventID uint) (uint, error) {
	var sold int64
	err := db.Model(&models.Booking{}).
		Where("event_id = ? AND status IN ?", eventID, []string{models.BookingConfirmed, models.BookingPaid}).
		Select("COALESCE(SUM(tickets), 0)").
		Scan(&sold).Error
	if err != nil {
		return 0, err
	}
	return uint(sold), nil
}

func Available(db *gorm.DB, event *models.Event) (uint, error) {
	sold, err := TicketsSold(db, event.ID)
	if err != nil {
		return 0, err
	}
	if sold >= event.Capacity {
		return 0, nil
	}
	return event.Capacity - sold, nil
}

// Check validates the requested ticket count once, at submission time.
// There is no reservation hold; concurrent submissions can both pass.
func Check(db *gorm.DB, event *models.Event, requested uint) error {
	avail, err := Available(db, event)
	if err != nil {
		return err
	}
	if requested > avail {
		return &GuardError{Available: avail}
	}
	return nil
}
