package seatplan

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"skybook/internal/models"
)

func TestToggleSeatSkipsBookedSeats(t *testing.T) {
	p := New([]string{"2", "5"})
	p.SetPassengerCount(2)

	p.ToggleSeat("1")
	p.ToggleSeat("2") // booked, ignored
	p.ToggleSeat("3")

	assert.Equal(t, []string{"1", "3"}, p.Selected())
	passengers := p.Passengers()
	assert.Equal(t, "1", passengers[0].SeatNumber)
	assert.Equal(t, "3", passengers[1].SeatNumber)
}

func TestToggleSeatRespectsPassengerCount(t *testing.T) {
	p := New(nil)
	p.SetPassengerCount(2)

	p.ToggleSeat("1")
	p.ToggleSeat("2")
	p.ToggleSeat("3") // selection full, ignored

	assert.Equal(t, []string{"1", "2"}, p.Selected())
}

func TestDeselectShiftsLaterPassengers(t *testing.T) {
	p := New(nil)
	p.SetPassengerCount(3)

	p.ToggleSeat("10")
	p.ToggleSeat("11")
	p.ToggleSeat("12")
	p.ToggleSeat("10") // deselect the first pick

	assert.Equal(t, []string{"11", "12"}, p.Selected())
	passengers := p.Passengers()
	assert.Equal(t, "11", passengers[0].SeatNumber)
	assert.Equal(t, "12", passengers[1].SeatNumber)
	assert.Equal(t, "", passengers[2].SeatNumber)
}

func TestSetPassengerCountClearsSelection(t *testing.T) {
	p := New(nil)
	p.SetPassengerCount(2)
	p.ToggleSeat("1")
	p.ToggleSeat("3")

	p.SetPassengerCount(1)

	assert.Empty(t, p.Selected())
	passengers := p.Passengers()
	assert.Len(t, passengers, 1)
	assert.Equal(t, "", passengers[0].SeatNumber)
}

func TestSetPassengerCountClamps(t *testing.T) {
	booked := make([]string, 0, TotalSeats-2)
	for i := 1; i <= TotalSeats-2; i++ {
		booked = append(booked, strconv.Itoa(i))
	}
	p := New(booked)

	assert.Equal(t, 2, p.SetPassengerCount(5)) // only two free seats
	assert.Equal(t, 1, p.SetPassengerCount(0))
	assert.Equal(t, 1, p.SetPassengerCount(-3))
}

func TestSeatStatusPrecedence(t *testing.T) {
	p := New([]string{"4"})
	p.SetPassengerCount(1)
	p.ToggleSeat("7")

	assert.Equal(t, SeatBooked, p.SeatStatus("4"))
	assert.Equal(t, SeatSelected, p.SeatStatus("7"))
	assert.Equal(t, SeatAvailable, p.SeatStatus("8"))
}

func TestSelectionNeverIntersectsBooked(t *testing.T) {
	p := New([]string{"1", "2", "3"})
	p.SetPassengerCount(4)

	for i := 1; i <= TotalSeats; i++ {
		p.ToggleSeat(strconv.Itoa(i))
	}

	for _, seat := range p.Selected() {
		assert.Equal(t, SeatSelected, p.SeatStatus(seat))
	}
	assert.LessOrEqual(t, len(p.Selected()), 4)
}

func TestToggleSeatIgnoresUnknownLabels(t *testing.T) {
	p := New(nil)
	p.SetPassengerCount(2)

	p.ToggleSeat("0")
	p.ToggleSeat("73")
	p.ToggleSeat("A1")

	assert.Empty(t, p.Selected())
}

func TestSetPassengerKeepsAssignedSeat(t *testing.T) {
	p := New(nil)
	p.SetPassengerCount(2)
	p.ToggleSeat("5")

	ok := p.SetPassenger(0, "Alice", 34, models.GenderFemale, models.MealVeg)
	assert.True(t, ok)

	passengers := p.Passengers()
	assert.Equal(t, "Alice", passengers[0].Name)
	assert.Equal(t, "5", passengers[0].SeatNumber)

	assert.False(t, p.SetPassenger(2, "Bob", 40, models.GenderMale, models.MealNone))
}

func TestRows(t *testing.T) {
	rows := Rows()

	assert.Len(t, rows, TotalSeats/SeatsPerRow)
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, rows[0])
	assert.Equal(t, strconv.Itoa(TotalSeats), rows[len(rows)-1][SeatsPerRow-1])
}
