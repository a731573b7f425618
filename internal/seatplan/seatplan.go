// Package seatplan implements the seat-selection state of one booking
// session: the fixed seat universe, the booked/selected/available partition
// and the passenger roster with positional seat assignment.
package seatplan

import (
	"strconv"

	"skybook/internal/models"
)

const (
	// TotalSeats is the fixed cabin size: 12 rows of 6.
	TotalSeats  = 72
	SeatsPerRow = 6
)

// SeatStatus classifies one seat of the grid.
type SeatStatus string

const (
	SeatBooked    SeatStatus = "booked"
	SeatSelected  SeatStatus = "selected"
	SeatAvailable SeatStatus = "available"
)

// Plan tracks the selection state for one flight. Seat labels are "1".."72".
// Not safe for concurrent use; callers serialize access.
type Plan struct {
	booked     map[string]bool
	selected   []string // insertion order drives positional assignment
	passengers []models.Passenger
}

// New builds a plan over the booked seats of a flight, starting with a
// single-passenger roster. Labels outside the universe are ignored.
func New(bookedSeats []string) *Plan {
	booked := make(map[string]bool, len(bookedSeats))
	for _, seat := range bookedSeats {
		if inUniverse(seat) {
			booked[seat] = true
		}
	}

	p := &Plan{booked: booked}
	p.SetPassengerCount(1)
	return p
}

func inUniverse(label string) bool {
	n, err := strconv.Atoi(label)
	return err == nil && n >= 1 && n <= TotalSeats
}

// PassengerCount returns the roster size.
func (p *Plan) PassengerCount() int {
	return len(p.passengers)
}

// SetPassengerCount resizes the roster, clamping n to [1, free seats], and
// clears the current selection. Selections are deliberately not preserved
// across a count change. Returns the clamped count.
func (p *Plan) SetPassengerCount(n int) int {
	free := TotalSeats - len(p.booked)
	if n > free {
		n = free
	}
	if n < 1 {
		n = 1
	}

	p.passengers = make([]models.Passenger, n)
	for i := range p.passengers {
		p.passengers[i] = models.Passenger{
			Gender: models.GenderMale,
			Meal:   models.MealNone,
		}
	}
	p.selected = nil
	return n
}

// ToggleSeat flips the selection state of one seat. Booked or unknown labels
// are ignored, as is a new pick once every passenger already has a seat.
func (p *Plan) ToggleSeat(label string) {
	if !inUniverse(label) || p.booked[label] {
		return
	}

	if idx := p.selectedIndex(label); idx >= 0 {
		p.selected = append(p.selected[:idx], p.selected[idx+1:]...)
	} else if len(p.selected) < len(p.passengers) {
		p.selected = append(p.selected, label)
	}

	p.assignSeats()
}

func (p *Plan) selectedIndex(label string) int {
	for i, s := range p.selected {
		if s == label {
			return i
		}
	}
	return -1
}

// assignSeats re-projects the selection onto the roster: passenger i gets
// the i-th selected seat or none. Deselecting an earlier seat shifts every
// later passenger's seat; assignment is positional, not sticky.
func (p *Plan) assignSeats() {
	for i := range p.passengers {
		if i < len(p.selected) {
			p.passengers[i].SeatNumber = p.selected[i]
		} else {
			p.passengers[i].SeatNumber = ""
		}
	}
}

// SeatStatus classifies a seat. Booked wins over selected; the two cannot
// overlap, but booked is checked first regardless.
func (p *Plan) SeatStatus(label string) SeatStatus {
	if p.booked[label] {
		return SeatBooked
	}
	if p.selectedIndex(label) >= 0 {
		return SeatSelected
	}
	return SeatAvailable
}

// SetPassenger updates the details of roster position i, keeping the
// assigned seat.
func (p *Plan) SetPassenger(i int, name string, age int, gender models.Gender, meal models.Meal) bool {
	if i < 0 || i >= len(p.passengers) {
		return false
	}
	p.passengers[i].Name = name
	p.passengers[i].Age = age
	p.passengers[i].Gender = gender
	p.passengers[i].Meal = meal
	return true
}

// Passengers returns a copy of the roster in order.
func (p *Plan) Passengers() []models.Passenger {
	out := make([]models.Passenger, len(p.passengers))
	copy(out, p.passengers)
	return out
}

// Selected returns the selection in insertion order.
func (p *Plan) Selected() []string {
	out := make([]string, len(p.selected))
	copy(out, p.selected)
	return out
}

// BookedSeats returns the booked set in label order.
func (p *Plan) BookedSeats() []string {
	out := make([]string, 0, len(p.booked))
	for i := 1; i <= TotalSeats; i++ {
		label := strconv.Itoa(i)
		if p.booked[label] {
			out = append(out, label)
		}
	}
	return out
}

// Complete reports whether every passenger has exactly one seat.
func (p *Plan) Complete() bool {
	return len(p.selected) == len(p.passengers)
}

// Rows lays the universe out as a fixed-width grid for rendering.
func Rows() [][]string {
	rows := make([][]string, 0, TotalSeats/SeatsPerRow)
	for start := 1; start <= TotalSeats; start += SeatsPerRow {
		row := make([]string, 0, SeatsPerRow)
		for n := start; n < start+SeatsPerRow && n <= TotalSeats; n++ {
			row = append(row, strconv.Itoa(n))
		}
		rows = append(rows, row)
	}
	return rows
}
