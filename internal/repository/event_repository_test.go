package repository

import (
	"database/sql"
	"testing"
)

func seats(n int64) sql.NullInt64 { return sql.NullInt64{Int64: n, Valid: true} }

func TestBookingGuard(t *testing.T) {
	unlimited := sql.NullInt64{}

	tests := []struct {
		name          string
		hostID        uint64
		userID        uint64
		alreadyBooked bool
		count         int
		max           sql.NullInt64
		wantErr       error
	}{
		{name: "ok with free seats", hostID: 1, userID: 2, count: 3, max: seats(10)},
		{name: "ok unlimited", hostID: 1, userID: 2, count: 100000, max: unlimited},
		{name: "ok last seat", hostID: 1, userID: 2, count: 9, max: seats(10)},
		{name: "host refused", hostID: 2, userID: 2, count: 0, max: seats(10), wantErr: ErrHostBooking},
		{name: "host refused even unlimited", hostID: 2, userID: 2, max: unlimited, wantErr: ErrHostBooking},
		{name: "duplicate refused", hostID: 1, userID: 2, alreadyBooked: true, count: 1, max: seats(10), wantErr: ErrAlreadyBooked},
		{name: "full refused", hostID: 1, userID: 2, count: 10, max: seats(10), wantErr: ErrEventFull},
		{name: "overfull refused", hostID: 1, userID: 2, count: 11, max: seats(10), wantErr: ErrEventFull},
		{name: "zero capacity always full", hostID: 1, userID: 2, count: 0, max: seats(0), wantErr: ErrEventFull},
		{name: "host check wins over duplicate", hostID: 2, userID: 2, alreadyBooked: true, max: seats(1), wantErr: ErrHostBooking},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := bookingGuard(tt.hostID, tt.userID, tt.alreadyBooked, tt.count, tt.max)
			if err != tt.wantErr {
				t.Errorf("bookingGuard() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
