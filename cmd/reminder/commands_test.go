package reminder

import (
	"testing"

	"github.com/ValentinKolb/tKV/app/reminder"
	"github.com/stretchr/testify/require"
)

func TestFormatHandleResponse(t *testing.T) {
	text := "buy milk"
	ts := uint64(0)

	tests := []struct {
		name string
		res  reminder.HandleResponse
		want string
	}{
		{"record", reminder.HandleResponse{Record: &reminder.RecordResponse{Status: "Reminder recorded!"}}, "Reminder recorded!"},
		{"not found", reminder.HandleResponse{Read: &reminder.ReadResponse{Status: "No reminders found."}}, "No reminders found."},
		{"found", reminder.HandleResponse{Read: &reminder.ReadResponse{Status: "Reminder found!", Reminder: &text, Timestamp: &ts}},
			"Reminder found!\nreminder=buy milk, recorded=1970-01-01T00:00:00Z"},
		{"empty", reminder.HandleResponse{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, formatHandleResponse(tt.res))
		})
	}
}
