package reminder

import (
	"encoding/json"
	"testing"

	"github.com/ValentinKolb/tKV/lib/typed"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseHandleMsg(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    HandleMsg
		wantErr bool
	}{
		{name: "record", in: `{"record":{"reminder":"buy milk"}}`, want: record("buy milk")},
		{name: "read", in: `{"read":{}}`, want: read},
		{name: "empty", in: `{}`, wantErr: true},
		{name: "both", in: `{"record":{"reminder":"x"},"read":{}}`, wantErr: true},
		{name: "invalid json", in: `{"record":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHandleMsg([]byte(tt.in))
			if tt.wantErr {
				require.True(t, typed.IsParseErr(err), "unexpected error %v", err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseQueryAndInitMsg(t *testing.T) {
	q, err := ParseQueryMsg([]byte(`{"stats":{}}`))
	require.NoError(t, err)
	require.Equal(t, stats, q)

	_, err = ParseQueryMsg([]byte(`{"unknown":{}}`))
	require.True(t, typed.IsParseErr(err))

	i, err := ParseInitMsg([]byte(`{"max_size":20}`))
	require.NoError(t, err)
	require.Equal(t, InitMsg{MaxSize: 20}, i)

	_, err = ParseInitMsg([]byte(`{"max_size":-1}`))
	require.True(t, typed.IsParseErr(err))
}

func TestResponseJSON(t *testing.T) {
	tests := []struct {
		name string
		res  any
		want string
	}{
		{"record", recordStatus("Reminder recorded!"), `{"record":{"status":"Reminder recorded!"}}`},
		{"read not found", readStatusNotFound(), `{"read":{"status":"No reminders found.","reminder":null,"timestamp":null}}`},
		{"read found", readStatusFound("buy milk", 42), `{"read":{"status":"Reminder found!","reminder":"buy milk","timestamp":42}}`},
		{"stats", QueryResponse{Stats: &StatsResponse{ReminderCount: 3}}, `{"stats":{"reminder_count":3}}`},
		{"handle msg", record("x"), `{"record":{"reminder":"x"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.res)
			require.NoError(t, err)
			require.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestResponseYAML(t *testing.T) {
	data, err := yaml.Marshal(QueryResponse{Stats: &StatsResponse{ReminderCount: 3}})
	require.NoError(t, err)
	require.YAMLEq(t, "stats:\n  reminder_count: 3\n", string(data))
}
