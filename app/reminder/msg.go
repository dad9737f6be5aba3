package reminder

import (
	"encoding/json"
	"fmt"

	"github.com/ValentinKolb/tKV/lib/ident"
	"github.com/ValentinKolb/tKV/lib/typed"
)

// Env is the context of a message
type Env struct {
	// Sender is the human readable address of the caller
	Sender ident.HumanAddr `json:"sender" yaml:"sender"`
	// Time is the time of the message in seconds
	Time uint64 `json:"time" yaml:"time"`
}

// InitMsg initializes the application
type InitMsg struct {
	MaxSize uint64 `json:"max_size" yaml:"max_size"`
}

// HandleMsg is a state changing message. Exactly one field must be set.
type HandleMsg struct {
	// Record records a new reminder for the sender
	Record *RecordMsg `json:"record,omitempty" yaml:"record,omitempty"`
	// Read requests the current reminder for the sender
	Read *ReadMsg `json:"read,omitempty" yaml:"read,omitempty"`
}

type RecordMsg struct {
	Reminder string `json:"reminder" yaml:"reminder"`
}

type ReadMsg struct{}

// QueryMsg is a read only message. Exactly one field must be set.
type QueryMsg struct {
	// Stats gets basic statistics about the use of the application
	Stats *StatsMsg `json:"stats,omitempty" yaml:"stats,omitempty"`
}

type StatsMsg struct{}

// HandleResponse is the response to a HandleMsg, the field matches the message
type HandleResponse struct {
	Record *RecordResponse `json:"record,omitempty" yaml:"record,omitempty"`
	Read   *ReadResponse   `json:"read,omitempty" yaml:"read,omitempty"`
}

// RecordResponse lets the user know if recording succeeded
type RecordResponse struct {
	Status string `json:"status" yaml:"status"`
}

// ReadResponse carries a status and the current reminder with its timestamp, if it exists
type ReadResponse struct {
	Status    string  `json:"status" yaml:"status"`
	Reminder  *string `json:"reminder" yaml:"reminder"`
	Timestamp *uint64 `json:"timestamp" yaml:"timestamp"`
}

// QueryResponse is the response to a QueryMsg
type QueryResponse struct {
	Stats *StatsResponse `json:"stats,omitempty" yaml:"stats,omitempty"`
}

type StatsResponse struct {
	ReminderCount uint64 `json:"reminder_count" yaml:"reminder_count"`
}

func recordStatus(status string) HandleResponse {
	return HandleResponse{Record: &RecordResponse{Status: status}}
}

func readStatusNotFound() HandleResponse {
	return HandleResponse{Read: &ReadResponse{Status: "No reminders found."}}
}

func readStatusFound(reminder string, timestamp uint64) HandleResponse {
	return HandleResponse{Read: &ReadResponse{
		Status:    "Reminder found!",
		Reminder:  &reminder,
		Timestamp: &timestamp,
	}}
}

// --------------------------------------------------------------------------
// Parsing
// --------------------------------------------------------------------------

// ParseHandleMsg parses a JSON HandleMsg like {"record":{"reminder":"..."}}
func ParseHandleMsg(data []byte) (HandleMsg, error) {
	var msg HandleMsg
	if err := unmarshal(data, &msg, "HandleMsg"); err != nil {
		return msg, err
	}
	return msg, msg.validate()
}

// ParseQueryMsg parses a JSON QueryMsg like {"stats":{}}
func ParseQueryMsg(data []byte) (QueryMsg, error) {
	var msg QueryMsg
	if err := unmarshal(data, &msg, "QueryMsg"); err != nil {
		return msg, err
	}
	return msg, msg.validate()
}

// ParseInitMsg parses a JSON InitMsg like {"max_size":20}
func ParseInitMsg(data []byte) (InitMsg, error) {
	var msg InitMsg
	return msg, unmarshal(data, &msg, "InitMsg")
}

func unmarshal(data []byte, v any, name string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return typed.WrapError(typed.ErrCParse, "Error parsing into type "+name, err)
	}
	return nil
}

func (m HandleMsg) validate() error {
	n := 0
	if m.Record != nil {
		n++
	}
	if m.Read != nil {
		n++
	}
	if n != 1 {
		return typed.NewError(typed.ErrCParse,
			fmt.Sprintf("Error parsing into type HandleMsg: expected exactly one variant, got %d", n))
	}
	return nil
}

func (m QueryMsg) validate() error {
	if m.Stats == nil {
		return typed.NewError(typed.ErrCParse, "Error parsing into type QueryMsg: expected exactly one variant, got 0")
	}
	return nil
}
