// Package reminder is a small application built on the typed layer: every sender can
// record one reminder and read it back later, and anyone can query how many reminders
// were recorded in total.
//
// State:
//
//	Config    static key "config"          (max reminder size in bytes)
//	State     static key "state"           (number of recorded reminders)
//	Reminder  namespace "reminder"         (one per sender, keyed by the canonical address)
//
// Messages are JSON with snake_case, externally tagged variants:
//
//	{"max_size": 20}                      InitMsg
//	{"record": {"reminder": "buy milk"}}  HandleMsg
//	{"read": {}}                          HandleMsg
//	{"stats": {}}                         QueryMsg
//
// A reminder that is too long is not an error, the response status says so and nothing
// is stored. The same holds for reading a sender without a reminder.
package reminder
