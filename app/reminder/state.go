package reminder

import (
	"github.com/ValentinKolb/tKV/lib/typed"
)

// Config is the configuration set at Init
type Config struct {
	MaxSize uint64
}

// State holds the usage statistics
type State struct {
	ReminderCount uint64
}

// Reminder is the reminder of one sender
type Reminder struct {
	Content   []byte
	Timestamp uint64
}

const (
	configKey         = "config"
	stateKey          = "state"
	reminderNamespace = "reminder"
)

// NewCatalog creates a catalog with the state types of the reminder application registered
func NewCatalog(opts ...typed.Option) *typed.Catalog {
	c := typed.NewCatalog(opts...)
	typed.MustRegisterStatic[Config](c, []byte(configKey))
	typed.MustRegisterStatic[State](c, []byte(stateKey))
	typed.MustRegisterDynamic[Reminder](c, reminderNamespace)
	return c
}
