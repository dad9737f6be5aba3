package reminder

import (
	"fmt"

	"github.com/ValentinKolb/tKV/lib/ident"
	"github.com/ValentinKolb/tKV/lib/store"
	"github.com/ValentinKolb/tKV/lib/typed"
	"github.com/lni/dragonboat/v4/logger"
)

var log = logger.GetLogger("reminder")

// Contract lets every sender store one reminder and read it back later
type Contract struct {
	catalog *typed.Catalog
}

// New creates the application on top of catalog, see NewCatalog
func New(catalog *typed.Catalog) *Contract {
	return &Contract{catalog: catalog}
}

// Catalog returns the catalog the application stores its state with
func (c *Contract) Catalog() *typed.Catalog {
	return c.catalog
}

// Init stores the configuration and resets the statistics
func (c *Contract) Init(s store.Storage, _ Env, msg InitMsg) error {
	if err := typed.StaticSave(c.catalog, s, &Config{MaxSize: msg.MaxSize}); err != nil {
		return err
	}
	if err := typed.StaticSave(c.catalog, s, &State{ReminderCount: 0}); err != nil {
		return err
	}
	log.Infof("initialized with max size %d", msg.MaxSize)
	return nil
}

// Handle executes a state changing message
func (c *Contract) Handle(s store.Storage, env Env, msg HandleMsg) (HandleResponse, error) {
	if err := msg.validate(); err != nil {
		return HandleResponse{}, err
	}
	switch {
	case msg.Record != nil:
		return c.handleRecord(s, env, msg.Record.Reminder)
	default:
		return c.handleRead(s, env)
	}
}

// Query executes a read only message
func (c *Contract) Query(s store.ReadonlyStorage, msg QueryMsg) (QueryResponse, error) {
	if err := msg.validate(); err != nil {
		return QueryResponse{}, err
	}
	state, err := typed.StaticLoad[State](c.catalog, s)
	if err != nil {
		return QueryResponse{}, err
	}
	return QueryResponse{Stats: &StatsResponse{ReminderCount: state.ReminderCount}}, nil
}

func (c *Contract) handleRecord(s store.Storage, env Env, text string) (HandleResponse, error) {
	config, err := typed.StaticLoad[Config](c.catalog, s)
	if err != nil {
		return HandleResponse{}, err
	}

	if uint64(len(text)) > config.MaxSize {
		return recordStatus(fmt.Sprintf("Reminder byte length exceeds maximum of %d bytes", config.MaxSize)), nil
	}

	reminder := Reminder{
		Content:   []byte(text),
		Timestamp: env.Time,
	}

	sender, err := ident.Canonicalize(env.Sender)
	if err != nil {
		return HandleResponse{}, err
	}

	if err := typed.SaveFor(c.catalog, &reminder, sender).ExecuteSave(s); err != nil {
		return HandleResponse{}, err
	}

	if err := typed.Update(c.catalog, s, func(st *State) { st.ReminderCount++ }); err != nil {
		return HandleResponse{}, err
	}

	log.Debugf("recorded reminder of %d bytes for %s", len(text), sender)
	return recordStatus("Reminder recorded!"), nil
}

func (c *Contract) handleRead(s store.ReadonlyStorage, env Env) (HandleResponse, error) {
	sender, err := ident.Canonicalize(env.Sender)
	if err != nil {
		return HandleResponse{}, err
	}

	reminder, err := typed.LoadFor[Reminder](c.catalog, sender).ExecuteLoad(s)
	switch {
	case err == nil:
		return readStatusFound(string(reminder.Content), reminder.Timestamp), nil
	case typed.IsNotFound(err):
		return readStatusNotFound(), nil
	default:
		return HandleResponse{}, err
	}
}
