package typed_test

import (
	"errors"

	"github.com/ValentinKolb/tKV/lib/typed"
	"github.com/ValentinKolb/tKV/lib/typed/codec"
)

type config struct {
	MaxSize uint64
	Owner   string
}

type counter struct {
	Count uint64
}

type reminder struct {
	Content   []byte
	Timestamp uint64
}

// account knows its own identifier
type account struct {
	Owner   []byte
	Balance uint64
}

func (a *account) DynamicKey() []byte {
	return a.Owner
}

// balanceView projects an account onto its balance
type balanceView struct {
	acc *account
}

func (b balanceView) DynamicKey() []byte {
	return b.acc.Owner
}

func (b balanceView) AsTarget() *counter {
	return &counter{Count: b.acc.Balance}
}

// newCatalog creates a catalog with all test types registered
func newCatalog(opts ...typed.Option) *typed.Catalog {
	c := typed.NewCatalog(opts...)
	typed.MustRegisterStatic[config](c, []byte("config"))
	typed.MustRegisterStatic[counter](c, []byte("counter"))
	typed.MustRegisterDynamic[reminder](c, "reminder")
	typed.MustRegisterDynamic[account](c, "account")
	typed.MustRegisterDynamic[string](c, "string")
	typed.MustRegisterDynamic[counter](c, "balance")
	return c
}

var errEncode = errors.New("injected encode failure")

// faultyCodec fails every Encode and delegates Decode
type faultyCodec struct {
	codec.ICodec
}

func (f faultyCodec) Encode(any) ([]byte, error) {
	return nil, errEncode
}

func (f faultyCodec) Name() string {
	return "faulty"
}
