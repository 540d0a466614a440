package cash

import (
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

func init() {
	cdc.RegisterConcrete(&Set{}, "cash/set", nil)
	cdc.RegisterConcrete(&SendMsg{}, "cash/send", nil)
}
