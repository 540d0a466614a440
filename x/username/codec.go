package username

import (
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

func init() {
	cdc.RegisterConcrete(&Token{}, "username/token", nil)
	cdc.RegisterConcrete(&RegisterUsernameMsg{}, "username/register", nil)
	cdc.RegisterConcrete(&TransferUsernameMsg{}, "username/transfer", nil)
}
