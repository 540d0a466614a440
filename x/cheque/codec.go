package cheque

import (
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

func init() {
	cdc.RegisterInterface((*Target)(nil), nil)
	cdc.RegisterConcrete(AddressTarget{}, "cheque/target/address", nil)
	cdc.RegisterConcrete(NameTarget{}, "cheque/target/name", nil)
	cdc.RegisterConcrete(BothTarget{}, "cheque/target/both", nil)

	cdc.RegisterConcrete(&Cheque{}, "cheque/cheque", nil)
	cdc.RegisterConcrete(&Configuration{}, "cheque/configuration", nil)

	cdc.RegisterConcrete(&CreateChequeMsg{}, "cheque/msg/create", nil)
	cdc.RegisterConcrete(&CollectChequeMsg{}, "cheque/msg/collect", nil)
	cdc.RegisterConcrete(&CancelChequeMsg{}, "cheque/msg/cancel", nil)
	cdc.RegisterConcrete(&ExpireChequeMsg{}, "cheque/msg/expire", nil)
	cdc.RegisterConcrete(&UpdateConfigurationMsg{}, "cheque/msg/update_configuration", nil)
}
