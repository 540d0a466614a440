package orm

import (
	amino "github.com/tendermint/go-amino"
)

// cdc serializes the helper models this package stores directly.
var cdc = amino.NewCodec()
