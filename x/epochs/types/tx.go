package types

import (
	"context"
)

// MsgServer defines the message server interface
type MsgServer interface {
	UpdateEpochLength(context.Context, *MsgUpdateEpochLength) (*MsgUpdateEpochLengthResponse, error)
}

// MsgUpdateEpochLengthResponse defines the response for UpdateEpochLength
type MsgUpdateEpochLengthResponse struct {
	// Epoch is the epoch at which the new length took effect.
	Epoch uint64 `json:"epoch"`
}

// QueryServer defines the query server interface
type QueryServer interface {
	CurrentEpoch(context.Context, *QueryCurrentEpochRequest) (*QueryCurrentEpochResponse, error)
	Params(context.Context, *QueryParamsRequest) (*QueryParamsResponse, error)
}

// QueryCurrentEpochRequest is the request for the CurrentEpoch query
type QueryCurrentEpochRequest struct{}

// QueryCurrentEpochResponse is the response for the CurrentEpoch query
type QueryCurrentEpochResponse struct {
	Epoch            uint64 `json:"epoch"`
	EpochStartHeight int64  `json:"epoch_start_height"`
	EpochLength      uint64 `json:"epoch_length"`
}

// QueryParamsRequest is the request for the Params query
type QueryParamsRequest struct{}

// QueryParamsResponse is the response for the Params query
type QueryParamsResponse struct {
	Params Params `json:"params"`
}
