package types

// Event types for the amm module
const (
	EventTypePoolCreated      = "pool_created"
	EventTypeLocalSwap        = "local_swap"
	EventTypeDeposit          = "deposit"
	EventTypeWithdraw         = "withdraw"
	EventTypeSendAsset        = "send_asset"
	EventTypeReceiveAsset     = "receive_asset"
	EventTypeSendLiquidity    = "send_liquidity"
	EventTypeReceiveLiquidity = "receive_liquidity"
	EventTypeEscrowSettled    = "escrow_settled"
	EventTypeAmplification    = "amplification_change"
	EventTypeConnection       = "connection_set"
	EventTypeFeeChange        = "fee_change"
	EventTypeChannelOpen      = "channel_open"
	EventTypeChannelClose     = "channel_close"
	EventTypePacketAck        = "packet_ack"
	EventTypePacketTimeout    = "packet_timeout"

	AttributeKeyPoolID     = "pool_id"
	AttributeKeyAccount    = "account"
	AttributeKeyFromAsset  = "from_asset"
	AttributeKeyToAsset    = "to_asset"
	AttributeKeyAmountIn   = "amount_in"
	AttributeKeyAmountOut  = "amount_out"
	AttributeKeyShares     = "shares"
	AttributeKeyUnits      = "units"
	AttributeKeyFee        = "fee"
	AttributeKeyChannelID  = "channel_id"
	AttributeKeyRemotePool = "remote_pool"
	AttributeKeyEscrowHash = "escrow_hash"
	AttributeKeyOutcome    = "outcome"
	AttributeKeyTargetAmp  = "target_one_minus_amp"
	AttributeKeyDeadline   = "deadline"
	AttributeKeyConnected  = "connected"
	AttributeKeyPortID     = "port_id"
	AttributeKeySequence   = "sequence"
	AttributeKeyAckSuccess = "ack_success"
)
