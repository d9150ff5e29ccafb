package types

import (
	"cosmossdk.io/errors"
)

// AMM module sentinel errors
var (
	ErrInvalidPoolID              = errors.Register(ModuleName, 1, "invalid pool id")
	ErrPoolNotFound               = errors.Register(ModuleName, 2, "pool not found")
	ErrInvalidSetup               = errors.Register(ModuleName, 3, "invalid pool setup")
	ErrInvalidAsset               = errors.Register(ModuleName, 4, "asset not in pool")
	ErrInvalidAmount              = errors.Register(ModuleName, 5, "invalid amount")
	ErrInsufficientReturn         = errors.Register(ModuleName, 6, "return less than minimum")
	ErrExceedsSecurityLimit       = errors.Register(ModuleName, 7, "swap exceeds security limit")
	ErrUnusedUnitsAfterWithdrawal = errors.Register(ModuleName, 8, "units left after withdrawal")
	ErrWithdrawRatioNotZero       = errors.Register(ModuleName, 9, "withdraw ratio must be zero")
	ErrCurveOverflow              = errors.Register(ModuleName, 10, "price curve overflow")
	ErrEscrowCollision            = errors.Register(ModuleName, 11, "escrow record already exists")
	ErrEscrowNotFound             = errors.Register(ModuleName, 12, "escrow record not found")
	ErrPoolNotConnected           = errors.Register(ModuleName, 13, "remote pool not connected")
	ErrInvalidAmplification       = errors.Register(ModuleName, 14, "invalid amplification change")
	ErrInvalidFee                 = errors.Register(ModuleName, 15, "invalid fee")
	ErrUnauthorized               = errors.Register(ModuleName, 16, "unauthorized")
	ErrInvariantViolation         = errors.Register(ModuleName, 17, "invariant violation")
	ErrInvalidAddress             = errors.Register(ModuleName, 18, "invalid address")
	ErrInvalidPacket              = errors.Register(ModuleName, 19, "invalid packet")
	ErrReceiverHookFailed         = errors.Register(ModuleName, 20, "units receiver hook failed")
)
