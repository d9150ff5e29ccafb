package ante

import (
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	ammkeeper "github.com/unitdex/unitdex/x/amm/keeper"
	ammtypes "github.com/unitdex/unitdex/x/amm/types"
)

// AMMDecorator rejects transactions that reference unknown pools or assets
// before they reach the mempool, so obviously dead swaps never consume a
// block slot.
type AMMDecorator struct {
	keeper ammkeeper.Keeper
}

// NewAMMDecorator creates a new AMMDecorator
func NewAMMDecorator(keeper ammkeeper.Keeper) AMMDecorator {
	return AMMDecorator{keeper: keeper}
}

// AnteHandle implements the AnteDecorator interface
func (ad AMMDecorator) AnteHandle(ctx sdk.Context, tx sdk.Tx, simulate bool, next sdk.AnteHandler) (sdk.Context, error) {
	// Skip validation during simulation
	if simulate {
		return next(ctx, tx, simulate)
	}

	for _, msg := range tx.GetMsgs() {
		switch msg := msg.(type) {
		case *ammtypes.MsgLocalSwap:
			pool, found := ad.keeper.GetPool(ctx, msg.PoolID)
			if !found {
				return ctx, errorsmod.Wrapf(ammtypes.ErrPoolNotFound, "pool %d", msg.PoolID)
			}
			if pool.AssetIndex(msg.FromAsset) < 0 || pool.AssetIndex(msg.ToAsset) < 0 {
				return ctx, errorsmod.Wrapf(ammtypes.ErrInvalidAsset,
					"pool %d does not hold %s/%s", msg.PoolID, msg.FromAsset, msg.ToAsset)
			}

		case *ammtypes.MsgDeposit:
			if err := ad.requirePool(ctx, msg.PoolID); err != nil {
				return ctx, err
			}

		case *ammtypes.MsgWithdrawAll:
			if err := ad.requirePool(ctx, msg.PoolID); err != nil {
				return ctx, err
			}

		case *ammtypes.MsgWithdrawMixed:
			if err := ad.requirePool(ctx, msg.PoolID); err != nil {
				return ctx, err
			}

		case *ammtypes.MsgSendAsset:
			pool, found := ad.keeper.GetPool(ctx, msg.PoolID)
			if !found {
				return ctx, errorsmod.Wrapf(ammtypes.ErrPoolNotFound, "pool %d", msg.PoolID)
			}
			if pool.AssetIndex(msg.FromAsset) < 0 {
				return ctx, errorsmod.Wrapf(ammtypes.ErrInvalidAsset,
					"pool %d does not hold %s", msg.PoolID, msg.FromAsset)
			}

		case *ammtypes.MsgSendLiquidity:
			if err := ad.requirePool(ctx, msg.PoolID); err != nil {
				return ctx, err
			}
		}
	}

	return next(ctx, tx, simulate)
}

func (ad AMMDecorator) requirePool(ctx sdk.Context, poolID uint64) error {
	if poolID == 0 {
		return errorsmod.Wrap(sdkerrors.ErrInvalidRequest, "pool id cannot be zero")
	}
	if _, found := ad.keeper.GetPool(ctx, poolID); !found {
		return errorsmod.Wrapf(ammtypes.ErrPoolNotFound, "pool %d", poolID)
	}
	return nil
}
