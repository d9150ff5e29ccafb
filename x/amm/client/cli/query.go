package cli

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"

	"github.com/unitdex/unitdex/x/amm/ammmath"
	"github.com/unitdex/unitdex/x/amm/types"
)

// GetQueryCmd returns the cli query commands for the amm module
func GetQueryCmd() *cobra.Command {
	ammQueryCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Querying commands for the amm module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	ammQueryCmd.AddCommand(
		GetCmdQueryParams(),
		GetCmdQueryPool(),
		GetCmdQueryPools(),
		GetCmdQueryQuote(),
	)

	return ammQueryCmd
}

// GetCmdQueryParams returns the command to query module parameters
func GetCmdQueryParams() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Query the current amm module parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			bz, _, err := clientCtx.QueryStore(types.ParamsKey, types.StoreKey)
			if err != nil {
				return err
			}
			var params types.Params
			if bz != nil {
				if err := json.Unmarshal(bz, &params); err != nil {
					return err
				}
			} else {
				params = types.DefaultParams()
			}

			return clientCtx.PrintString(params.String())
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryPool returns the command to query a pool by ID
func GetCmdQueryPool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool [pool-id]",
		Short: "Query an amplified pool by ID",
		Long: `Query the stored state of a pool: assets, weights, curve parameter,
unit tracker, security limit counters and escrow totals.

Example:
  $ unitdexd query amm pool 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			poolID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pool ID: %w", err)
			}

			bz, _, err := clientCtx.QueryStore(types.PoolKey(poolID), types.StoreKey)
			if err != nil {
				return err
			}
			if bz == nil {
				return fmt.Errorf("pool %d not found", poolID)
			}

			var pool types.Pool
			if err := json.Unmarshal(bz, &pool); err != nil {
				return err
			}
			out, err := json.MarshalIndent(pool, "", "  ")
			if err != nil {
				return err
			}

			return clientCtx.PrintString(string(out) + "\n")
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryPools returns the command to list all pools
func GetCmdQueryPools() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pools",
		Short: "List all amplified pools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			nextBz, _, err := clientCtx.QueryStore(types.NextPoolIDKey, types.StoreKey)
			if err != nil {
				return err
			}
			if nextBz == nil {
				return clientCtx.PrintString("[]\n")
			}

			pools := []types.Pool{}
			next := binary.BigEndian.Uint64(nextBz)
			for id := uint64(1); id < next; id++ {
				bz, _, err := clientCtx.QueryStore(types.PoolKey(id), types.StoreKey)
				if err != nil {
					return err
				}
				if bz == nil {
					continue
				}
				var pool types.Pool
				if err := json.Unmarshal(bz, &pool); err != nil {
					return err
				}
				pools = append(pools, pool)
			}

			out, err := json.MarshalIndent(pools, "", "  ")
			if err != nil {
				return err
			}
			return clientCtx.PrintString(string(out) + "\n")
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryQuote returns the command to price a local swap off-chain
func GetCmdQueryQuote() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote [pool-id] [from-asset] [to-asset] [amount]",
		Short: "Quote a local swap without executing it",
		Long: `Price a local swap against current pool state. The quote applies the
pool fee and the small-swap discount but does not move tokens; the executed
output can differ if the pool changes before the swap lands.

Example:
  $ unitdexd query amm quote 1 uatom uosmo 1000000`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			poolID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pool ID: %w", err)
			}
			amount, ok := math.NewIntFromString(args[3])
			if !ok || !amount.IsPositive() {
				return fmt.Errorf("invalid amount %q", args[3])
			}

			bz, _, err := clientCtx.QueryStore(types.PoolKey(poolID), types.StoreKey)
			if err != nil {
				return err
			}
			if bz == nil {
				return fmt.Errorf("pool %d not found", poolID)
			}
			var pool types.Pool
			if err := json.Unmarshal(bz, &pool); err != nil {
				return err
			}

			fromIdx := pool.AssetIndex(args[1])
			toIdx := pool.AssetIndex(args[2])
			if fromIdx < 0 || toIdx < 0 {
				return fmt.Errorf("pool %d holds %v", poolID, pool.Assets)
			}

			// True balances live in the bank at the pool account; escrowed
			// amounts are in flight and must not be priced.
			bankClient := banktypes.NewQueryClient(clientCtx)
			res, err := bankClient.AllBalances(cmd.Context(), &banktypes.QueryAllBalancesRequest{Address: pool.Address})
			if err != nil {
				return err
			}
			balances := make([]math.Int, len(pool.Assets))
			for i, asset := range pool.Assets {
				bal := res.Balances.AmountOf(asset).Sub(pool.EscrowedAmounts[i])
				if bal.IsNegative() {
					bal = math.ZeroInt()
				}
				balances[i] = bal
			}

			fee := pool.PoolFee.MulInt(amount).TruncateInt()
			net := amount.Sub(fee)
			out, err := ammmath.CalcCombinedPriceCurves(net, balances[fromIdx], balances[toIdx], pool.Weights[fromIdx], pool.Weights[toIdx], pool.OneMinusAmp)
			if err != nil {
				return err
			}
			out = ammmath.ApplySmallSwapDiscount(out, net, balances[fromIdx])

			return clientCtx.PrintString(fmt.Sprintf("%s%s\n", out, pool.Assets[toIdx]))
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
