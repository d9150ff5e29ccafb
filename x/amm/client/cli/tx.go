package cli

import (
	"fmt"
	"strconv"
	"strings"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/unitdex/unitdex/x/amm/types"
)

// GetTxCmd returns the transaction commands for the amm module
func GetTxCmd() *cobra.Command {
	ammTxCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "AMM transaction subcommands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	ammTxCmd.AddCommand(
		CmdCreatePool(),
		CmdLocalSwap(),
		CmdDeposit(),
		CmdWithdrawAll(),
		CmdWithdrawMixed(),
		CmdSendAsset(),
		CmdSendLiquidity(),
		CmdSetConnection(),
	)

	return ammTxCmd
}

func parseIntList(s string) ([]math.Int, error) {
	parts := strings.Split(s, ",")
	out := make([]math.Int, len(parts))
	for i, p := range parts {
		v, ok := math.NewIntFromString(strings.TrimSpace(p))
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", p)
		}
		out[i] = v
	}
	return out, nil
}

// CmdCreatePool returns a CLI command handler for creating an amplified pool
func CmdCreatePool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-pool [assets] [amounts] [weights] [one-minus-amp] [pool-fee]",
		Short: "Create a new amplified pool",
		Long: `Create a new amplified pool seeded with the given assets.

Assets, amounts and weights are comma-separated lists of equal length.
one-minus-amp is the curve parameter in WAD (1e18 = constant product).

Example:
  $ unitdexd tx amm create-pool uatom,uusdc 1000000,1000000 1,1 500000000000000000 0.003 --from mykey`,
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			assets := strings.Split(args[0], ",")
			amounts, err := parseIntList(args[1])
			if err != nil {
				return fmt.Errorf("invalid amounts: %w", err)
			}
			weights, err := parseIntList(args[2])
			if err != nil {
				return fmt.Errorf("invalid weights: %w", err)
			}
			oneMinusAmp, ok := math.NewIntFromString(args[3])
			if !ok {
				return fmt.Errorf("invalid one-minus-amp: %s", args[3])
			}
			poolFee, err := math.LegacyNewDecFromStr(args[4])
			if err != nil {
				return fmt.Errorf("invalid pool fee: %w", err)
			}

			msg := types.NewMsgCreatePool(clientCtx.GetFromAddress().String(), assets, amounts, weights, oneMinusAmp, poolFee)
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdLocalSwap returns a CLI command handler for a same-chain swap
func CmdLocalSwap() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "local-swap [pool-id] [from-asset] [to-asset] [amount] [min-out]",
		Short: "Swap between two assets of one pool",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			poolID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pool ID: %w", err)
			}
			amount, ok := math.NewIntFromString(args[3])
			if !ok {
				return fmt.Errorf("invalid amount: %s", args[3])
			}
			minOut, ok := math.NewIntFromString(args[4])
			if !ok {
				return fmt.Errorf("invalid min-out: %s", args[4])
			}

			msg := types.NewMsgLocalSwap(clientCtx.GetFromAddress().String(), poolID, args[1], args[2], amount, minOut)
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdDeposit returns a CLI command handler for a mixed deposit
func CmdDeposit() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deposit [pool-id] [amounts] [min-shares]",
		Short: "Deposit a mix of pool assets for shares",
		Long: `Deposit assets into a pool. Amounts is a comma-separated list aligned
with the pool's asset order; entries may be zero.

Example:
  $ unitdexd tx amm deposit 1 1000000,0 0 --from mykey`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			poolID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pool ID: %w", err)
			}
			amounts, err := parseIntList(args[1])
			if err != nil {
				return fmt.Errorf("invalid amounts: %w", err)
			}
			minShares, ok := math.NewIntFromString(args[2])
			if !ok {
				return fmt.Errorf("invalid min-shares: %s", args[2])
			}

			msg := types.NewMsgDeposit(clientCtx.GetFromAddress().String(), poolID, amounts, minShares)
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdWithdrawAll returns a CLI command handler for a proportional withdrawal
func CmdWithdrawAll() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw-all [pool-id] [shares] [min-out]",
		Short: "Burn shares for a slice of every pool asset",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			poolID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pool ID: %w", err)
			}
			shares, ok := math.NewIntFromString(args[1])
			if !ok {
				return fmt.Errorf("invalid shares: %s", args[1])
			}
			minOut, err := parseIntList(args[2])
			if err != nil {
				return fmt.Errorf("invalid min-out: %w", err)
			}

			msg := types.NewMsgWithdrawAll(clientCtx.GetFromAddress().String(), poolID, shares, minOut)
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdWithdrawMixed returns a CLI command handler for a custom-mix withdrawal
func CmdWithdrawMixed() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw-mixed [pool-id] [shares] [ratios] [min-out]",
		Short: "Burn shares for a custom mix of pool assets",
		Long: `Burn shares for a custom asset mix. Ratios are WAD fractions of the
remaining withdrawal value, consumed in asset order; they must use the
value exactly (the last nonzero ratio is typically 1e18).

Example:
  $ unitdexd tx amm withdraw-mixed 1 500000 1000000000000000000,0 100,0 --from mykey`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			poolID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pool ID: %w", err)
			}
			shares, ok := math.NewIntFromString(args[1])
			if !ok {
				return fmt.Errorf("invalid shares: %s", args[1])
			}
			ratios, err := parseIntList(args[2])
			if err != nil {
				return fmt.Errorf("invalid ratios: %w", err)
			}
			minOut, err := parseIntList(args[3])
			if err != nil {
				return fmt.Errorf("invalid min-out: %w", err)
			}

			msg := types.NewMsgWithdrawMixed(clientCtx.GetFromAddress().String(), poolID, shares, ratios, minOut)
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdSendAsset returns a CLI command handler for a cross-chain asset swap
func CmdSendAsset() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send-asset [pool-id] [channel-id] [to-pool] [to-account] [from-asset] [to-asset-index] [amount] [min-out]",
		Short: "Swap an asset into units and send them to a connected pool",
		Args:  cobra.ExactArgs(8),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			poolID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pool ID: %w", err)
			}
			toPool, err := strconv.ParseUint(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid to-pool: %w", err)
			}
			toAssetIndex, err := strconv.ParseUint(args[5], 10, 8)
			if err != nil {
				return fmt.Errorf("invalid to-asset-index: %w", err)
			}
			amount, ok := math.NewIntFromString(args[6])
			if !ok {
				return fmt.Errorf("invalid amount: %s", args[6])
			}
			minOut, ok := math.NewIntFromString(args[7])
			if !ok {
				return fmt.Errorf("invalid min-out: %s", args[7])
			}

			msg := types.NewMsgSendAsset(clientCtx.GetFromAddress().String(), poolID, args[1], toPool, args[3], args[4], uint8(toAssetIndex), amount, minOut)
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdSendLiquidity returns a CLI command handler for a cross-chain liquidity swap
func CmdSendLiquidity() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send-liquidity [pool-id] [channel-id] [to-pool] [to-account] [shares] [min-out] [min-reference-asset]",
		Short: "Burn shares into units and send them to a connected pool",
		Args:  cobra.ExactArgs(7),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			poolID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pool ID: %w", err)
			}
			toPool, err := strconv.ParseUint(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid to-pool: %w", err)
			}
			shares, ok := math.NewIntFromString(args[4])
			if !ok {
				return fmt.Errorf("invalid shares: %s", args[4])
			}
			minOut, ok := math.NewIntFromString(args[5])
			if !ok {
				return fmt.Errorf("invalid min-out: %s", args[5])
			}
			minReference, ok := math.NewIntFromString(args[6])
			if !ok {
				return fmt.Errorf("invalid min-reference-asset: %s", args[6])
			}

			msg := types.NewMsgSendLiquidity(clientCtx.GetFromAddress().String(), poolID, args[1], toPool, args[3], shares, minOut, minReference)
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdSetConnection returns a CLI command handler for connecting pools
func CmdSetConnection() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-connection [pool-id] [channel-id] [remote-pool] [connected]",
		Short: "Mark a remote pool as a trusted counterpart (authority only)",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			poolID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pool ID: %w", err)
			}
			remotePool, err := strconv.ParseUint(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid remote-pool: %w", err)
			}
			connected, err := strconv.ParseBool(args[3])
			if err != nil {
				return fmt.Errorf("invalid connected flag: %w", err)
			}

			msg := types.NewMsgSetConnection(clientCtx.GetFromAddress().String(), poolID, args[1], remotePool, connected)
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
