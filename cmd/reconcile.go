package cmd

import (
	"fmt"

	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/utils"

	"github.com/spf13/cobra"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Check every wallet balance against its transaction ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := openStore(ctx, rt.config, rt.logger)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.close()

		service := usecase.NewService(st.repo, rt.config, nil, rt.logger)
		mismatches, err := service.Wallet.Reconcile(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, m := range mismatches {
			fmt.Fprintf(out, "%s\tbalance=%s\tledger=%s\n",
				m.UserID, utils.FormatMoney(m.Balance), utils.FormatMoney(m.LedgerSum))
		}
		if len(mismatches) > 0 {
			return fmt.Errorf("%d wallet(s) disagree with their ledger", len(mismatches))
		}

		fmt.Fprintln(out, "all wallets match their ledger")
		return nil
	},
}
