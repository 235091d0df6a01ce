package main

import (
	"fmt"
	"io"

	"github.com/darkkaiser/store-promoter/internal/service/contract"
	"github.com/darkkaiser/store-promoter/internal/service/promoter"
	"github.com/spf13/cobra"
)

func newPostCommand(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "post [campaign-id]",
		Short: "캠페인의 다음 상품을 한 번 게시합니다",
		Long: `캠페인의 다음 상품을 골라 홍보 메시지를 게시합니다.
캠페인이 하나뿐이면 ID를 생략할 수 있습니다. 실패하면 종료 코드 1을 반환합니다.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.post(cmd, args, dryRun)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "게시하지 않고 다음 메시지만 출력합니다 (상태도 저장하지 않음)")

	return cmd
}

func (a *app) post(cmd *cobra.Command, args []string, dryRun bool) error {
	campaignID, err := resolveCampaignID(a.appConfig, args)
	if err != nil {
		return err
	}

	sender, _ := a.newNotificationSender()

	promoterService, _, cleanup, err := a.newPromoter(cmd.Context(), sender)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := promoterService.Run(cmd.Context(), campaignID, promoter.RunOptions{
		DryRun: dryRun,
		RunBy:  contract.RunByCLI,
	})
	if err != nil {
		return err
	}

	printResult(cmd.OutOrStdout(), result)

	return nil
}

func printResult(w io.Writer, result *promoter.Result) {
	fmt.Fprintf(w, "[%s] %d/%d %s (%s)\n", result.CampaignID, result.Index+1, result.Total, result.Product.Title, result.Product.SKU)
	fmt.Fprintf(w, "%s\n", result.Message)

	switch {
	case result.DryRun:
		fmt.Fprintf(w, "\n미리보기: %d자, 게시하지 않았습니다\n", result.Length)
	case result.Receipt != nil && result.Receipt.URL != "":
		fmt.Fprintf(w, "\n게시 완료: %s\n", result.Receipt.URL)
	default:
		fmt.Fprintf(w, "\n게시 완료\n")
	}
}
