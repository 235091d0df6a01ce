package main

import (
	"fmt"
	"strings"

	"github.com/darkkaiser/store-promoter/internal/responder"
	"github.com/spf13/cobra"
)

func newAskCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "ask <message>",
		Short:   "챗봇에게 문의하고 응답을 텍스트로 출력합니다",
		Example: `  store-promoter ask "سعر التوصيل"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.newResponder()
			if err != nil {
				return err
			}

			answer := r.Answer(strings.Join(args, " "))
			fmt.Fprintln(cmd.OutOrStdout(), responder.PlainText(answer.Reply, a.appConfig.Message.BaseURL))

			return nil
		},
	}
}
