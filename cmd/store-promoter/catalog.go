package main

import (
	"fmt"

	"github.com/darkkaiser/store-promoter/internal/catalog"
	applog "github.com/darkkaiser/store-promoter/pkg/log"
	"github.com/spf13/cobra"
)

func newCatalogCommand(a *app) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "상품 카탈로그 파일을 관리합니다",
	}

	var out string
	syncCmd := &cobra.Command{
		Use:   "sync <storefront-url>",
		Short: "스토어프론트 목록 페이지에서 상품을 수집해 카탈로그 파일로 저장합니다",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = a.appConfig.Chatbot.ProductsFile
			}
			return a.syncCatalog(cmd, args[0], out)
		},
	}
	syncCmd.Flags().StringVarP(&out, "out", "o", "", "저장할 파일 경로 (기본값: chatbot.products_file)")

	catalogCmd.AddCommand(syncCmd)

	return catalogCmd
}

func (a *app) syncCatalog(cmd *cobra.Command, pageURL, out string) error {
	f := newFetcher(a.appConfig)
	defer f.Close()

	products, err := catalog.NewScraper(f).Scrape(cmd.Context(), pageURL)
	if err != nil {
		return err
	}

	if err := catalog.SaveProducts(out, products); err != nil {
		return err
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"url":      pageURL,
		"out":      out,
		"products": len(products),
	}).Info("카탈로그 동기화 완료")

	fmt.Fprintf(cmd.OutOrStdout(), "%d개 상품을 %s에 저장했습니다\n", len(products), out)

	return nil
}
