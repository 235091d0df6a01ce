package main

import (
	"fmt"
	"os"
)

// @title Store Promoter API
// @version 1.0.0
// @description 스토어프론트 고객 문의 챗봇과 상품 홍보 캠페인 관리를 위한 REST/WebSocket API입니다.
// @description
// @description ## 주요 기능
// @description - 고객 문의 응답 (POST /api/v1/chat, WebSocket /api/v1/chat/ws)
// @description - 캠페인 목록 조회와 수동 실행 (App Key 필요)
// @description
// @description ## 인증 방법
// @description 캠페인 API는 설정 파일(store-promoter.json)의 api.app_key 값을 X-App-Key 헤더로 전달해야 합니다.
// @description 쿼리 파라미터로 전달한 키는 허용하지 않습니다.

// @contact.name DarkKaiser
// @contact.url https://github.com/DarkKaiser

// @license.name MIT

// @BasePath /

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-App-Key
// @description Application Key for campaign endpoints

const banner = `
  ____   _                         ____                                 _
 / ___| | |_  ___   _ __  ___     |  _ \  _ __  ___   _ __ ___    ___  | |_  ___  _ __
 \___ \ | __|/ _ \ | '__|/ _ \    | |_) || '__|/ _ \ | '_ ' _ \  / _ \ | __|/ _ \| '__|
  ___) || |_| (_) || |  |  __/    |  __/ | |  | (_) || | | | | || (_) || |_|  __/| |
 |____/  \__|\___/ |_|   \___|    |_|    |_|   \___/ |_| |_| |_| \___/  \__|\___||_|
                                                                          %s
                                                        developed by DarkKaiser
----------------------------------------------------------------------------------------
`

func main() {
	a := newApp()
	err := newRootCommand(a).Execute()
	a.close()

	if err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		os.Exit(1)
	}
}
