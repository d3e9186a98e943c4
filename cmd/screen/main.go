package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"stock_search/internal/cli"
)

func main() {
	// .envがあれば読み込む（tokenコマンドのJWT_SECRET用）
	_ = godotenv.Load(".env")

	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
