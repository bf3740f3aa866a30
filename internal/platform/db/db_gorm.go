// Package db はGORMによるデータベース接続の初期化を提供します。
package db

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// connectDeadline はDB起動待ちのリトライ上限です。
const connectDeadline = 60 * time.Second

// Open はPostgreSQLへの接続を確立して返します。コンテナ起動直後など
// DBがまだ受け付けていない場合に備えて、期限付きでリトライします。
//
// 返されたハンドルは呼び出し側が各リポジトリへ明示的に注入します。
// グローバルな共有ハンドルは持ちません。
func Open(databaseURI string) (*gorm.DB, error) {
	if databaseURI == "" {
		return nil, fmt.Errorf("db: DATABASE_URI is empty")
	}

	var (
		handle *gorm.DB
		err    error
	)
	deadline := time.Now().Add(connectDeadline)
	for {
		handle, err = gorm.Open(postgres.Open(databaseURI), &gorm.Config{})
		if err == nil {
			return handle, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db: connect failed after %s: %w", connectDeadline, err)
		}
		slog.Warn("db connect failed, retrying", "error", err)
		time.Sleep(3 * time.Second)
	}
}
