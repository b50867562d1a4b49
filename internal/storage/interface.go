package storage

import (
	"basemint-backend/internal/generator"
)

// Storage 生成结果缓存，按 token id 索引。实现必须可并发使用
type Storage interface {
	Get(tokenID int64) (*generator.GeneratedNFT, error)
	Put(nft *generator.GeneratedNFT) error
	Len() int

	// 存储管理
	Close() error
}
