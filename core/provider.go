package core

import (
	"context"
	"math/big"

	"github.com/holiman/uint256"
)

// FeedAnswer raw answer of an external feed
type FeedAnswer struct {
	Answer    *big.Int `json:"answer"`
	Decimals  uint8    `json:"decimals"`
	UpdatedAt int64    `json:"updated_at"`
}

// FeedProvider external price feed
type FeedProvider interface {
	LatestAnswer(ctx context.Context, feedID string) (*FeedAnswer, error)
}

// VaultInfo capability probe answer of a share vault
type VaultInfo struct {
	Vault         string `json:"vault"`
	Asset         string `json:"asset"`
	Decimals      uint8  `json:"decimals"`
	AssetDecimals uint8  `json:"asset_decimals"`
}

// VaultProvider external share vault
type VaultProvider interface {
	Describe(ctx context.Context, vaultID string) (*VaultInfo, error)
	// ConvertToAssets amount of vault assets redeemable for shares
	ConvertToAssets(ctx context.Context, vaultID string, shares *uint256.Int) (*uint256.Int, error)
}
