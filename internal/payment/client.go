package payment

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/supermodularxyz/simplegrants-sub000/internal/config"
)

// Transferrer 资金转账能力。
// 派发任务只依赖这个接口，测试时注入桩实现。
type Transferrer interface {
	// Transfer 向收款地址转账指定的USD金额，返回交易哈希
	Transfer(ctx context.Context, recipient string, amountUsd float64) (string, error)
}

// Client 以太坊原生转账客户端
type Client struct {
	client     *ethclient.Client
	privateKey *ecdsa.PrivateKey
	chainID    *big.Int
	ethUsdRate float64
}

var weiPerEth = new(big.Float).SetFloat64(1e18)

func Init(cfg config.PaymentConfig) (*Client, error) {
	// 连接以太坊客户端
	client, err := ethclient.Dial(cfg.RpcUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ethereum client: %w", err)
	}

	// 解析私钥
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	if cfg.EthUsdRate <= 0 {
		return nil, fmt.Errorf("invalid eth_usd_rate: %f", cfg.EthUsdRate)
	}

	return &Client{
		client:     client,
		privateKey: privateKey,
		chainID:    big.NewInt(cfg.ChainId),
		ethUsdRate: cfg.EthUsdRate,
	}, nil
}

// Transfer 发送一笔原生转账。金额按配置汇率从USD换算成wei。
func (c *Client) Transfer(ctx context.Context, recipient string, amountUsd float64) (string, error) {
	if !common.IsHexAddress(recipient) {
		return "", fmt.Errorf("invalid recipient address: %s", recipient)
	}
	if amountUsd <= 0 {
		return "", fmt.Errorf("invalid transfer amount: %f", amountUsd)
	}

	to := common.HexToAddress(recipient)
	from := crypto.PubkeyToAddress(c.privateKey.PublicKey)

	nonce, err := c.client.PendingNonceAt(ctx, from)
	if err != nil {
		return "", fmt.Errorf("failed to get pending nonce: %w", err)
	}

	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get gas price: %w", err)
	}

	tx := types.NewTransaction(nonce, to, c.usdToWei(amountUsd), 21000, gasPrice, nil)

	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainID), c.privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := c.client.SendTransaction(ctx, signedTx); err != nil {
		return "", fmt.Errorf("failed to send transaction: %w", err)
	}

	return signedTx.Hash().Hex(), nil
}

// GetAccountAddress 获取出款账户地址
func (c *Client) GetAccountAddress() common.Address {
	return crypto.PubkeyToAddress(c.privateKey.PublicKey)
}

// usdToWei 按汇率把USD金额换算成wei
func (c *Client) usdToWei(amountUsd float64) *big.Int {
	eth := new(big.Float).Quo(
		new(big.Float).SetFloat64(amountUsd),
		new(big.Float).SetFloat64(c.ethUsdRate),
	)
	wei, _ := new(big.Float).Mul(eth, weiPerEth).Int(nil)
	return wei
}
