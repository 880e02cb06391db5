package chain

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/ethclient"
)

// Client is the chain-time oracle: it answers the current block timestamp,
// used as the default endTime for open-ended queries.
type Client struct {
	eth *ethclient.Client
}

func Dial(ctx context.Context, rpcURL string) (*Client, error) {
	eth, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial chain rpc: %w", err)
	}
	return &Client{eth: eth}, nil
}

func (c *Client) Close() {
	if c != nil && c.eth != nil {
		c.eth.Close()
	}
}

// LatestBlockTimestamp returns the timestamp of the latest header.
func (c *Client) LatestBlockTimestamp(ctx context.Context) (int64, error) {
	if c == nil || c.eth == nil {
		return 0, fmt.Errorf("chain client not connected")
	}
	header, err := c.eth.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, err
	}
	return int64(header.Time), nil
}
