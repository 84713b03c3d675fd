package cache

import (
	"encoding/json"
	"fmt"

	"github.com/justzen0/random-walker/internal/domain"
)

func encodeNetwork(n *domain.Network) ([]byte, error) {
	if n == nil {
		return nil, fmt.Errorf("encode network: network is nil")
	}
	data, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("encode network: %w", err)
	}
	return data, nil
}

func decodeNetwork(data []byte) (*domain.Network, error) {
	var n domain.Network
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("decode network: %w", err)
	}
	return &n, nil
}
