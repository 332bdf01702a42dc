package blockchain

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/big"
	"net/http"
	"time"

	"github.com/mr-tron/base58"
)

// TransactionInfo holds the verified details of an on-chain transaction.
// Amount is denominated in SUN (1 USDT = 1,000,000 SUN).
type TransactionInfo struct {
	TxID      string
	Confirmed bool
	Amount    int64
	ToAddress string
}

// ChainClient is the capability the payment workflow needs from the chain:
// look up a transaction by id, and move tokens to a wallet.
type ChainClient interface {
	GetTransaction(ctx context.Context, txID string) (*TransactionInfo, error)
	TransferToken(ctx context.Context, toAddress string, amount int64) (string, error)
}

// TronClient talks to a TRON full node over its HTTP API (TronGrid-style).
type TronClient struct {
	nodeURL      string
	privateKey   string
	ownerAddress string
	usdtContract string
	feeLimit     int64
	httpClient   *http.Client
}

// NewTronClient creates a new TRON client. The private key signs outgoing
// USDT transfers from the platform wallet.
func NewTronClient(nodeURL, privateKey, ownerAddress, usdtContract string, feeLimit int64) *TronClient {
	return &TronClient{
		nodeURL:      nodeURL,
		privateKey:   privateKey,
		ownerAddress: ownerAddress,
		usdtContract: usdtContract,
		feeLimit:     feeLimit,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// txByIDResponse mirrors the /wallet/gettransactionbyid payload, trimmed to
// the fields the payment workflow checks.
type txByIDResponse struct {
	TxID string `json:"txID"`
	Ret  []struct {
		ContractRet string `json:"contractRet"`
	} `json:"ret"`
	RawData struct {
		Contract []struct {
			Parameter struct {
				Value struct {
					Amount    int64  `json:"amount"`
					ToAddress string `json:"to_address"`
				} `json:"value"`
			} `json:"parameter"`
		} `json:"contract"`
	} `json:"raw_data"`
}

// GetTransaction fetches a transaction by id and reports whether it executed
// successfully. A transaction unknown to the node yields Confirmed=false
// rather than an error.
func (t *TronClient) GetTransaction(ctx context.Context, txID string) (*TransactionInfo, error) {
	body, err := t.post(ctx, "/wallet/gettransactionbyid", map[string]interface{}{
		"value": txID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction %s: %w", txID, err)
	}

	var tx txByIDResponse
	if err := json.Unmarshal(body, &tx); err != nil {
		return nil, fmt.Errorf("failed to decode transaction response: %w", err)
	}

	info := &TransactionInfo{TxID: txID}

	if tx.TxID == "" || len(tx.Ret) == 0 || tx.Ret[0].ContractRet != "SUCCESS" {
		return info, nil
	}

	info.Confirmed = true
	if len(tx.RawData.Contract) > 0 {
		info.Amount = tx.RawData.Contract[0].Parameter.Value.Amount
		info.ToAddress = tx.RawData.Contract[0].Parameter.Value.ToAddress
	}

	return info, nil
}

// triggerResponse mirrors /wallet/triggersmartcontract.
type triggerResponse struct {
	Result struct {
		Result  bool   `json:"result"`
		Message string `json:"message"`
	} `json:"result"`
	Transaction json.RawMessage `json:"transaction"`
}

// broadcastResponse mirrors /wallet/broadcasttransaction.
type broadcastResponse struct {
	Result  bool   `json:"result"`
	TxID    string `json:"txid"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// TransferToken sends `amount` SUN of USDT to toAddress and returns the
// transaction id of the transfer. The node builds the TRC-20 call, signs it
// with the platform key, and broadcasts it.
func (t *TronClient) TransferToken(ctx context.Context, toAddress string, amount int64) (string, error) {
	parameter, err := encodeTransferParams(toAddress, amount)
	if err != nil {
		return "", fmt.Errorf("failed to encode transfer call: %w", err)
	}

	body, err := t.post(ctx, "/wallet/triggersmartcontract", map[string]interface{}{
		"owner_address":     t.ownerAddress,
		"contract_address":  t.usdtContract,
		"function_selector": "transfer(address,uint256)",
		"parameter":         parameter,
		"fee_limit":         t.feeLimit,
		"call_value":        0,
		"visible":           true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build transfer: %w", err)
	}

	var trigger triggerResponse
	if err := json.Unmarshal(body, &trigger); err != nil {
		return "", fmt.Errorf("failed to decode trigger response: %w", err)
	}
	if !trigger.Result.Result || len(trigger.Transaction) == 0 {
		return "", fmt.Errorf("node rejected transfer: %s", trigger.Result.Message)
	}

	// Sign the raw transaction with the platform key
	signedBody, err := t.post(ctx, "/wallet/gettransactionsign", map[string]interface{}{
		"transaction": json.RawMessage(trigger.Transaction),
		"privateKey":  t.privateKey,
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign transfer: %w", err)
	}

	broadcastBody, err := t.post(ctx, "/wallet/broadcasttransaction", json.RawMessage(signedBody))
	if err != nil {
		return "", fmt.Errorf("failed to broadcast transfer: %w", err)
	}

	var broadcast broadcastResponse
	if err := json.Unmarshal(broadcastBody, &broadcast); err != nil {
		return "", fmt.Errorf("failed to decode broadcast response: %w", err)
	}
	if !broadcast.Result || broadcast.TxID == "" {
		return "", fmt.Errorf("broadcast failed: %s %s", broadcast.Code, broadcast.Message)
	}

	log.Printf("USDT transfer broadcast: to=%s amount=%d sun tx=%s", toAddress, amount, broadcast.TxID)
	return broadcast.TxID, nil
}

// post makes a JSON call against the TRON node HTTP API
func (t *TronClient) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", t.nodeURL+path, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("node returned status %d: %s", resp.StatusCode, body)
	}

	return body, nil
}

// encodeTransferParams ABI-encodes the (address, uint256) arguments of a
// TRC-20 transfer call as two 32-byte words.
func encodeTransferParams(toAddress string, amount int64) (string, error) {
	payload, err := decodeBase58Address(toAddress)
	if err != nil {
		return "", err
	}

	// Drop the 0x41 network prefix; the ABI word holds the 20-byte address
	addrWord := make([]byte, 32)
	copy(addrWord[12:], payload[1:])

	amountWord := make([]byte, 32)
	big.NewInt(amount).FillBytes(amountWord)

	return hex.EncodeToString(addrWord) + hex.EncodeToString(amountWord), nil
}

// decodeBase58Address decodes a base58check TRON address into its 21-byte
// payload (0x41 prefix + 20-byte account).
func decodeBase58Address(address string) ([]byte, error) {
	raw, err := base58.Decode(address)
	if err != nil {
		return nil, fmt.Errorf("invalid address encoding: %w", err)
	}
	if len(raw) != 25 {
		return nil, fmt.Errorf("invalid address length %d", len(raw))
	}

	payload, checksum := raw[:21], raw[21:]
	if payload[0] != 0x41 {
		return nil, fmt.Errorf("invalid address prefix 0x%02x", payload[0])
	}

	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	if !bytes.Equal(checksum, second[:4]) {
		return nil, fmt.Errorf("address checksum mismatch")
	}

	return payload, nil
}

// ValidateWalletAddress validates a TRON wallet address format
func ValidateWalletAddress(address string) bool {
	_, err := decodeBase58Address(address)
	return err == nil
}
