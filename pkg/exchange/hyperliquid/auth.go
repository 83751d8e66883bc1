package hyperliquid

import (
	"crypto/ecdsa"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	mathhex "github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/vmihailenco/msgpack/v5"
)

// Signer encapsulates signing behaviour for exchange actions.
type Signer interface {
	Sign(digest []byte) (*Signature, error)
	GetAddress() string
}

// PrivateKeySigner signs payloads using an ECDSA private key.
type PrivateKeySigner struct {
	privateKey *ecdsa.PrivateKey
	address    string
}

// NewPrivateKeySigner constructs a signer from a hex-encoded private key string.
func NewPrivateKeySigner(privateKeyHex string) (*PrivateKeySigner, error) {
	keyHex := strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x")
	if keyHex == "" {
		return nil, fmt.Errorf("hyperliquid: empty private key")
	}

	key, err := crypto.HexToECDSA(keyHex)
	if err != nil {
		return nil, fmt.Errorf("hyperliquid: decode private key: %w", err)
	}
	address := strings.ToLower(crypto.PubkeyToAddress(key.PublicKey).Hex())
	return &PrivateKeySigner{
		privateKey: key,
		address:    address,
	}, nil
}

// Sign produces a split ECDSA signature for the provided 32-byte digest.
func (s *PrivateKeySigner) Sign(digest []byte) (*Signature, error) {
	if s == nil || s.privateKey == nil {
		return nil, errors.New("hyperliquid: signer not initialised")
	}
	if len(digest) != 32 {
		return nil, fmt.Errorf("hyperliquid: expected 32-byte digest, got %d bytes", len(digest))
	}

	sigBytes, err := crypto.Sign(digest, s.privateKey)
	if err != nil {
		return nil, fmt.Errorf("hyperliquid: sign digest: %w", err)
	}
	return &Signature{
		R: "0x" + hex.EncodeToString(sigBytes[:32]),
		S: "0x" + hex.EncodeToString(sigBytes[32:64]),
		V: int(sigBytes[64]) + 27,
	}, nil
}

// GetAddress returns the signer wallet address.
func (s *PrivateKeySigner) GetAddress() string {
	if s == nil {
		return ""
	}
	return s.address
}

// ActionHash computes the connection id for an action. The preimage is the
// canonical msgpack encoding of the action (with trailing zeros stripped from
// price and size strings), followed by the nonce as 8 big-endian bytes, a
// vault marker byte, the vault address when present, and an expiry marker
// plus 8 big-endian bytes when an expiry is set.
func ActionHash(action Action, nonce int64, vaultAddress string, expiresAfter *int64) ([]byte, error) {
	if nonce <= 0 {
		return nil, fmt.Errorf("hyperliquid: nonce must be positive")
	}

	var payload any = action
	if n, ok := action.(signingNormalizer); ok {
		payload = n.normalizedForSigning()
	}
	msgpackBytes, err := msgpack.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("hyperliquid: msgpack encode action: %w", err)
	}

	var nonceBytes [8]byte
	binary.BigEndian.PutUint64(nonceBytes[:], uint64(nonce))

	preimage := make([]byte, 0, len(msgpackBytes)+8+1+common.AddressLength+9)
	preimage = append(preimage, msgpackBytes...)
	preimage = append(preimage, nonceBytes[:]...)

	if vaultAddress == "" {
		preimage = append(preimage, 0x00)
	} else {
		if !common.IsHexAddress(vaultAddress) {
			return nil, fmt.Errorf("hyperliquid: invalid vault address %q", vaultAddress)
		}
		preimage = append(preimage, 0x01)
		preimage = append(preimage, common.HexToAddress(vaultAddress).Bytes()...)
	}

	if expiresAfter != nil {
		var expiryBytes [8]byte
		binary.BigEndian.PutUint64(expiryBytes[:], uint64(*expiresAfter))
		preimage = append(preimage, 0x00)
		preimage = append(preimage, expiryBytes[:]...)
	}

	return crypto.Keccak256(preimage), nil
}

// SignL1Action hashes and signs an action using the phantom agent scheme.
// The typed-data domain pins chain id 1337 on both mainnet and testnet; only
// the agent source byte differs between the two.
func SignL1Action(signer Signer, action Action, nonce int64, vaultAddress string, expiresAfter *int64, isMainnet bool) (*Signature, error) {
	if signer == nil {
		return nil, errors.New("hyperliquid: signer required")
	}
	connectionID, err := ActionHash(action, nonce, vaultAddress, expiresAfter)
	if err != nil {
		return nil, err
	}

	source := "a"
	if !isMainnet {
		source = "b"
	}

	typedData := apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			"Agent": {
				{Name: "source", Type: "string"},
				{Name: "connectionId", Type: "bytes32"},
			},
		},
		PrimaryType: "Agent",
		Domain: apitypes.TypedDataDomain{
			Name:              "Exchange",
			Version:           "1",
			ChainId:           mathhex.NewHexOrDecimal256(1337),
			VerifyingContract: verifyingContractHex,
		},
		Message: map[string]interface{}{
			"source":       source,
			"connectionId": connectionID,
		},
	}

	digest, err := typedDataHash(typedData)
	if err != nil {
		return nil, err
	}
	return signer.Sign(digest)
}

const verifyingContractHex = "0x0000000000000000000000000000000000000000"

func typedDataHash(td apitypes.TypedData) ([]byte, error) {
	domainSeparator, err := td.HashStruct("EIP712Domain", td.Domain.Map())
	if err != nil {
		return nil, fmt.Errorf("hyperliquid: hash domain: %w", err)
	}
	messageHash, err := td.HashStruct(td.PrimaryType, td.Message)
	if err != nil {
		return nil, fmt.Errorf("hyperliquid: hash primary type: %w", err)
	}
	raw := make([]byte, 0, 2+len(domainSeparator)+len(messageHash))
	raw = append(raw, 0x19, 0x01)
	raw = append(raw, domainSeparator...)
	raw = append(raw, messageHash...)
	return crypto.Keccak256(raw), nil
}
