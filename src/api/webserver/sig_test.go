package webserver

import (
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signNonce(t *testing.T, nonce string) (addr, sigHex string) {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	sig, err := crypto.Sign(accounts.TextHash([]byte(nonce)), key)
	require.NoError(t, err)
	return crypto.PubkeyToAddress(key.PublicKey).Hex(), hexutil.Encode(sig)
}

func TestVerifySignature(t *testing.T) {
	const nonce = "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d"
	addr, sigHex := signNonce(t, nonce)

	assert.NoError(t, verifySignature(addr, sigHex, nonce))
}

func TestVerifySignatureLegacyRecoveryID(t *testing.T) {
	const nonce = "c56a4180-65aa-42ec-a945-5fd21dec0538"
	addr, sigHex := signNonce(t, nonce)

	// Wallet-style signature with the recovery id shifted to 27/28.
	sig, err := hexutil.Decode(sigHex)
	require.NoError(t, err)
	sig[crypto.RecoveryIDOffset] += 27

	assert.NoError(t, verifySignature(addr, hexutil.Encode(sig), nonce))
}

func TestVerifySignatureWrongAddress(t *testing.T) {
	const nonce = "e4b9f1f6-0b5a-4bb5-8c82-2f5c1e0f8e11"
	_, sigHex := signNonce(t, nonce)

	err := verifySignature("0x1111111111111111111111111111111111111111", sigHex, nonce)
	assert.Error(t, err)
}

func TestVerifySignatureWrongNonce(t *testing.T) {
	addr, sigHex := signNonce(t, "original-nonce")

	err := verifySignature(addr, sigHex, "replayed-nonce")
	assert.Error(t, err)
}

func TestVerifySignatureMalformed(t *testing.T) {
	assert.Error(t, verifySignature("0x1111111111111111111111111111111111111111", "not-hex", "nonce"))
	assert.Error(t, verifySignature("0x1111111111111111111111111111111111111111", "0xdead", "nonce"))
}

func TestIssueJWTCarriesAddress(t *testing.T) {
	secret := []byte("test-secret")
	signed, err := issueJWT("0x2222222222222222222222222222222222222222", secret)
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "0x2222222222222222222222222222222222222222", claims["addr"])
}
