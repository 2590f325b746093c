// Minimal end-to-end integration test for the StreetCanvas API.
//
// Run from repo root against a live instance:
//
//	go run ./scripts/api/test_api.go
//
// Needs a funded-or-not dev key; the API only checks the signature, reads
// work for any address.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	baseURL = getenv("API_URL", "http://localhost:8080/v1")
	// Hardhat dev account #0. Never fund this key.
	devKey = getenv("DEV_KEY", "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
)

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

var httpc = &http.Client{Timeout: 30 * time.Second}

func postJSON(path string, body, out interface{}) {
	buf, _ := json.Marshal(body)
	resp, err := httpc.Post(baseURL+path, "application/json", bytes.NewReader(buf))
	if err != nil {
		log.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		log.Fatalf("POST %s: %d %s", path, resp.StatusCode, raw)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			log.Fatalf("POST %s decode: %v", path, err)
		}
	}
}

func getAuthed(path, token string) string {
	req, _ := http.NewRequest(http.MethodGet, baseURL+path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := httpc.Do(req)
	if err != nil {
		log.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		log.Fatalf("GET %s: %d %s", path, resp.StatusCode, raw)
	}
	return string(raw)
}

func main() {
	key, err := crypto.HexToECDSA(devKey)
	if err != nil {
		log.Fatalf("dev key: %v", err)
	}
	addr := crypto.PubkeyToAddress(key.PublicKey).Hex()
	log.Printf("using address %s", addr)

	var challenge struct {
		Nonce string `json:"nonce"`
	}
	postJSON("/auth/challenge", map[string]string{"address": addr}, &challenge)
	log.Printf("nonce: %s", challenge.Nonce)

	sig, err := crypto.Sign(accounts.TextHash([]byte(challenge.Nonce)), key)
	if err != nil {
		log.Fatalf("sign nonce: %v", err)
	}
	sig[crypto.RecoveryIDOffset] += 27 // wallet-style recovery id

	var verify struct {
		Token string `json:"token"`
	}
	postJSON("/auth/verify", map[string]string{
		"address":   addr,
		"signature": hexutil.Encode(sig),
	}, &verify)
	log.Printf("jwt: %s...", verify.Token[:16])

	fmt.Println("me:", getAuthed("/me", verify.Token))
	fmt.Println("walls:", getAuthed("/walls", verify.Token))
	fmt.Println("platform pct:", getAuthed("/platform/percentage", verify.Token))

	log.Printf("API smoke test passed")
}
