package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/bluealloy/evmcore/primitives"
	"github.com/bluealloy/evmcore/state"
)

// fixture is one named test case from an Ethereum state-test JSON file:
// a starting world state (pre), a block/transaction environment, and the
// expected post-state per hardfork. This is a deliberately narrowed
// reading of the upstream GeneralStateTest schema — no RLP-encoded
// transaction signatures, no multi-index data/gas/value matrices, a
// single sender address given directly rather than recovered from a
// secret key — documented as a simplification in DESIGN.md.
type fixture struct {
	Env         env                     `json:"env"`
	Pre         map[string]acctJSON     `json:"pre"`
	Transaction txJSON                  `json:"transaction"`
	Post        map[string][]postResult `json:"post"`
}

type env struct {
	CurrentCoinbase   string `json:"currentCoinbase"`
	CurrentNumber     string `json:"currentNumber"`
	CurrentTimestamp  string `json:"currentTimestamp"`
	CurrentGasLimit   string `json:"currentGasLimit"`
	CurrentBaseFee    string `json:"currentBaseFee"`
	CurrentDifficulty string `json:"currentDifficulty"`
}

type acctJSON struct {
	Balance string            `json:"balance"`
	Code    string            `json:"code"`
	Nonce   string            `json:"nonce"`
	Storage map[string]string `json:"storage"`
}

type txJSON struct {
	Sender    string `json:"sender"`
	To        string `json:"to"`
	GasLimit  string `json:"gasLimit"`
	GasPrice  string `json:"gasPrice"`
	Value     string `json:"value"`
	Nonce     string `json:"nonce"`
	Data      string `json:"data"`
}

type postResult struct {
	ExpectedRoot string            `json:"hash"` // unused: no trie root is computed here
	Logs         string            `json:"logs"`
	State        map[string]acctJSON `json:"state"` // extension: expected post-state, inline
}

func loadFixtures(data []byte) (map[string]fixture, error) {
	var out map[string]fixture
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return out, nil
}

func mustHex(s string) []byte {
	s = strings.TrimPrefix(s, "0x")
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, _ := hex.DecodeString(s)
	return b
}

func hexU64(s string) uint64 {
	s = strings.TrimPrefix(s, "0x")
	if s == "" {
		return 0
	}
	n, _ := strconv.ParseUint(s, 16, 64)
	return n
}

func hexU256(s string) primitives.U256 {
	if s == "" {
		return primitives.Zero
	}
	return primitives.U256FromBytes(mustHex(s))
}

func hexAddress(s string) primitives.Address {
	return primitives.BytesToAddress(mustHex(s))
}

func hexB256(s string) primitives.B256 {
	return primitives.BytesToB256(mustHex(s))
}

// buildDatabase seeds a state.MemoryDatabase from a fixture's pre-state.
func buildDatabase(pre map[string]acctJSON) *state.MemoryDatabase {
	db := state.NewMemoryDatabase()
	for addrHex, a := range pre {
		addr := hexAddress(addrHex)
		code := mustHex(a.Code)
		acc := state.Account{
			Nonce:    hexU64(a.Nonce),
			Balance:  hexU256(a.Balance),
			CodeHash: primitives.Keccak256(code),
			Code:     code,
		}
		db.SetAccount(addr, acc)
		for k, v := range a.Storage {
			db.SetStorage(addr, hexB256(k), hexB256(v))
		}
	}
	return db
}
