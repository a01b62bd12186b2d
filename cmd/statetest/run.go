package main

import (
	"fmt"

	"github.com/bluealloy/evmcore/log"
	"github.com/bluealloy/evmcore/primitives"
	"github.com/bluealloy/evmcore/state"
	"github.com/bluealloy/evmcore/vm"
)

var specByName = map[string]primitives.Spec{
	"Frontier":         primitives.Frontier,
	"Homestead":        primitives.Homestead,
	"TangerineWhistle": primitives.TangerineWhistle,
	"SpuriousDragon":   primitives.SpuriousDragon,
	"Byzantium":        primitives.Byzantium,
	"Constantinople":   primitives.Constantinople,
	"Petersburg":       primitives.Petersburg,
	"Istanbul":         primitives.Istanbul,
	"Berlin":           primitives.Berlin,
	"London":           primitives.London,
	"ArrowGlacier":     primitives.ArrowGlacier,
	"GrayGlacier":      primitives.GrayGlacier,
	"Merge":            primitives.Merge,
	"Paris":            primitives.Merge,
	"Shanghai":         primitives.Shanghai,
	"Cancun":           primitives.Cancun,
	"Prague":           primitives.Prague,
	"Osaka":            primitives.Osaka,
}

// caseResult is one (fork, fixture name) outcome.
type caseResult struct {
	Name    string
	Fork    string
	Passed  bool
	Message string
}

var runLog = log.New("statetest")

// runFixture executes every fork/post-state entry of one named fixture
// and reports whether the resulting account state matches expectations.
func runFixture(name string, f fixture) []caseResult {
	var results []caseResult
	for forkName, posts := range f.Post {
		spec, ok := specByName[forkName]
		if !ok {
			results = append(results, caseResult{Name: name, Fork: forkName, Passed: false, Message: "unknown fork name"})
			continue
		}
		for i, post := range posts {
			r := runOne(name, forkName, spec, f, post)
			if len(posts) > 1 {
				r.Fork = fmt.Sprintf("%s[%d]", forkName, i)
			}
			results = append(results, r)
		}
	}
	return results
}

func runOne(name, forkName string, spec primitives.Spec, f fixture, post postResult) caseResult {
	db := buildDatabase(f.Pre)
	journaled := state.New(db)

	blockCtx := vm.BlockContext{
		GetHash:     func(uint64) primitives.B256 { return primitives.B256{} },
		Coinbase:    hexAddress(f.Env.CurrentCoinbase),
		GasLimit:    hexU64(f.Env.CurrentGasLimit),
		BlockNumber: hexU256(f.Env.CurrentNumber),
		Time:        hexU64(f.Env.CurrentTimestamp),
		Difficulty:  hexU256(f.Env.CurrentDifficulty),
		BaseFee:     hexU256(f.Env.CurrentBaseFee),
	}
	txCtx := vm.TxContext{
		Origin:   hexAddress(f.Transaction.Sender),
		GasPrice: hexU256(f.Transaction.GasPrice),
	}

	evm := vm.NewEVM(blockCtx, txCtx, journaled, primitives.U256FromUint64(1), spec)

	var to *primitives.Address
	if f.Transaction.To != "" {
		addr := hexAddress(f.Transaction.To)
		to = &addr
	}

	result := evm.Transact(
		txCtx.Origin,
		to,
		mustHex(f.Transaction.Data),
		hexU64(f.Transaction.GasLimit),
		hexU256(f.Transaction.Value),
		nil,
	)

	runLog.Debug("executed case", "name", name, "fork", forkName, "gasUsed", result.GasUsed, "reverted", result.Reverted)

	if result.Err != nil {
		return caseResult{Name: name, Fork: forkName, Passed: false, Message: result.Err.Error()}
	}
	if len(post.State) == 0 {
		return caseResult{Name: name, Fork: forkName, Passed: true, Message: "executed (no expected state to compare)"}
	}

	final := journaled.Finalize()
	for addrHex, want := range post.State {
		addr := hexAddress(addrHex)
		got, ok := final[addr]
		if !ok {
			return caseResult{Name: name, Fork: forkName, Passed: false, Message: fmt.Sprintf("%s: missing from final state", addrHex)}
		}
		if got.Destroyed {
			return caseResult{Name: name, Fork: forkName, Passed: false, Message: fmt.Sprintf("%s: unexpectedly self-destructed", addrHex)}
		}
		if !got.Account.Balance.Eq(hexU256(want.Balance)) {
			return caseResult{Name: name, Fork: forkName, Passed: false, Message: fmt.Sprintf("%s: balance mismatch: got %s want %s", addrHex, got.Account.Balance.Hex(), hexU256(want.Balance).Hex())}
		}
		if got.Account.Nonce != hexU64(want.Nonce) {
			return caseResult{Name: name, Fork: forkName, Passed: false, Message: fmt.Sprintf("%s: nonce mismatch: got %d want %d", addrHex, got.Account.Nonce, hexU64(want.Nonce))}
		}
	}
	return caseResult{Name: name, Fork: forkName, Passed: true}
}
