package bytecode_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bluealloy/evmcore/bytecode"
	"github.com/bluealloy/evmcore/primitives"
)

func TestJumpDestBasic(t *testing.T) {
	// PUSH1 0x04, JUMP, JUMPDEST, STOP
	code := bytecode.New([]byte{0x60, 0x04, 0x56, 0x5b, 0x00})
	require.True(t, code.IsJumpDest(3))
	require.False(t, code.IsJumpDest(0))
	require.False(t, code.IsJumpDest(2))
}

func TestJumpDestInsidePushDataIsNotValid(t *testing.T) {
	// PUSH1 0x5b (data byte happens to equal JUMPDEST's opcode), STOP
	code := bytecode.New([]byte{0x60, 0x5b, 0x00})
	require.False(t, code.IsJumpDest(1))
}

func TestJumpDestOutOfBounds(t *testing.T) {
	code := bytecode.New([]byte{0x5b})
	require.False(t, code.IsJumpDest(5))
}

func TestAtPastEndIsStop(t *testing.T) {
	code := bytecode.New([]byte{0x60, 0x01})
	require.Equal(t, bytecode.STOP, code.At(10))
}

func TestValidateDeploymentRejectsEOFPrefixPostLondon(t *testing.T) {
	err := bytecode.ValidateDeployment([]byte{0xef, 0x00, 0x01}, primitives.London)
	require.Error(t, err)
}

func TestValidateDeploymentAllowsEOFPrefixPreLondon(t *testing.T) {
	err := bytecode.ValidateDeployment([]byte{0xef, 0x00, 0x01}, primitives.Byzantium)
	require.NoError(t, err)
}

func TestValidateDeploymentMaxCodeSize(t *testing.T) {
	big := make([]byte, 24577)
	require.Error(t, bytecode.ValidateDeployment(big, primitives.SpuriousDragon))
	require.NoError(t, bytecode.ValidateDeployment(big, primitives.Frontier))
}

func TestValidateInitCodeSizeCap(t *testing.T) {
	big := make([]byte, 2*24576+1)
	require.Error(t, bytecode.ValidateInitCode(big, primitives.Shanghai))
	require.NoError(t, bytecode.ValidateInitCode(big, primitives.London))
}

func TestPushSize(t *testing.T) {
	require.Equal(t, 1, bytecode.PUSH1.PushSize())
	require.Equal(t, 32, bytecode.PUSH32.PushSize())
	require.Equal(t, 0, bytecode.PUSH0.PushSize())
	require.Equal(t, 0, bytecode.STOP.PushSize())
}
