package bytecode

import (
	"fmt"
	"strings"
)

// Disassemble renders code as a human-readable opcode listing, one
// instruction per line, in the form "000000: PUSH1 0x80". A debugging
// aid; never on the interpreter's execution path.
func Disassemble(code []byte) string {
	var b strings.Builder
	for pc := 0; pc < len(code); {
		op := OpCode(code[pc])
		fmt.Fprintf(&b, "%06x: %s", pc, op.String())
		if n := op.PushSize(); n > 0 {
			end := pc + 1 + n
			if end > len(code) {
				end = len(code)
			}
			fmt.Fprintf(&b, " 0x%x", code[pc+1:end])
			pc = pc + 1 + n
		} else {
			pc++
		}
		b.WriteByte('\n')
	}
	return b.String()
}
