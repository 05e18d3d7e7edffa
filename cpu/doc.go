// Package cpu implements the virtual machine and assembler for the superoptimizer.
//
// The machine is a vector of integer memory cells, all zero after reset, and a
// four instruction ISA: LOAD, SWAP, XOR and INC. Every opcode is described once
// in the opcode table (mnemonic, argument domains and semantics); the
// execution engine, the assembler and the program space enumeration all work
// from that table.
//
// The assembler reads one instruction per line ("LOAD 3", "SWAP 0, 1"), with
// ';' comments, .equ constants, and compile-time $(...) expressions.
package cpu
